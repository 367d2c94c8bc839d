package models

// FeedType identifies the commercial feed stage.
type FeedType string

const (
	FeedB0     FeedType = "B0"
	FeedB1     FeedType = "B1"
	FeedB2     FeedType = "B2"
	FeedCustom FeedType = "Custom"
)

// Feed records one feed purchase. BillNo is the supplier receipt number and
// must be unique across the whole farm, not just within a flock.
type Feed struct {
	ID       string   `json:"id"`
	FlockID  string   `json:"flockId"`
	BillNo   string   `json:"billNo"`
	Date     string   `json:"date"` // BS
	Type     FeedType `json:"type"`
	Quantity float64  `json:"quantity"` // sacks
	Rate     float64  `json:"rate"`
	Total    float64  `json:"total"` // Quantity * Rate, stored denormalized
}

// Medicine records one medicine or supplement purchase.
type Medicine struct {
	ID       string  `json:"id"`
	FlockID  string  `json:"flockId"`
	Date     string  `json:"date"` // BS
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Total    float64 `json:"total"`
}

// Expense records a general operating expense.
type Expense struct {
	ID       string  `json:"id"`
	FlockID  string  `json:"flockId"`
	Date     string  `json:"date"` // BS
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Total    float64 `json:"total"`
}

// Mortality records birds lost on a given day.
type Mortality struct {
	ID      string `json:"id"`
	FlockID string `json:"flockId"`
	Date    string `json:"date"` // BS
	Count   int    `json:"count"`
	Remarks string `json:"remarks,omitempty"`
}

// Sale records a batch of birds sold by live weight.
type Sale struct {
	ID       string  `json:"id"`
	FlockID  string  `json:"flockId"`
	Date     string  `json:"date"` // BS
	Quantity int     `json:"quantity"` // birds sold
	WeightKg float64 `json:"weightKg"`
	Rate     float64 `json:"rate"`  // per kg
	Total    float64 `json:"total"` // WeightKg * Rate
}
