package models

// FlockStatus tracks whether a flock is still being raised.
type FlockStatus string

const (
	FlockActive FlockStatus = "active"
	FlockClosed FlockStatus = "closed"
)

// Flock is one cohort of birds raised together. It is the aggregation root
// for every other record type, linked by FlockID.
type Flock struct {
	ID string `json:"id"`

	Name string `json:"name"`

	// StartDate is the placement date in Bikram Sambat (YYYY-MM-DD).
	StartDate string `json:"startDate"`

	// EndDate is the expected harvest date, derived as StartDate + 45 days
	// at creation time.
	EndDate string `json:"endDate,omitempty"`

	// TotalBirds is the initial stock. It is set at creation and its meaning
	// never changes; deaths are tracked through mortality records instead.
	TotalBirds int `json:"totalBirds"`

	Status FlockStatus `json:"status"`

	Notes string `json:"notes,omitempty"`
}
