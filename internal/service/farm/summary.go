package farm

import (
	"context"
	"fmt"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/nepcal"
	"github.com/hamrofarm/kukhura/internal/repository"
)

// FlockSummary is the derived dashboard view of one flock. Everything here
// is computed from stored records on demand and never persisted.
type FlockSummary struct {
	Flock            models.Flock `json:"flock"`
	AgeDays          int          `json:"ageDays"`
	BirdsLost        int          `json:"birdsLost"`
	BirdsSold        int          `json:"birdsSold"`
	BirdsAlive       int          `json:"birdsAlive"`
	FeedSacks        float64      `json:"feedSacks"`
	FeedKg           float64      `json:"feedKg"`
	SoldWeightKg     float64      `json:"soldWeightKg"`
	SalesTotal       float64      `json:"salesTotal"`
	ExpenseTotal     float64      `json:"expenseTotal"`
	FCR              float64      `json:"fcr"`
	PendingVaccines  int          `json:"pendingVaccines"`
	OverdueVaccines  int          `json:"overdueVaccines"`
}

// Summarize computes the dashboard figures for one flock.
func (s *Service) Summarize(ctx context.Context, flockID string) (FlockSummary, error) {
	flocks, err := s.store.ListFlocks(ctx)
	if err != nil {
		return FlockSummary{}, err
	}
	var flock *models.Flock
	for i := range flocks {
		if flocks[i].ID == flockID {
			flock = &flocks[i]
			break
		}
	}
	if flock == nil {
		return FlockSummary{}, fmt.Errorf("%w: flock %s", repository.ErrNotFound, flockID)
	}

	summary := FlockSummary{
		Flock:   *flock,
		AgeDays: nepcal.DaysBetween(flock.StartDate, s.today()),
	}

	mortality, err := s.store.ListMortality(ctx, flockID)
	if err != nil {
		return summary, err
	}
	for _, m := range mortality {
		summary.BirdsLost += m.Count
	}

	sales, err := s.store.ListSales(ctx, flockID)
	if err != nil {
		return summary, err
	}
	for _, sale := range sales {
		summary.BirdsSold += sale.Quantity
		summary.SoldWeightKg += sale.WeightKg
		summary.SalesTotal += sale.Total
	}
	summary.BirdsAlive = flock.TotalBirds - summary.BirdsLost - summary.BirdsSold
	if summary.BirdsAlive < 0 {
		summary.BirdsAlive = 0
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return summary, err
	}
	feed, err := s.store.ListFeed(ctx, flockID)
	if err != nil {
		return summary, err
	}
	for _, f := range feed {
		summary.FeedSacks += f.Quantity
		summary.ExpenseTotal += f.Total
	}
	summary.FeedKg = summary.FeedSacks * settings.SackWeightKg

	expenses, err := s.store.ListExpenses(ctx, flockID)
	if err != nil {
		return summary, err
	}
	for _, e := range expenses {
		summary.ExpenseTotal += e.Total
	}
	medicine, err := s.store.ListMedicine(ctx, flockID)
	if err != nil {
		return summary, err
	}
	for _, m := range medicine {
		summary.ExpenseTotal += m.Total
	}

	// FCR: kilograms of feed per kilogram of live weight sold. Only
	// meaningful once something has been sold.
	if summary.SoldWeightKg > 0 {
		summary.FCR = summary.FeedKg / summary.SoldWeightKg
	}

	vaccines, err := s.store.ListVaccines(ctx, flockID)
	if err != nil {
		return summary, err
	}
	today := s.today()
	for _, v := range vaccines {
		if v.Status != models.VaccinePending {
			continue
		}
		summary.PendingVaccines++
		if isPast(v.ScheduledDate, today) {
			summary.OverdueVaccines++
		}
	}

	return summary, nil
}

// isPast reports whether a BS date is strictly before today. Canonical
// YYYY-MM-DD strings order lexicographically, so this needs no conversion.
func isPast(date, today string) bool {
	if date == "" || today == "" {
		return false
	}
	return date < today
}
