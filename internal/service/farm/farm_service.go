// Package farm implements the business rules sitting between the HTTP layer
// and the repository: flock creation with derived records, denormalized
// total validation, dashboard summaries and snapshot export/import.
package farm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/nepcal"
	"github.com/hamrofarm/kukhura/internal/repository"
)

// GrowOutDays is the expected broiler grow-out period used to derive a
// flock's end date from its start date.
const GrowOutDays = 45

// ErrInvalidInput reports a create/update payload that fails validation.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidSnapshot reports a restore payload that could not be parsed.
// No data is changed when this is returned.
var ErrInvalidSnapshot = errors.New("invalid snapshot payload")

// Service owns all farm record operations.
type Service struct {
	store  repository.Store
	logger *zap.Logger
	today  func() string
}

// NewService constructs a farm service on top of the given store.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		today:  nepcal.Today,
	}
}

// NewFlockInput is the caller-supplied part of a new flock.
type NewFlockInput struct {
	Name       string  `json:"name"`
	StartDate  string  `json:"startDate"` // BS
	TotalBirds int     `json:"totalBirds"`
	Notes      string  `json:"notes"`
	// ChickRate, when positive, records an "Initial Chicks Purchase" expense
	// of TotalBirds x ChickRate alongside the flock.
	ChickRate float64 `json:"chickRate"`
}

// CreateFlock validates the input, derives the end date and the standard
// vaccine schedule off the start date, and persists everything atomically.
func (s *Service) CreateFlock(ctx context.Context, in NewFlockInput) (models.Flock, error) {
	if in.Name == "" {
		return models.Flock{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.TotalBirds <= 0 {
		return models.Flock{}, fmt.Errorf("%w: totalBirds must be positive", ErrInvalidInput)
	}
	if _, err := nepcal.Parse(in.StartDate); err != nil {
		return models.Flock{}, fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}

	flock := models.Flock{
		Name:       in.Name,
		StartDate:  in.StartDate,
		EndDate:    nepcal.AddDays(in.StartDate, GrowOutDays),
		TotalBirds: in.TotalBirds,
		Status:     models.FlockActive,
		Notes:      in.Notes,
	}

	vaccines := make([]models.Vaccine, 0, len(models.StandardVaccineSchedule))
	for _, entry := range models.StandardVaccineSchedule {
		vaccines = append(vaccines, models.Vaccine{
			Name:          entry.Name,
			ScheduledDate: nepcal.AddDays(in.StartDate, entry.DayOffset),
			Status:        models.VaccinePending,
		})
	}

	var initial *models.Expense
	if in.ChickRate > 0 {
		initial = &models.Expense{
			Date:     in.StartDate,
			Name:     "Initial Chicks Purchase",
			Quantity: float64(in.TotalBirds),
			Rate:     in.ChickRate,
			Total:    float64(in.TotalBirds) * in.ChickRate,
		}
	}

	if err := s.store.CreateFlock(ctx, &flock, vaccines, initial); err != nil {
		return models.Flock{}, err
	}

	s.logger.Info("flock created",
		zap.String("flock_id", flock.ID),
		zap.String("start_date", flock.StartDate),
		zap.Int("total_birds", flock.TotalBirds),
		zap.Int("vaccines_scheduled", len(vaccines)))

	return flock, nil
}

// ListFlocks returns every flock.
func (s *Service) ListFlocks(ctx context.Context) ([]models.Flock, error) {
	return s.store.ListFlocks(ctx)
}

// UpdateFlock replaces a flock record (name, status, notes; the start date
// and bird count keep their original meaning).
func (s *Service) UpdateFlock(ctx context.Context, flock models.Flock) error {
	return s.store.UpdateFlock(ctx, flock)
}

// DeleteFlock removes a flock and all of its dependent records.
func (s *Service) DeleteFlock(ctx context.Context, id string) error {
	if err := s.store.DeleteFlock(ctx, id); err != nil {
		return err
	}
	s.logger.Info("flock deleted with cascade", zap.String("flock_id", id))
	return nil
}

// checkTotal warns when a stored denormalized total disagrees with the
// quantities it was computed from. Mismatches are tolerated (reports keep
// using the stored value) but they usually point at a caller bug.
func (s *Service) checkTotal(kind, id string, computed, stored float64) {
	if math.Abs(computed-stored) > 0.01 {
		s.logger.Warn("stored total does not match computed total",
			zap.String("record", kind),
			zap.String("id", id),
			zap.Float64("stored", stored),
			zap.Float64("computed", computed))
	}
}

// AddFeed appends a feed purchase; duplicate bill numbers are rejected by
// the store.
func (s *Service) AddFeed(ctx context.Context, feed *models.Feed) error {
	if err := s.store.AddFeed(ctx, feed); err != nil {
		return err
	}
	s.checkTotal("feed", feed.ID, feed.Quantity*feed.Rate, feed.Total)
	return nil
}

// UpdateFeed replaces a feed purchase.
func (s *Service) UpdateFeed(ctx context.Context, feed models.Feed) error {
	if err := s.store.UpdateFeed(ctx, feed); err != nil {
		return err
	}
	s.checkTotal("feed", feed.ID, feed.Quantity*feed.Rate, feed.Total)
	return nil
}

// ListFeed returns feed purchases, optionally for one flock.
func (s *Service) ListFeed(ctx context.Context, flockID string) ([]models.Feed, error) {
	return s.store.ListFeed(ctx, flockID)
}

// DeleteFeed removes a feed purchase.
func (s *Service) DeleteFeed(ctx context.Context, id string) error {
	return s.store.DeleteFeed(ctx, id)
}

// AddMedicine appends a medicine purchase.
func (s *Service) AddMedicine(ctx context.Context, m *models.Medicine) error {
	if err := s.store.AddMedicine(ctx, m); err != nil {
		return err
	}
	s.checkTotal("medicine", m.ID, m.Quantity*m.Rate, m.Total)
	return nil
}

// ListMedicine returns medicine purchases, optionally for one flock.
func (s *Service) ListMedicine(ctx context.Context, flockID string) ([]models.Medicine, error) {
	return s.store.ListMedicine(ctx, flockID)
}

// DeleteMedicine removes a medicine purchase.
func (s *Service) DeleteMedicine(ctx context.Context, id string) error {
	return s.store.DeleteMedicine(ctx, id)
}

// AddExpense appends an expense.
func (s *Service) AddExpense(ctx context.Context, e *models.Expense) error {
	if err := s.store.AddExpense(ctx, e); err != nil {
		return err
	}
	s.checkTotal("expense", e.ID, e.Quantity*e.Rate, e.Total)
	return nil
}

// ListExpenses returns expenses, optionally for one flock.
func (s *Service) ListExpenses(ctx context.Context, flockID string) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx, flockID)
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	return s.store.DeleteExpense(ctx, id)
}

// AddMortality appends a mortality record; the store rejects counts that
// would exceed the flock's stock.
func (s *Service) AddMortality(ctx context.Context, m *models.Mortality) error {
	if m.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1", ErrInvalidInput)
	}
	return s.store.AddMortality(ctx, m)
}

// ListMortality returns mortality records, optionally for one flock.
func (s *Service) ListMortality(ctx context.Context, flockID string) ([]models.Mortality, error) {
	return s.store.ListMortality(ctx, flockID)
}

// DeleteMortality removes a mortality record.
func (s *Service) DeleteMortality(ctx context.Context, id string) error {
	return s.store.DeleteMortality(ctx, id)
}

// AddSale appends a sale; the stored total is validated against
// weight x rate, not quantity x rate.
func (s *Service) AddSale(ctx context.Context, sale *models.Sale) error {
	if err := s.store.AddSale(ctx, sale); err != nil {
		return err
	}
	s.checkTotal("sale", sale.ID, sale.WeightKg*sale.Rate, sale.Total)
	return nil
}

// ListSales returns sales, optionally for one flock.
func (s *Service) ListSales(ctx context.Context, flockID string) ([]models.Sale, error) {
	return s.store.ListSales(ctx, flockID)
}

// DeleteSale removes a sale.
func (s *Service) DeleteSale(ctx context.Context, id string) error {
	return s.store.DeleteSale(ctx, id)
}

// AddGalleryItem appends a photo log entry, defaulting the date to today.
func (s *Service) AddGalleryItem(ctx context.Context, item *models.GalleryItem) error {
	if item.Date == "" {
		item.Date = s.today()
	}
	return s.store.AddGalleryItem(ctx, item)
}

// ListGallery returns photo log entries, optionally for one flock.
func (s *Service) ListGallery(ctx context.Context, flockID string) ([]models.GalleryItem, error) {
	return s.store.ListGallery(ctx, flockID)
}

// DeleteGalleryItem removes a photo log entry.
func (s *Service) DeleteGalleryItem(ctx context.Context, id string) error {
	return s.store.DeleteGalleryItem(ctx, id)
}

// ListVaccines returns vaccine schedule entries, optionally for one flock.
func (s *Service) ListVaccines(ctx context.Context, flockID string) ([]models.Vaccine, error) {
	return s.store.ListVaccines(ctx, flockID)
}

// UpdateVaccine updates a schedule entry (typically the status or notes).
func (s *Service) UpdateVaccine(ctx context.Context, v models.Vaccine) error {
	return s.store.UpdateVaccine(ctx, v)
}

// GetSettings returns the settings singleton merged over defaults.
func (s *Service) GetSettings(ctx context.Context) (models.AppSettings, error) {
	return s.store.GetSettings(ctx)
}

// SaveSettings replaces the settings singleton.
func (s *Service) SaveSettings(ctx context.Context, settings models.AppSettings) error {
	return s.store.SaveSettings(ctx, settings)
}

// ExportSnapshot serializes every collection plus settings as the backup
// file format.
func (s *Service) ExportSnapshot(ctx context.Context) ([]byte, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

// ImportSnapshot parses a backup payload and replaces every collection
// wholesale. The payload is validated in full before the store is touched:
// on a parse failure the call returns ErrInvalidSnapshot and no data changes.
func (s *Service) ImportSnapshot(ctx context.Context, data []byte) error {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.store.Restore(ctx, snap); err != nil {
		return err
	}
	s.logger.Info("snapshot imported",
		zap.Int("flocks", len(snap.Flocks)),
		zap.Int("feed", len(snap.Feed)),
		zap.Int("vaccines", len(snap.Vaccines)))
	return nil
}

// PruneOrphans removes records that reference a missing flock.
func (s *Service) PruneOrphans(ctx context.Context) (int64, error) {
	return s.store.PruneOrphans(ctx)
}
