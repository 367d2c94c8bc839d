// Package repository defines the persistence contract for farm records.
// The interface is the single source of truth the services and handlers are
// built against; swapping the backing store never touches them.
package repository

import (
	"context"
	"errors"

	"github.com/hamrofarm/kukhura/internal/domain/models"
)

// ErrNotFound reports an update against a record id that does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateBillNumber reports a feed bill number that already exists
// somewhere on the farm. Bill numbers are farm-wide unique receipts.
var ErrDuplicateBillNumber = errors.New("bill number already exists")

// ErrMortalityExceedsStock reports a mortality record that would push the
// flock's cumulative losses past its initial bird count.
var ErrMortalityExceedsStock = errors.New("mortality count exceeds remaining birds")

// Store is the farm data repository. All list operations return records in
// insertion order; an empty flockID means "all flocks". Delete operations
// are idempotent no-ops when the id is absent.
type Store interface {
	// CreateFlock persists a flock together with its derived records (the
	// auto-generated vaccine schedule and, when non-nil, the initial chick
	// purchase expense) as one atomic unit.
	CreateFlock(ctx context.Context, flock *models.Flock, vaccines []models.Vaccine, initialExpense *models.Expense) error
	ListFlocks(ctx context.Context) ([]models.Flock, error)
	UpdateFlock(ctx context.Context, flock models.Flock) error
	// DeleteFlock removes the flock and cascades over every dependent
	// collection in a single transaction.
	DeleteFlock(ctx context.Context, id string) error

	ListFeed(ctx context.Context, flockID string) ([]models.Feed, error)
	// AddFeed fails with ErrDuplicateBillNumber when the bill number is
	// already taken by any feed record, regardless of flock.
	AddFeed(ctx context.Context, feed *models.Feed) error
	// UpdateFeed re-validates bill uniqueness excluding the record itself.
	UpdateFeed(ctx context.Context, feed models.Feed) error
	DeleteFeed(ctx context.Context, id string) error

	ListMedicine(ctx context.Context, flockID string) ([]models.Medicine, error)
	AddMedicine(ctx context.Context, m *models.Medicine) error
	DeleteMedicine(ctx context.Context, id string) error

	ListExpenses(ctx context.Context, flockID string) ([]models.Expense, error)
	AddExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error

	ListMortality(ctx context.Context, flockID string) ([]models.Mortality, error)
	// AddMortality fails with ErrMortalityExceedsStock when the flock's
	// cumulative mortality would exceed its TotalBirds.
	AddMortality(ctx context.Context, m *models.Mortality) error
	DeleteMortality(ctx context.Context, id string) error

	ListSales(ctx context.Context, flockID string) ([]models.Sale, error)
	AddSale(ctx context.Context, s *models.Sale) error
	DeleteSale(ctx context.Context, id string) error

	ListGallery(ctx context.Context, flockID string) ([]models.GalleryItem, error)
	AddGalleryItem(ctx context.Context, item *models.GalleryItem) error
	DeleteGalleryItem(ctx context.Context, id string) error

	ListVaccines(ctx context.Context, flockID string) ([]models.Vaccine, error)
	UpdateVaccine(ctx context.Context, v models.Vaccine) error

	GetSettings(ctx context.Context) (models.AppSettings, error)
	SaveSettings(ctx context.Context, s models.AppSettings) error

	GetSession(ctx context.Context) (*models.UserSession, error)
	SaveSession(ctx context.Context, sess models.UserSession) error
	ClearSession(ctx context.Context) error

	// Snapshot captures every collection plus settings.
	Snapshot(ctx context.Context) (models.Snapshot, error)
	// Restore replaces every collection wholesale in one transaction.
	// Collections absent from the snapshot become empty; a nil Settings
	// leaves stored settings untouched.
	Restore(ctx context.Context, snap models.Snapshot) error

	// PruneOrphans deletes child records whose flock no longer exists and
	// reports how many rows were removed. Reconciliation path for data
	// written by older, non-transactional tools.
	PruneOrphans(ctx context.Context) (int64, error)

	Close() error
}
