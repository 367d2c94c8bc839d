package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository"
)

// childTables are every collection that hangs off a flock, in the order the
// cascade delete and orphan sweep walk them.
var childTables = []string{"feed", "medicine", "expenses", "mortality", "sales", "gallery", "vaccines"}

// CreateFlock inserts the flock, its auto-generated vaccine schedule and the
// optional initial chick purchase expense in a single transaction, so a
// half-created flock can never be observed.
func (s *Store) CreateFlock(ctx context.Context, flock *models.Flock, vaccines []models.Vaccine, initialExpense *models.Expense) error {
	flock.ID = genID(flock.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO flocks (id, name, start_date, end_date, total_birds, status, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		flock.ID, flock.Name, flock.StartDate, flock.EndDate, flock.TotalBirds, string(flock.Status), flock.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert flock: %w", err)
	}

	for i := range vaccines {
		v := &vaccines[i]
		v.ID = genID(v.ID)
		v.FlockID = flock.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO vaccines (id, flock_id, name, scheduled_date, status, notes) VALUES (?, ?, ?, ?, ?, ?)",
			v.ID, v.FlockID, v.Name, v.ScheduledDate, string(v.Status), v.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert vaccine %s: %w", v.Name, err)
		}
	}

	if initialExpense != nil {
		initialExpense.ID = genID(initialExpense.ID)
		initialExpense.FlockID = flock.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expenses (id, flock_id, date, name, quantity, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?)",
			initialExpense.ID, initialExpense.FlockID, initialExpense.Date, initialExpense.Name,
			initialExpense.Quantity, initialExpense.Rate, initialExpense.Total,
		)
		if err != nil {
			return fmt.Errorf("insert initial expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListFlocks returns every flock in insertion order.
func (s *Store) ListFlocks(ctx context.Context) ([]models.Flock, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, start_date, end_date, total_birds, status, notes FROM flocks ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list flocks: %w", err)
	}
	defer rows.Close()

	var out []models.Flock
	for rows.Next() {
		var f models.Flock
		var status string
		if err := rows.Scan(&f.ID, &f.Name, &f.StartDate, &f.EndDate, &f.TotalBirds, &status, &f.Notes); err != nil {
			return nil, fmt.Errorf("scan flock: %w", err)
		}
		f.Status = models.FlockStatus(status)
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateFlock replaces the flock matching the id.
func (s *Store) UpdateFlock(ctx context.Context, flock models.Flock) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE flocks SET name = ?, start_date = ?, end_date = ?, total_birds = ?, status = ?, notes = ? WHERE id = ?",
		flock.Name, flock.StartDate, flock.EndDate, flock.TotalBirds, string(flock.Status), flock.Notes, flock.ID,
	)
	if err != nil {
		return fmt.Errorf("update flock: %w", err)
	}
	return requireRow(res, flock.ID)
}

// DeleteFlock removes the flock and every dependent record across all child
// collections in one transaction.
func (s *Store) DeleteFlock(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM flocks WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete flock: %w", err)
	}
	for _, table := range childTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE flock_id = ?", id); err != nil {
			return fmt.Errorf("cascade delete %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// PruneOrphans removes child rows whose flock no longer exists.
func (s *Store) PruneOrphans(ctx context.Context) (int64, error) {
	var pruned int64
	for _, table := range childTables {
		res, err := s.db.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE flock_id NOT IN (SELECT id FROM flocks)")
		if err != nil {
			return pruned, fmt.Errorf("prune %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return pruned, err
		}
		pruned += n
	}
	return pruned, nil
}

// requireRow maps a zero-row update to repository.ErrNotFound.
func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return nil
}
