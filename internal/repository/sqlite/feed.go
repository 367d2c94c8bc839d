package sqlite

import (
	"context"
	"fmt"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository"
)

// ListFeed returns feed purchases, optionally filtered to one flock.
func (s *Store) ListFeed(ctx context.Context, flockID string) ([]models.Feed, error) {
	query := "SELECT id, flock_id, bill_no, date, type, quantity, rate, total FROM feed"
	args := []any{}
	if flockID != "" {
		query += " WHERE flock_id = ?"
		args = append(args, flockID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	defer rows.Close()

	var out []models.Feed
	for rows.Next() {
		var f models.Feed
		var typ string
		if err := rows.Scan(&f.ID, &f.FlockID, &f.BillNo, &f.Date, &typ, &f.Quantity, &f.Rate, &f.Total); err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		f.Type = models.FeedType(typ)
		out = append(out, f)
	}
	return out, rows.Err()
}

// AddFeed appends a feed purchase. The bill number must be unique across the
// whole feed collection, not just the flock; the pre-check keeps the error
// explicit instead of surfacing the UNIQUE constraint.
func (s *Store) AddFeed(ctx context.Context, feed *models.Feed) error {
	feed.ID = genID(feed.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM feed WHERE bill_no = ?)", feed.BillNo).Scan(&exists); err != nil {
		return fmt.Errorf("check bill number: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", repository.ErrDuplicateBillNumber, feed.BillNo)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO feed (id, flock_id, bill_no, date, type, quantity, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		feed.ID, feed.FlockID, feed.BillNo, feed.Date, string(feed.Type), feed.Quantity, feed.Rate, feed.Total,
	)
	if err != nil {
		return fmt.Errorf("insert feed: %w", err)
	}

	return tx.Commit()
}

// UpdateFeed replaces a feed record, re-validating bill uniqueness against
// every record except the one being updated.
func (s *Store) UpdateFeed(ctx context.Context, feed models.Feed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM feed WHERE bill_no = ? AND id != ?)", feed.BillNo, feed.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check bill number: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s", repository.ErrDuplicateBillNumber, feed.BillNo)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE feed SET flock_id = ?, bill_no = ?, date = ?, type = ?, quantity = ?, rate = ?, total = ? WHERE id = ?",
		feed.FlockID, feed.BillNo, feed.Date, string(feed.Type), feed.Quantity, feed.Rate, feed.Total, feed.ID,
	)
	if err != nil {
		return fmt.Errorf("update feed: %w", err)
	}
	if err := requireRow(res, feed.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteFeed removes one feed record; absent ids are a no-op.
func (s *Store) DeleteFeed(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM feed WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	return nil
}
