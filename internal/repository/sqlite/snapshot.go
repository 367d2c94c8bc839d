package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hamrofarm/kukhura/internal/domain/models"
)

// Snapshot captures every collection plus settings. Settings is nil when the
// app was never configured, matching the backup file format.
func (s *Store) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Flocks, err = s.ListFlocks(ctx); err != nil {
		return snap, err
	}
	if snap.Feed, err = s.ListFeed(ctx, ""); err != nil {
		return snap, err
	}
	if snap.Medicine, err = s.ListMedicine(ctx, ""); err != nil {
		return snap, err
	}
	if snap.Expenses, err = s.ListExpenses(ctx, ""); err != nil {
		return snap, err
	}
	if snap.Mortality, err = s.ListMortality(ctx, ""); err != nil {
		return snap, err
	}
	if snap.Sales, err = s.ListSales(ctx, ""); err != nil {
		return snap, err
	}
	if snap.Vaccines, err = s.ListVaccines(ctx, ""); err != nil {
		return snap, err
	}
	if snap.Gallery, err = s.ListGallery(ctx, ""); err != nil {
		return snap, err
	}

	var data string
	err = s.db.QueryRowContext(ctx, "SELECT data FROM settings WHERE id = 1").Scan(&data)
	switch {
	case err == sql.ErrNoRows:
		snap.Settings = nil
	case err != nil:
		return snap, fmt.Errorf("read settings: %w", err)
	default:
		settings := models.DefaultSettings()
		if err := json.Unmarshal([]byte(data), &settings); err != nil {
			return snap, fmt.Errorf("decode settings: %w", err)
		}
		snap.Settings = &settings
	}

	return snap, nil
}

// Restore replaces every collection wholesale in a single transaction:
// either the whole snapshot lands or nothing changes. Collections absent
// from the snapshot simply come back empty; a nil Settings leaves the stored
// settings untouched. The session is local to the device and never restored.
func (s *Store) Restore(ctx context.Context, snap models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range append([]string{"flocks"}, childTables...) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, f := range snap.Flocks {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO flocks (id, name, start_date, end_date, total_birds, status, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
			genID(f.ID), f.Name, f.StartDate, f.EndDate, f.TotalBirds, string(f.Status), f.Notes,
		)
		if err != nil {
			return fmt.Errorf("restore flock: %w", err)
		}
	}
	for _, f := range snap.Feed {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO feed (id, flock_id, bill_no, date, type, quantity, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			genID(f.ID), f.FlockID, f.BillNo, f.Date, string(f.Type), f.Quantity, f.Rate, f.Total,
		)
		if err != nil {
			return fmt.Errorf("restore feed: %w", err)
		}
	}
	for _, m := range snap.Medicine {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO medicine (id, flock_id, date, name, quantity, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?)",
			genID(m.ID), m.FlockID, m.Date, m.Name, m.Quantity, m.Rate, m.Total,
		)
		if err != nil {
			return fmt.Errorf("restore medicine: %w", err)
		}
	}
	for _, e := range snap.Expenses {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (id, flock_id, date, name, quantity, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?)",
			genID(e.ID), e.FlockID, e.Date, e.Name, e.Quantity, e.Rate, e.Total,
		)
		if err != nil {
			return fmt.Errorf("restore expense: %w", err)
		}
	}
	for _, m := range snap.Mortality {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO mortality (id, flock_id, date, count, remarks) VALUES (?, ?, ?, ?, ?)",
			genID(m.ID), m.FlockID, m.Date, m.Count, m.Remarks,
		)
		if err != nil {
			return fmt.Errorf("restore mortality: %w", err)
		}
	}
	for _, sale := range snap.Sales {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO sales (id, flock_id, date, quantity, weight_kg, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?)",
			genID(sale.ID), sale.FlockID, sale.Date, sale.Quantity, sale.WeightKg, sale.Rate, sale.Total,
		)
		if err != nil {
			return fmt.Errorf("restore sale: %w", err)
		}
	}
	for _, v := range snap.Vaccines {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO vaccines (id, flock_id, name, scheduled_date, status, notes) VALUES (?, ?, ?, ?, ?, ?)",
			genID(v.ID), v.FlockID, v.Name, v.ScheduledDate, string(v.Status), v.Notes,
		)
		if err != nil {
			return fmt.Errorf("restore vaccine: %w", err)
		}
	}
	for _, g := range snap.Gallery {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO gallery (id, flock_id, image_data, date, caption) VALUES (?, ?, ?, ?, ?)",
			genID(g.ID), g.FlockID, g.ImageData, g.Date, g.Caption,
		)
		if err != nil {
			return fmt.Errorf("restore gallery item: %w", err)
		}
	}

	if snap.Settings != nil {
		data, err := json.Marshal(snap.Settings)
		if err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO settings (id, data) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data",
			string(data),
		)
		if err != nil {
			return fmt.Errorf("restore settings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
