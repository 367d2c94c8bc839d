package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository"
)

// listRows runs a flock-filtered, insertion-ordered query and scans each row
// through the provided function.
func (s *Store) listRows(ctx context.Context, baseQuery, flockID string, scan func(*sql.Rows) error) error {
	query := baseQuery
	args := []any{}
	if flockID != "" {
		query += " WHERE flock_id = ?"
		args = append(args, flockID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// ListMedicine returns medicine purchases, optionally for one flock.
func (s *Store) ListMedicine(ctx context.Context, flockID string) ([]models.Medicine, error) {
	var out []models.Medicine
	err := s.listRows(ctx, "SELECT id, flock_id, date, name, quantity, rate, total FROM medicine", flockID, func(rows *sql.Rows) error {
		var m models.Medicine
		if err := rows.Scan(&m.ID, &m.FlockID, &m.Date, &m.Name, &m.Quantity, &m.Rate, &m.Total); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list medicine: %w", err)
	}
	return out, nil
}

// AddMedicine appends a medicine purchase.
func (s *Store) AddMedicine(ctx context.Context, m *models.Medicine) error {
	m.ID = genID(m.ID)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO medicine (id, flock_id, date, name, quantity, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?)",
		m.ID, m.FlockID, m.Date, m.Name, m.Quantity, m.Rate, m.Total,
	)
	if err != nil {
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// DeleteMedicine removes one record; absent ids are a no-op.
func (s *Store) DeleteMedicine(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM medicine WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	return nil
}

// ListExpenses returns expenses, optionally for one flock.
func (s *Store) ListExpenses(ctx context.Context, flockID string) ([]models.Expense, error) {
	var out []models.Expense
	err := s.listRows(ctx, "SELECT id, flock_id, date, name, quantity, rate, total FROM expenses", flockID, func(rows *sql.Rows) error {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.FlockID, &e.Date, &e.Name, &e.Quantity, &e.Rate, &e.Total); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}

// AddExpense appends an expense.
func (s *Store) AddExpense(ctx context.Context, e *models.Expense) error {
	e.ID = genID(e.ID)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (id, flock_id, date, name, quantity, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.ID, e.FlockID, e.Date, e.Name, e.Quantity, e.Rate, e.Total,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// DeleteExpense removes one record; absent ids are a no-op.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// ListMortality returns mortality records, optionally for one flock.
func (s *Store) ListMortality(ctx context.Context, flockID string) ([]models.Mortality, error) {
	var out []models.Mortality
	err := s.listRows(ctx, "SELECT id, flock_id, date, count, remarks FROM mortality", flockID, func(rows *sql.Rows) error {
		var m models.Mortality
		if err := rows.Scan(&m.ID, &m.FlockID, &m.Date, &m.Count, &m.Remarks); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list mortality: %w", err)
	}
	return out, nil
}

// AddMortality appends a mortality record after checking the flock's
// cumulative losses stay within its initial stock. The check lives here, not
// at the call site, so no entry point can bypass it.
func (s *Store) AddMortality(ctx context.Context, m *models.Mortality) error {
	m.ID = genID(m.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var totalBirds int
	err = tx.QueryRowContext(ctx, "SELECT total_birds FROM flocks WHERE id = ?", m.FlockID).Scan(&totalBirds)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: flock %s", repository.ErrNotFound, m.FlockID)
	}
	if err != nil {
		return fmt.Errorf("look up flock: %w", err)
	}

	var lost int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(count), 0) FROM mortality WHERE flock_id = ?", m.FlockID).Scan(&lost); err != nil {
		return fmt.Errorf("sum mortality: %w", err)
	}
	if lost+m.Count > totalBirds {
		return fmt.Errorf("%w: %d recorded + %d new > %d total",
			repository.ErrMortalityExceedsStock, lost, m.Count, totalBirds)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO mortality (id, flock_id, date, count, remarks) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.FlockID, m.Date, m.Count, m.Remarks,
	)
	if err != nil {
		return fmt.Errorf("insert mortality: %w", err)
	}

	return tx.Commit()
}

// DeleteMortality removes one record; absent ids are a no-op.
func (s *Store) DeleteMortality(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM mortality WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete mortality: %w", err)
	}
	return nil
}

// ListSales returns sales, optionally for one flock.
func (s *Store) ListSales(ctx context.Context, flockID string) ([]models.Sale, error) {
	var out []models.Sale
	err := s.listRows(ctx, "SELECT id, flock_id, date, quantity, weight_kg, rate, total FROM sales", flockID, func(rows *sql.Rows) error {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.FlockID, &sale.Date, &sale.Quantity, &sale.WeightKg, &sale.Rate, &sale.Total); err != nil {
			return err
		}
		out = append(out, sale)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return out, nil
}

// AddSale appends a sale.
func (s *Store) AddSale(ctx context.Context, sale *models.Sale) error {
	sale.ID = genID(sale.ID)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sales (id, flock_id, date, quantity, weight_kg, rate, total) VALUES (?, ?, ?, ?, ?, ?, ?)",
		sale.ID, sale.FlockID, sale.Date, sale.Quantity, sale.WeightKg, sale.Rate, sale.Total,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// DeleteSale removes one record; absent ids are a no-op.
func (s *Store) DeleteSale(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sales WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ListGallery returns photo log entries, optionally for one flock.
func (s *Store) ListGallery(ctx context.Context, flockID string) ([]models.GalleryItem, error) {
	var out []models.GalleryItem
	err := s.listRows(ctx, "SELECT id, flock_id, image_data, date, caption FROM gallery", flockID, func(rows *sql.Rows) error {
		var g models.GalleryItem
		if err := rows.Scan(&g.ID, &g.FlockID, &g.ImageData, &g.Date, &g.Caption); err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return out, nil
}

// AddGalleryItem appends a photo log entry.
func (s *Store) AddGalleryItem(ctx context.Context, item *models.GalleryItem) error {
	item.ID = genID(item.ID)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO gallery (id, flock_id, image_data, date, caption) VALUES (?, ?, ?, ?, ?)",
		item.ID, item.FlockID, item.ImageData, item.Date, item.Caption,
	)
	if err != nil {
		return fmt.Errorf("insert gallery item: %w", err)
	}
	return nil
}

// DeleteGalleryItem removes one record; absent ids are a no-op.
func (s *Store) DeleteGalleryItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM gallery WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	return nil
}

// ListVaccines returns vaccine schedule entries, optionally for one flock.
func (s *Store) ListVaccines(ctx context.Context, flockID string) ([]models.Vaccine, error) {
	var out []models.Vaccine
	err := s.listRows(ctx, "SELECT id, flock_id, name, scheduled_date, status, notes FROM vaccines", flockID, func(rows *sql.Rows) error {
		var v models.Vaccine
		var status string
		if err := rows.Scan(&v.ID, &v.FlockID, &v.Name, &v.ScheduledDate, &status, &v.Notes); err != nil {
			return err
		}
		v.Status = models.VaccineStatus(status)
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list vaccines: %w", err)
	}
	return out, nil
}

// UpdateVaccine replaces a vaccine record. The scheduled date is stored as
// given; it was computed once at flock creation and is never recomputed.
func (s *Store) UpdateVaccine(ctx context.Context, v models.Vaccine) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE vaccines SET flock_id = ?, name = ?, scheduled_date = ?, status = ?, notes = ? WHERE id = ?",
		v.FlockID, v.Name, v.ScheduledDate, string(v.Status), v.Notes, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vaccine: %w", err)
	}
	return requireRow(res, v.ID)
}
