// Package report exports a flock's ledger to a Google Sheet. It is a pure
// consumer of the repository's list operations; nothing here writes back to
// the local store.
package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/repository"
	"github.com/hamrofarm/kukhura/internal/repository/sheets"
	"github.com/hamrofarm/kukhura/internal/service/farm"
)

const (
	summaryWriteRange = "Summary!A:H"
	feedWriteRange    = "Feed!A:G"
	expenseWriteRange = "Expenses!A:F"
	salesWriteRange   = "Sales!A:F"
)

// Service appends flock ledgers to the configured spreadsheet.
type Service struct {
	store   repository.Store
	farmSvc *farm.Service
	sheets  sheets.Repository
	logger  *zap.Logger
}

// NewService constructs the report exporter.
func NewService(store repository.Store, farmSvc *farm.Service, sheetsRepo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		farmSvc: farmSvc,
		sheets:  sheetsRepo,
		logger:  logger,
	}
}

// ExportFlock appends the flock's summary line and its feed, expense and
// sales ledgers to the spreadsheet. Dates stay in BS, the same strings the
// farmer wrote on the paper bills.
func (s *Service) ExportFlock(ctx context.Context, flockID string) error {
	summary, err := s.farmSvc.Summarize(ctx, flockID)
	if err != nil {
		return fmt.Errorf("summarize flock: %w", err)
	}

	summaryRow := [][]interface{}{{
		summary.Flock.Name,
		summary.Flock.StartDate,
		summary.Flock.TotalBirds,
		summary.BirdsLost,
		summary.BirdsSold,
		summary.FeedKg,
		summary.SalesTotal,
		summary.FCR,
	}}
	if err := s.sheets.AppendRows(ctx, summaryWriteRange, summaryRow); err != nil {
		return err
	}

	feed, err := s.store.ListFeed(ctx, flockID)
	if err != nil {
		return err
	}
	feedRows := make([][]interface{}, 0, len(feed))
	for _, f := range feed {
		feedRows = append(feedRows, []interface{}{
			summary.Flock.Name, f.Date, f.BillNo, string(f.Type), f.Quantity, f.Rate, f.Total,
		})
	}
	if err := s.sheets.AppendRows(ctx, feedWriteRange, feedRows); err != nil {
		return err
	}

	expenses, err := s.store.ListExpenses(ctx, flockID)
	if err != nil {
		return err
	}
	expenseRows := make([][]interface{}, 0, len(expenses))
	for _, e := range expenses {
		expenseRows = append(expenseRows, []interface{}{
			summary.Flock.Name, e.Date, e.Name, e.Quantity, e.Rate, e.Total,
		})
	}
	if err := s.sheets.AppendRows(ctx, expenseWriteRange, expenseRows); err != nil {
		return err
	}

	sales, err := s.store.ListSales(ctx, flockID)
	if err != nil {
		return err
	}
	salesRows := make([][]interface{}, 0, len(sales))
	for _, sale := range sales {
		salesRows = append(salesRows, []interface{}{
			summary.Flock.Name, sale.Date, sale.Quantity, sale.WeightKg, sale.Rate, sale.Total,
		})
	}
	if err := s.sheets.AppendRows(ctx, salesWriteRange, salesRows); err != nil {
		return err
	}

	s.logger.Info("flock ledger exported",
		zap.String("flock_id", flockID),
		zap.Int("feed_rows", len(feedRows)),
		zap.Int("expense_rows", len(expenseRows)),
		zap.Int("sales_rows", len(salesRows)))
	return nil
}
