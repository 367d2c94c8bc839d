package farm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store, nil)
	svc.today = func() string { return "2081-02-01" }
	return svc
}

func TestCreateFlockDerivesSchedule(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	flock, err := svc.CreateFlock(ctx, NewFlockInput{
		Name:       "Batch 1",
		StartDate:  "2081-01-01",
		TotalBirds: 500,
		ChickRate:  52.5,
	})
	if err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}
	if flock.ID == "" {
		t.Fatal("expected generated flock id")
	}
	if flock.Status != models.FlockActive {
		t.Fatalf("status = %q, want active", flock.Status)
	}
	// 2081 Baishakh has 31 days, so +45 lands on the 15th of Jestha.
	if flock.EndDate != "2081-02-15" {
		t.Fatalf("endDate = %q, want 2081-02-15", flock.EndDate)
	}

	vaccines, err := svc.ListVaccines(ctx, flock.ID)
	if err != nil {
		t.Fatalf("ListVaccines: %v", err)
	}
	wantDates := map[string]string{
		"Marek (F1)":          "2081-01-02",
		"Newcastle (F1)":      "2081-01-08",
		"Gumboro (IBD)":       "2081-01-15",
		"Newcastle (Booster)": "2081-01-22",
		"Gumboro (Booster)":   "2081-01-29",
	}
	if len(vaccines) != len(wantDates) {
		t.Fatalf("got %d vaccines, want %d", len(vaccines), len(wantDates))
	}
	for _, v := range vaccines {
		want, ok := wantDates[v.Name]
		if !ok {
			t.Errorf("unexpected vaccine %q", v.Name)
			continue
		}
		if v.ScheduledDate != want {
			t.Errorf("%s scheduled %q, want %q", v.Name, v.ScheduledDate, want)
		}
		if v.Status != models.VaccinePending {
			t.Errorf("%s status = %q, want pending", v.Name, v.Status)
		}
	}

	expenses, err := svc.ListExpenses(ctx, flock.ID)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("got %d expenses, want the initial chicks purchase", len(expenses))
	}
	if expenses[0].Name != "Initial Chicks Purchase" {
		t.Fatalf("expense name = %q", expenses[0].Name)
	}
	if expenses[0].Total != 500*52.5 {
		t.Fatalf("expense total = %v, want %v", expenses[0].Total, 500*52.5)
	}
}

func TestCreateFlockWithoutChickRate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	flock, err := svc.CreateFlock(ctx, NewFlockInput{
		Name:       "Batch 2",
		StartDate:  "2081-01-10",
		TotalBirds: 100,
	})
	if err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}

	expenses, err := svc.ListExpenses(ctx, flock.ID)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Fatalf("got %d expenses, want none without a chick rate", len(expenses))
	}
}

func TestCreateFlockValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   NewFlockInput
	}{
		{"missing name", NewFlockInput{StartDate: "2081-01-01", TotalBirds: 10}},
		{"zero birds", NewFlockInput{Name: "x", StartDate: "2081-01-01"}},
		{"negative birds", NewFlockInput{Name: "x", StartDate: "2081-01-01", TotalBirds: -5}},
		{"malformed date", NewFlockInput{Name: "x", StartDate: "2081-1-1", TotalBirds: 10}},
		{"day out of range", NewFlockInput{Name: "x", StartDate: "2081-01-32", TotalBirds: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateFlock(ctx, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	flocks, err := svc.ListFlocks(ctx)
	if err != nil {
		t.Fatalf("ListFlocks: %v", err)
	}
	if len(flocks) != 0 {
		t.Fatalf("invalid input persisted %d flocks", len(flocks))
	}
}

func TestSummarize(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	flock, err := svc.CreateFlock(ctx, NewFlockInput{
		Name:       "Batch 3",
		StartDate:  "2081-01-01",
		TotalBirds: 1000,
	})
	if err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}

	// 4 sacks of feed at the default 50 kg sack weight = 200 kg.
	if err := svc.AddFeed(ctx, &models.Feed{
		FlockID: flock.ID, BillNo: "B-1", Date: "2081-01-05",
		Type: models.FeedB0, Quantity: 4, Rate: 3000, Total: 12000,
	}); err != nil {
		t.Fatalf("AddFeed: %v", err)
	}
	if err := svc.AddExpense(ctx, &models.Expense{
		FlockID: flock.ID, Date: "2081-01-06", Name: "Electricity",
		Quantity: 1, Rate: 1500, Total: 1500,
	}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if err := svc.AddMedicine(ctx, &models.Medicine{
		FlockID: flock.ID, Date: "2081-01-07", Name: "Vitamins",
		Quantity: 2, Rate: 250, Total: 500,
	}); err != nil {
		t.Fatalf("AddMedicine: %v", err)
	}
	if err := svc.AddMortality(ctx, &models.Mortality{
		FlockID: flock.ID, Date: "2081-01-10", Count: 30,
	}); err != nil {
		t.Fatalf("AddMortality: %v", err)
	}
	if err := svc.AddSale(ctx, &models.Sale{
		FlockID: flock.ID, Date: "2081-01-28", Quantity: 100,
		WeightKg: 100, Rate: 300, Total: 30000,
	}); err != nil {
		t.Fatalf("AddSale: %v", err)
	}

	sum, err := svc.Summarize(ctx, flock.ID)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	// today is pinned to 2081-02-01; the flock started 2081-01-01 and
	// Baishakh 2081 has 31 days.
	if sum.AgeDays != 31 {
		t.Errorf("ageDays = %d, want 31", sum.AgeDays)
	}
	if sum.BirdsLost != 30 || sum.BirdsSold != 100 || sum.BirdsAlive != 870 {
		t.Errorf("birds lost/sold/alive = %d/%d/%d, want 30/100/870",
			sum.BirdsLost, sum.BirdsSold, sum.BirdsAlive)
	}
	if sum.FeedSacks != 4 || sum.FeedKg != 200 {
		t.Errorf("feed sacks/kg = %v/%v, want 4/200", sum.FeedSacks, sum.FeedKg)
	}
	if sum.SalesTotal != 30000 {
		t.Errorf("salesTotal = %v, want 30000", sum.SalesTotal)
	}
	if want := 12000.0 + 1500 + 500; sum.ExpenseTotal != want {
		t.Errorf("expenseTotal = %v, want %v", sum.ExpenseTotal, want)
	}
	if want := 200.0 / 100.0; sum.FCR != want {
		t.Errorf("fcr = %v, want %v", sum.FCR, want)
	}
	// All five vaccines are still pending; the ones scheduled before the
	// pinned today (all of Baishakh) are overdue.
	if sum.PendingVaccines != 5 || sum.OverdueVaccines != 5 {
		t.Errorf("pending/overdue = %d/%d, want 5/5", sum.PendingVaccines, sum.OverdueVaccines)
	}
}

func TestSummarizeUnknownFlock(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Summarize(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown flock")
	}
}

func TestImportSnapshotRejectsGarbage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	flock, err := svc.CreateFlock(ctx, NewFlockInput{
		Name: "Keep", StartDate: "2081-01-01", TotalBirds: 50,
	})
	if err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}

	if err := svc.ImportSnapshot(ctx, []byte("{not json")); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("err = %v, want ErrInvalidSnapshot", err)
	}

	// The bad payload must not have touched anything.
	flocks, err := svc.ListFlocks(ctx)
	if err != nil {
		t.Fatalf("ListFlocks: %v", err)
	}
	if len(flocks) != 1 || flocks[0].ID != flock.ID {
		t.Fatalf("existing data changed after rejected import: %+v", flocks)
	}
}

func TestSnapshotExportImportRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	flock, err := svc.CreateFlock(ctx, NewFlockInput{
		Name: "Exported", StartDate: "2081-01-01", TotalBirds: 200, ChickRate: 45,
	})
	if err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}
	if err := svc.AddFeed(ctx, &models.Feed{
		FlockID: flock.ID, BillNo: "RT-1", Date: "2081-01-03",
		Type: models.FeedB1, Quantity: 2, Rate: 3100, Total: 6200,
	}); err != nil {
		t.Fatalf("AddFeed: %v", err)
	}

	data, err := svc.ExportSnapshot(ctx)
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}

	// Wipe by importing an empty snapshot, then bring everything back.
	if err := svc.ImportSnapshot(ctx, []byte("{}")); err != nil {
		t.Fatalf("ImportSnapshot(empty): %v", err)
	}
	if flocks, _ := svc.ListFlocks(ctx); len(flocks) != 0 {
		t.Fatalf("empty import left %d flocks", len(flocks))
	}

	if err := svc.ImportSnapshot(ctx, data); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}

	flocks, err := svc.ListFlocks(ctx)
	if err != nil {
		t.Fatalf("ListFlocks: %v", err)
	}
	if len(flocks) != 1 || flocks[0].Name != "Exported" {
		t.Fatalf("restored flocks = %+v", flocks)
	}
	feed, err := svc.ListFeed(ctx, flocks[0].ID)
	if err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	if len(feed) != 1 || feed[0].BillNo != "RT-1" {
		t.Fatalf("restored feed = %+v", feed)
	}
	vaccines, err := svc.ListVaccines(ctx, flocks[0].ID)
	if err != nil {
		t.Fatalf("ListVaccines: %v", err)
	}
	if len(vaccines) != 5 {
		t.Fatalf("restored %d vaccines, want 5", len(vaccines))
	}
}

func TestAddGalleryItemDefaultsDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	flock, err := svc.CreateFlock(ctx, NewFlockInput{
		Name: "Photos", StartDate: "2081-01-01", TotalBirds: 10,
	})
	if err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}

	item := models.GalleryItem{FlockID: flock.ID, Caption: "day one"}
	if err := svc.AddGalleryItem(ctx, &item); err != nil {
		t.Fatalf("AddGalleryItem: %v", err)
	}
	if item.Date != "2081-02-01" {
		t.Fatalf("date = %q, want pinned today 2081-02-01", item.Date)
	}
}

func TestAddMortalityRejectsNonPositiveCount(t *testing.T) {
	svc := newTestService(t)

	err := svc.AddMortality(context.Background(), &models.Mortality{
		FlockID: "any", Date: "2081-01-01", Count: 0,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
