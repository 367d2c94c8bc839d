package auth

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

	return NewService(store, nil)
}

func TestPinLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.VerifyPin(ctx, "1234"); !errors.Is(err, ErrPinNotSet) {
		t.Fatalf("verify before setup = %v, want ErrPinNotSet", err)
	}

	if err := svc.SetupPin(ctx, "4321"); err != nil {
		t.Fatalf("SetupPin: %v", err)
	}
	if err := svc.VerifyPin(ctx, "4321"); err != nil {
		t.Fatalf("correct pin rejected: %v", err)
	}
	if err := svc.VerifyPin(ctx, "0000"); !errors.Is(err, ErrWrongPin) {
		t.Fatalf("wrong pin = %v, want ErrWrongPin", err)
	}

	if err := svc.ChangePin(ctx, "0000", "9999"); !errors.Is(err, ErrWrongPin) {
		t.Fatalf("change with wrong current = %v, want ErrWrongPin", err)
	}
	if err := svc.ChangePin(ctx, "4321", "987654"); err != nil {
		t.Fatalf("ChangePin: %v", err)
	}
	if err := svc.VerifyPin(ctx, "987654"); err != nil {
		t.Fatalf("new pin rejected: %v", err)
	}
	if err := svc.VerifyPin(ctx, "4321"); !errors.Is(err, ErrWrongPin) {
		t.Fatalf("old pin still accepted after change")
	}
}

func TestSetupPinRejectsWeakPins(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, pin := range []string{"", "1", "123", "12a4", "abcd", "12 4"} {
		if err := svc.SetupPin(ctx, pin); !errors.Is(err, ErrWeakPin) {
			t.Errorf("SetupPin(%q) = %v, want ErrWeakPin", pin, err)
		}
	}
}

func TestSetupPinStoresOnlyHash(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetupPin(ctx, "246810"); err != nil {
		t.Fatalf("SetupPin: %v", err)
	}

	settings, err := svc.store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.PinHash == "" || settings.PinHash == "246810" {
		t.Fatalf("pinHash = %q, want a bcrypt hash", settings.PinHash)
	}
	if !settings.IsSetup {
		t.Fatal("isSetup not flipped by pin setup")
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sess, err := svc.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess != nil {
		t.Fatalf("fresh install has session %+v", sess)
	}

	if err := svc.SaveSession(ctx, models.UserSession{
		UserID: "user-7", Email: "farmer@example.com", AccessToken: "tok",
	}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	sess, err = svc.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess == nil || sess.UserID != "user-7" {
		t.Fatalf("session = %+v, want user-7", sess)
	}
	if sess.SavedAt == "" {
		t.Fatal("savedAt not stamped on save")
	}

	if err := svc.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	sess, err = svc.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess != nil {
		t.Fatalf("session survived clear: %+v", sess)
	}
}
