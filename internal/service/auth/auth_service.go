// Package auth implements the PIN lock and the cloud session record.
package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository"
)

var (
	// ErrWeakPin reports a PIN shorter than four digits.
	ErrWeakPin = errors.New("pin must be at least 4 digits")
	// ErrWrongPin reports a failed PIN verification.
	ErrWrongPin = errors.New("incorrect pin")
	// ErrPinNotSet reports verification before any PIN was configured.
	ErrPinNotSet = errors.New("pin has not been set up")
)

// Service manages the lock-screen PIN and the linked cloud account session.
type Service struct {
	store  repository.Store
	logger *zap.Logger
}

// NewService constructs the auth service.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// validatePin enforces the minimum PIN shape: four or more digits.
func validatePin(pin string) error {
	if len(pin) < 4 {
		return ErrWeakPin
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrWeakPin
		}
	}
	return nil
}

// SetupPin hashes and stores a new PIN and marks setup complete. Only the
// bcrypt hash is persisted, never the PIN itself.
func (s *Service) SetupPin(ctx context.Context, pin string) error {
	if err := validatePin(pin); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return err
	}
	settings.PinHash = string(hash)
	settings.IsSetup = true
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}

	s.logger.Info("pin configured")
	return nil
}

// VerifyPin checks a PIN attempt against the stored hash.
func (s *Service) VerifyPin(ctx context.Context, pin string) error {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings.PinHash == "" {
		return ErrPinNotSet
	}
	if bcrypt.CompareHashAndPassword([]byte(settings.PinHash), []byte(pin)) != nil {
		return ErrWrongPin
	}
	return nil
}

// ChangePin replaces the PIN after verifying the current one.
func (s *Service) ChangePin(ctx context.Context, current, next string) error {
	if err := s.VerifyPin(ctx, current); err != nil {
		return err
	}
	return s.SetupPin(ctx, next)
}

// SaveSession links the installation to a cloud account.
func (s *Service) SaveSession(ctx context.Context, sess models.UserSession) error {
	sess.SavedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return err
	}
	s.logger.Info("cloud session saved", zap.String("user_id", sess.UserID))
	return nil
}

// GetSession returns the linked cloud account, or nil when signed out.
func (s *Service) GetSession(ctx context.Context) (*models.UserSession, error) {
	return s.store.GetSession(ctx)
}

// ClearSession signs the installation out of the cloud account.
func (s *Service) ClearSession(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return err
	}
	s.logger.Info("cloud session cleared")
	return nil
}
