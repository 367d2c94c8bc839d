// Package sync coordinates manual and scheduled cloud backup of the local
// store. Sync is deliberately dumb: whole-snapshot last-write-wins, no
// retries, no conflict resolution — errors go straight back to the user.
package sync

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository"
	"github.com/hamrofarm/kukhura/pkg/clients/cloudsync"
)

// ErrSyncDisabled reports that no backup server has been configured.
var ErrSyncDisabled = errors.New("cloud sync is not configured")

// ErrNotSignedIn reports that the installation has no linked cloud account.
var ErrNotSignedIn = errors.New("not signed in to a cloud account")

// Service uploads and downloads whole-store snapshots.
type Service struct {
	store  repository.Store
	client cloudsync.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs the sync service. A nil client disables sync.
func NewService(store repository.Store, client cloudsync.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Enabled reports whether a backup server is configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// session returns the linked account or the appropriate sentinel error.
func (s *Service) session(ctx context.Context) (*models.UserSession, error) {
	if !s.Enabled() {
		return nil, ErrSyncDisabled
	}
	sess, err := s.store.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID == "" {
		return nil, ErrNotSignedIn
	}
	return sess, nil
}

// Upload pushes the full local snapshot to the backup server, replacing
// whatever the server held for this user.
func (s *Service) Upload(ctx context.Context) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}

	backup := models.CloudBackup{
		UserID:    sess.UserID,
		Data:      snap,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.client.UploadBackup(ctx, backup); err != nil {
		return err
	}

	s.logger.Info("snapshot uploaded",
		zap.String("user_id", sess.UserID),
		zap.Int("flocks", len(snap.Flocks)))
	return nil
}

// Download fetches the user's server-side snapshot and replaces the local
// store wholesale. The local session survives the restore.
func (s *Service) Download(ctx context.Context) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}

	backup, err := s.client.DownloadBackup(ctx, sess.UserID)
	if err != nil {
		return err
	}

	if err := s.store.Restore(ctx, backup.Data); err != nil {
		return err
	}

	s.logger.Info("snapshot restored from cloud",
		zap.String("user_id", sess.UserID),
		zap.Time("server_updated_at", backup.UpdatedAt))
	return nil
}
