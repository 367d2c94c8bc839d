package sync

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository"
	"github.com/hamrofarm/kukhura/internal/repository/sqlite"
)

// fakeClient records uploads and serves a canned backup.
type fakeClient struct {
	uploaded  []models.CloudBackup
	stored    *models.CloudBackup
	uploadErr error
}

func (f *fakeClient) UploadBackup(ctx context.Context, backup models.CloudBackup) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded = append(f.uploaded, backup)
	f.stored = &backup
	return nil
}

func (f *fakeClient) DownloadBackup(ctx context.Context, userID string) (*models.CloudBackup, error) {
	if f.stored == nil {
		return nil, errors.New("no backup")
	}
	return f.stored, nil
}

func newTestStore(t *testing.T) repository.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func signIn(t *testing.T, store repository.Store) {
	t.Helper()
	if err := store.SaveSession(context.Background(), models.UserSession{UserID: "user-1"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
}

func TestUploadRequiresConfiguration(t *testing.T) {
	svc := NewService(newTestStore(t), nil, nil)

	if svc.Enabled() {
		t.Fatal("service with nil client reports enabled")
	}
	if err := svc.Upload(context.Background()); !errors.Is(err, ErrSyncDisabled) {
		t.Fatalf("Upload = %v, want ErrSyncDisabled", err)
	}
	if err := svc.Download(context.Background()); !errors.Is(err, ErrSyncDisabled) {
		t.Fatalf("Download = %v, want ErrSyncDisabled", err)
	}
}

func TestUploadRequiresSession(t *testing.T) {
	svc := NewService(newTestStore(t), &fakeClient{}, nil)

	if err := svc.Upload(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("Upload = %v, want ErrNotSignedIn", err)
	}
}

func TestUploadSendsSnapshot(t *testing.T) {
	store := newTestStore(t)
	client := &fakeClient{}
	svc := NewService(store, client, nil)
	fixed := time.Date(2024, 4, 13, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ctx := context.Background()
	signIn(t, store)
	flock := models.Flock{Name: "Uploaded", StartDate: "2081-01-01", TotalBirds: 100, Status: models.FlockActive}
	if err := store.CreateFlock(ctx, &flock, nil, nil); err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}

	if err := svc.Upload(ctx); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if len(client.uploaded) != 1 {
		t.Fatalf("uploaded %d backups, want 1", len(client.uploaded))
	}
	backup := client.uploaded[0]
	if backup.UserID != "user-1" {
		t.Errorf("userID = %q, want user-1", backup.UserID)
	}
	if !backup.UpdatedAt.Equal(fixed) {
		t.Errorf("updatedAt = %v, want %v", backup.UpdatedAt, fixed)
	}
	if len(backup.Data.Flocks) != 1 || backup.Data.Flocks[0].Name != "Uploaded" {
		t.Errorf("snapshot flocks = %+v", backup.Data.Flocks)
	}
}

func TestDownloadReplacesLocalData(t *testing.T) {
	ctx := context.Background()

	// Build the server-side backup from one store, restore into another.
	source := newTestStore(t)
	client := &fakeClient{}
	sourceSvc := NewService(source, client, nil)
	signIn(t, source)
	flock := models.Flock{Name: "Cloud copy", StartDate: "2081-01-01", TotalBirds: 250, Status: models.FlockActive}
	if err := source.CreateFlock(ctx, &flock, nil, nil); err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}
	if err := sourceSvc.Upload(ctx); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	target := newTestStore(t)
	targetSvc := NewService(target, client, nil)
	signIn(t, target)
	local := models.Flock{Name: "Local only", StartDate: "2081-02-01", TotalBirds: 10, Status: models.FlockActive}
	if err := target.CreateFlock(ctx, &local, nil, nil); err != nil {
		t.Fatalf("CreateFlock: %v", err)
	}

	if err := targetSvc.Download(ctx); err != nil {
		t.Fatalf("Download: %v", err)
	}

	flocks, err := target.ListFlocks(ctx)
	if err != nil {
		t.Fatalf("ListFlocks: %v", err)
	}
	if len(flocks) != 1 || flocks[0].Name != "Cloud copy" {
		t.Fatalf("flocks after download = %+v, want only the cloud copy", flocks)
	}

	// Restoring a cloud snapshot must not sign the device out.
	sess, err := target.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess == nil || sess.UserID != "user-1" {
		t.Fatalf("session after download = %+v", sess)
	}
}

func TestUploadPropagatesClientError(t *testing.T) {
	store := newTestStore(t)
	wantErr := errors.New("server unavailable")
	svc := NewService(store, &fakeClient{uploadErr: wantErr}, nil)
	signIn(t, store)

	if err := svc.Upload(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Upload = %v, want %v", err, wantErr)
	}
}
