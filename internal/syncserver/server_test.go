package syncserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hamrofarm/kukhura/internal/domain/models"
	"github.com/hamrofarm/kukhura/internal/repository/mongodb"
)

// memoryRepo is an in-memory BackupRepository for handler tests.
type memoryRepo struct {
	backups map[string]models.CloudBackup
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{backups: make(map[string]models.CloudBackup)}
}

func (m *memoryRepo) Upsert(ctx context.Context, backup models.CloudBackup) error {
	m.backups[backup.UserID] = backup
	return nil
}

func (m *memoryRepo) Get(ctx context.Context, userID string) (*models.CloudBackup, error) {
	backup, ok := m.backups[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", mongodb.ErrBackupNotFound, userID)
	}
	return &backup, nil
}

func newTestServer() (*memoryRepo, *httptest.Server) {
	repo := newMemoryRepo()
	engine := NewRouter(NewHandler(repo, nil), nil)
	return repo, httptest.NewServer(engine)
}

func TestPutThenGetBackup(t *testing.T) {
	repo, srv := newTestServer()
	defer srv.Close()

	backup := models.CloudBackup{
		UserID: "user-1",
		Data: models.Snapshot{
			Flocks: []models.Flock{{ID: "f1", Name: "Batch 1", StartDate: "2081-01-01", TotalBirds: 100, Status: models.FlockActive}},
		},
		UpdatedAt: time.Date(2024, 4, 13, 9, 0, 0, 0, time.UTC),
	}
	body, _ := json.Marshal(backup)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/backups/user-1", bytes.NewReader(body))
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}
	if len(repo.backups) != 1 {
		t.Fatalf("stored %d backups, want 1", len(repo.backups))
	}

	getResp, err := srv.Client().Get(srv.URL + "/v1/backups/user-1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", getResp.StatusCode)
	}
	var fetched models.CloudBackup
	if err := json.NewDecoder(getResp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fetched.UserID != "user-1" || len(fetched.Data.Flocks) != 1 {
		t.Fatalf("fetched = %+v", fetched)
	}
	if !fetched.UpdatedAt.Equal(backup.UpdatedAt) {
		t.Fatalf("updatedAt = %v, want %v", fetched.UpdatedAt, backup.UpdatedAt)
	}
}

func TestPutReplacesPreviousBackup(t *testing.T) {
	repo, srv := newTestServer()
	defer srv.Close()

	put := func(name string) {
		t.Helper()
		backup := models.CloudBackup{
			Data: models.Snapshot{Flocks: []models.Flock{{ID: "f", Name: name}}},
		}
		body, _ := json.Marshal(backup)
		req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/backups/user-2", bytes.NewReader(body))
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatalf("PUT: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
		}
	}

	put("first")
	put("second")

	stored := repo.backups["user-2"]
	if len(stored.Data.Flocks) != 1 || stored.Data.Flocks[0].Name != "second" {
		t.Fatalf("stored = %+v, want only the second upload", stored.Data.Flocks)
	}
	if stored.UpdatedAt.IsZero() {
		t.Fatal("server did not stamp updatedAt on a payload without one")
	}
}

func TestPutRejectsMismatchedUserID(t *testing.T) {
	_, srv := newTestServer()
	defer srv.Close()

	body, _ := json.Marshal(models.CloudBackup{UserID: "someone-else"})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/backups/user-3", bytes.NewReader(body))
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("PUT status = %d, want 400", resp.StatusCode)
	}
}

func TestGetUnknownUserReturns404(t *testing.T) {
	_, srv := newTestServer()
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/v1/backups/nobody")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET status = %d, want 404", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	_, srv := newTestServer()
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", resp.StatusCode)
	}
}
