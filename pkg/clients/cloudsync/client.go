// Package cloudsync is the HTTP client for the backup server. One snapshot
// document lives per user; uploads are last-write-wins upserts.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hamrofarm/kukhura/internal/config"
	"github.com/hamrofarm/kukhura/internal/domain/models"
)

// ErrNoBackup reports that the user has never uploaded a backup.
var ErrNoBackup = errors.New("no backup found for user")

// Client exposes the backup server operations used by the application.
type Client interface {
	UploadBackup(ctx context.Context, backup models.CloudBackup) error
	DownloadBackup(ctx context.Context, userID string) (*models.CloudBackup, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a backup server client from the cloud configuration.
func NewClient(cfg config.CloudConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// apiError is the backup server's error payload.
type apiError struct {
	Error string `json:"error"`
}

// UploadBackup upserts the user's snapshot on the server.
func (c *APIClient) UploadBackup(ctx context.Context, backup models.CloudBackup) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(backup).
		SetError(apiErr).
		Put(fmt.Sprintf("/v1/backups/%s", backup.UserID))
	if err != nil {
		return fmt.Errorf("upload backup: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("backup server error: code=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}
	return nil
}

// DownloadBackup fetches the user's latest snapshot from the server.
func (c *APIClient) DownloadBackup(ctx context.Context, userID string) (*models.CloudBackup, error) {
	result := new(models.CloudBackup)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get(fmt.Sprintf("/v1/backups/%s", userID))
	if err != nil {
		return nil, fmt.Errorf("download backup: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNoBackup, userID)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("backup server error: code=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}

	return result, nil
}
