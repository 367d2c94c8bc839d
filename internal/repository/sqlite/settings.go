package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hamrofarm/kukhura/internal/domain/models"
)

// Settings and the user session are singletons stored as one JSON blob each.
// Unmarshalling over the defaults gives merge semantics: fields missing from
// an older stored blob keep their documented default values.

// GetSettings returns the stored settings merged over defaults.
func (s *Store) GetSettings(ctx context.Context) (models.AppSettings, error) {
	settings := models.DefaultSettings()

	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM settings WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return models.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings replaces the settings singleton.
func (s *Store) SaveSettings(ctx context.Context, settings models.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO settings (id, data) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data",
		string(data),
	)
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// GetSession returns the stored cloud session, or nil when signed out.
func (s *Store) GetSession(ctx context.Context) (*models.UserSession, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM session WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess models.UserSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// SaveSession replaces the stored cloud session.
func (s *Store) SaveSession(ctx context.Context, sess models.UserSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO session (id, data) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET data = excluded.data",
		string(data),
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ClearSession signs the installation out; clearing twice is a no-op.
func (s *Store) ClearSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = 1")
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
