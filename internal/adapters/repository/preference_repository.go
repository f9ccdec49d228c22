// Package repository implements the local-store ports over SQLite:
// UI preferences (the localStorage analog) and stored backups.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lifehub/core/internal/ports"
)

// ErrPreferenceNotFound is returned for keys that were never set.
var ErrPreferenceNotFound = errors.New("preference not found")

// Well-known preference keys persisted by the UI layer.
const (
	PrefTheme       = "ui.theme"
	PrefSidebarOpen = "ui.sidebar_open"
	PrefSearchQuery = "ui.search_query"
)

// PreferenceRepositoryImpl implements the PreferenceRepository interface
type PreferenceRepositoryImpl struct {
	db *sqlx.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sqlx.DB) ports.PreferenceRepository {
	return &PreferenceRepositoryImpl{db: db}
}

func (r *PreferenceRepositoryImpl) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM preferences WHERE key = ?`, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrPreferenceNotFound
		}
		return "", fmt.Errorf("get preference: %w", err)
	}
	return value, nil
}

func (r *PreferenceRepositoryImpl) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

func (r *PreferenceRepositoryImpl) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}

func (r *PreferenceRepositoryImpl) All(ctx context.Context) (map[string]string, error) {
	rows := []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}{}

	if err := r.db.SelectContext(ctx, &rows, `SELECT key, value FROM preferences ORDER BY key`); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}
