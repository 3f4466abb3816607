// Package plugindata persists small JSON values per plugin and key.
package plugindata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Store is a per-plugin key/value store backed by the plugin_data table.
type Store struct {
	db *sql.DB
}

// NewStore creates a plugin data store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get decodes the value stored under (plugin, key) into dst.
// It reports false, with dst untouched, when nothing is stored.
func (s *Store) Get(ctx context.Context, plugin, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM plugin_data WHERE plugin_id = ? AND key = ?`, plugin, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", plugin, key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", plugin, key, err)
	}
	return true, nil
}

// Save stores value under (plugin, key), replacing any previous value.
func (s *Store) Save(ctx context.Context, plugin, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", plugin, key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO plugin_data (plugin_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(plugin_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		plugin, key, string(b), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save %s/%s: %w", plugin, key, err)
	}
	return nil
}

// Delete removes the value under (plugin, key). Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, plugin, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM plugin_data WHERE plugin_id = ? AND key = ?`, plugin, key); err != nil {
		return fmt.Errorf("delete %s/%s: %w", plugin, key, err)
	}
	return nil
}

// Keys lists the keys stored for plugin.
func (s *Store) Keys(ctx context.Context, plugin string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM plugin_data WHERE plugin_id = ? ORDER BY key`, plugin)
	if err != nil {
		return nil, fmt.Errorf("list keys of %s: %w", plugin, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
