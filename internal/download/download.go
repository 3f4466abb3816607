// Package download keeps the history of torrents handed to download clients.
package download

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/mpplugins/pkg/release"
)

// Record is one torrent sent to a download client.
type Record struct {
	ID          int64             `json:"id"`
	Hash        string            `json:"hash"`
	Type        release.MediaType `json:"type"`
	TMDBID      int64             `json:"tmdbid"`
	Seasons     string            `json:"seasons,omitempty"`  // "S02", "S01-S03"
	Episodes    string            `json:"episodes,omitempty"` // "E01-E10"
	Title       string            `json:"title"`
	TorrentSite string            `json:"torrent_site,omitempty"`
	AddedAt     time.Time         `json:"added_at"`
}

// Filter specifies criteria for listing records.
type Filter struct {
	TMDBID *int64
	Type   *release.MediaType
	Limit  int // 0 = no limit
}

// Store persists download records.
type Store struct {
	db *sql.DB
}

// NewStore creates a download store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// mapSQLiteError converts SQLite errors to package errors.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "CHECK constraint failed") {
		return ErrInvalid
	}
	return err
}

// Add records a new download. Hashes are stored lower-case.
func (s *Store) Add(ctx context.Context, r *Record) error {
	r.Hash = strings.ToLower(strings.TrimSpace(r.Hash))
	if r.Hash == "" {
		return fmt.Errorf("%w: hash is required", ErrInvalid)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: type %q", ErrInvalid, r.Type)
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO download_history (hash, type, tmdb_id, seasons, episodes, title, torrent_site, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Hash, r.Type, r.TMDBID, r.Seasons, r.Episodes, r.Title, r.TorrentSite, now,
	)
	if err != nil {
		return fmt.Errorf("insert download %s: %w", r.Hash, mapSQLiteError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	r.ID = id
	r.AddedAt = now
	return nil
}

const selectRecords = `SELECT id, hash, type, tmdb_id, seasons, episodes, title, torrent_site, added_at FROM download_history `

// GetByHash returns the record for a torrent hash.
// Returns ErrNotFound if no download was recorded for it.
func (s *Store) GetByHash(ctx context.Context, hash string) (*Record, error) {
	r := &Record{}
	err := s.db.QueryRowContext(ctx, selectRecords+`WHERE hash = ?`,
		strings.ToLower(strings.TrimSpace(hash)),
	).Scan(&r.ID, &r.Hash, &r.Type, &r.TMDBID, &r.Seasons, &r.Episodes, &r.Title, &r.TorrentSite, &r.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("get download %s: %w", hash, mapSQLiteError(err))
	}
	return r, nil
}

// List returns records matching the filter, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]*Record, error) {
	var conditions []string
	var args []any

	if f.TMDBID != nil {
		conditions = append(conditions, "tmdb_id = ?")
		args = append(args, *f.TMDBID)
	}
	if f.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, *f.Type)
	}

	query := selectRecords
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + " "
	}
	query += "ORDER BY id DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		r := &Record{}
		if err := rows.Scan(&r.ID, &r.Hash, &r.Type, &r.TMDBID, &r.Seasons, &r.Episodes, &r.Title, &r.TorrentSite, &r.AddedAt); err != nil {
			return nil, fmt.Errorf("scan download: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
