package subscribe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Store persists subscriptions in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a subscription store.
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
	if strings.Contains(err.Error(), "CHECK constraint failed") {
		return ErrInvalid
	}
	return err
}

func encodeSites(sites []string) (string, error) {
	if sites == nil {
		sites = []string{}
	}
	b, err := json.Marshal(sites)
	if err != nil {
		return "", fmt.Errorf("encode sites: %w", err)
	}
	return string(b), nil
}

// Add inserts a subscription and sets its ID and timestamps.
func (s *Store) Add(ctx context.Context, sub *Subscription) error {
	if !sub.Type.Valid() {
		return fmt.Errorf("%w: type %q", ErrInvalid, sub.Type)
	}
	sites, err := encodeSites(sub.Sites)
	if err != nil {
		return err
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (name, type, tmdb_id, season, resolution, quality, effect, include, sites, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.Name, sub.Type, sub.TMDBID, sub.Season, sub.Resolution, sub.Quality, sub.Effect, sub.Include, sites, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	sub.ID = id
	if sub.Sites == nil {
		sub.Sites = []string{}
	}
	sub.CreatedAt = now
	sub.UpdatedAt = now
	return nil
}

const selectSubscriptions = `
	SELECT id, name, type, tmdb_id, season, resolution, quality, effect, include, sites, created_at, updated_at
	FROM subscriptions `

type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row scanner) (*Subscription, error) {
	sub := &Subscription{}
	var season sql.NullInt64
	var sites string
	err := row.Scan(&sub.ID, &sub.Name, &sub.Type, &sub.TMDBID, &season,
		&sub.Resolution, &sub.Quality, &sub.Effect, &sub.Include, &sites, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if season.Valid {
		n := int(season.Int64)
		sub.Season = &n
	}
	if err := json.Unmarshal([]byte(sites), &sub.Sites); err != nil {
		return nil, fmt.Errorf("decode sites of subscription %d: %w", sub.ID, err)
	}
	if sub.Sites == nil {
		sub.Sites = []string{}
	}
	return sub, nil
}

// Get retrieves a subscription by ID.
// Returns ErrNotFound if it does not exist.
func (s *Store) Get(ctx context.Context, id int64) (*Subscription, error) {
	sub, err := scanSubscription(s.db.QueryRowContext(ctx, selectSubscriptions+`WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get subscription %d: %w", id, mapSQLiteError(err))
	}
	return sub, nil
}

// List returns subscriptions matching the filter, ordered by ID.
func (s *Store) List(ctx context.Context, f Filter) ([]*Subscription, error) {
	var conditions []string
	var args []any

	if f.TMDBID != nil {
		conditions = append(conditions, "tmdb_id = ?")
		args = append(args, *f.TMDBID)
	}
	if f.Season != nil {
		conditions = append(conditions, "season = ?")
		args = append(args, *f.Season)
	}
	if f.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, *f.Type)
	}

	query := selectSubscriptions
	if len(conditions) > 0 {
		query += "WHERE " + strings.Join(conditions, " AND ") + " "
	}
	query += "ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var out []*Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// ListByTMDBID returns subscriptions for a catalog id. A non-nil season
// additionally restricts to that season.
func (s *Store) ListByTMDBID(ctx context.Context, tmdbID int64, season *int) ([]*Subscription, error) {
	return s.List(ctx, Filter{TMDBID: &tmdbID, Season: season})
}

// Update writes the set members of f and bumps updated_at.
// Returns ErrNotFound if the subscription does not exist.
func (s *Store) Update(ctx context.Context, id int64, f Fields) error {
	var sets []string
	var args []any

	if f.Resolution != nil {
		sets = append(sets, "resolution = ?")
		args = append(args, *f.Resolution)
	}
	if f.Quality != nil {
		sets = append(sets, "quality = ?")
		args = append(args, *f.Quality)
	}
	if f.Effect != nil {
		sets = append(sets, "effect = ?")
		args = append(args, *f.Effect)
	}
	if f.Include != nil {
		sets = append(sets, "include = ?")
		args = append(args, *f.Include)
	}
	if f.Sites != nil {
		sites, err := encodeSites(f.Sites)
		if err != nil {
			return err
		}
		sets = append(sets, "sites = ?")
		args = append(args, sites)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	result, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update subscription %d: %w", id, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update subscription %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a subscription.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete subscription %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete subscription %d: %w", id, ErrNotFound)
	}
	return nil
}
