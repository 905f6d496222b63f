// Package stats persists genre usage statistics in SQLite.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lepinkainen/marquee/internal/movies"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

var (
	// ErrUnknownGenre is returned when a view is recorded for a genre that is
	// neither stored nor named by the caller.
	ErrUnknownGenre = errors.New("unknown genre")
	// ErrInvalidStat is returned for stats with a non-positive id, empty name or negative count.
	ErrInvalidStat = errors.New("invalid genre stat")
)

// Store manages the SQLite database holding genre statistics
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
	now  func() time.Time
}

// Open opens (creating if needed) the statistics database at dbPath
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}

	// SQLite serializes writers; a single connection also keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to stats database: %w", err), closeErr)
	}

	if _, err := db.Exec(GenreStatsSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create stats table: %w", err), closeErr)
	}

	return &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// List returns all stats in insertion order
func (s *Store) List(ctx context.Context) ([]movies.GenreStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT genre_id, name, count FROM genre_stats ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genre stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := []movies.GenreStat{}
	for rows.Next() {
		var stat movies.GenreStat
		if err := rows.Scan(&stat.ID, &stat.Name, &stat.Count); err != nil {
			return nil, fmt.Errorf("failed to scan genre stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read genre stats: %w", err)
	}
	return stats, nil
}

// Get returns the stat for a genre id
func (s *Store) Get(ctx context.Context, id int) (movies.GenreStat, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(ctx, s.db, id)
}

// Upsert stores stat, replacing the name and count of an existing genre
func (s *Store) Upsert(ctx context.Context, stat movies.GenreStat) error {
	if err := validate(stat); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return upsert(ctx, s.db, stat, s.now())
}

// Import upserts all stats in a single transaction
func (s *Store) Import(ctx context.Context, stats []movies.GenreStat) error {
	for _, stat := range stats {
		if err := validate(stat); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback if we don't commit - ignore errors as they're expected if transaction was committed
		_ = tx.Rollback()
	}()

	now := s.now()
	for _, stat := range stats {
		if err := upsert(ctx, tx, stat, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Imported genre stats", "count", len(stats))
	return nil
}

// RecordView increments the count of a genre by one.
// A genre not yet stored is created when name is given, otherwise ErrUnknownGenre is returned.
// A non-empty name also refreshes the stored name.
func (s *Store) RecordView(ctx context.Context, id int, name string) (movies.GenreStat, error) {
	if id <= 0 {
		return movies.GenreStat{}, fmt.Errorf("%w: id must be positive", ErrInvalidStat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return movies.GenreStat{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, found, err := get(ctx, tx, id)
	if err != nil {
		return movies.GenreStat{}, err
	}

	switch {
	case !found && name == "":
		return movies.GenreStat{}, fmt.Errorf("%w: %d", ErrUnknownGenre, id)
	case !found:
		current = movies.GenreStat{ID: id, Name: name}
	case name != "":
		current.Name = name
	}
	current.Count++

	if err := upsert(ctx, tx, current, s.now()); err != nil {
		return movies.GenreStat{}, err
	}
	if err := tx.Commit(); err != nil {
		return movies.GenreStat{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Debug("Recorded genre view", "genre", current.Name, "id", id, "count", current.Count)
	return current, nil
}

// SyncGenres adds every genre missing from the store with a zero count and
// refreshes the names of known genres. Counts are left untouched.
// Returns the number of genres added.
func (s *Store) SyncGenres(ctx context.Context, genres []tmdb.Genre) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now().UTC()
	added := 0
	for _, g := range genres {
		if g.ID <= 0 || g.Name == "" {
			slog.Warn("Skipping invalid genre", "id", g.ID, "name", g.Name)
			continue
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO genre_stats (genre_id, name, count, updated_at) VALUES (?, ?, 0, ?)
			 ON CONFLICT(genre_id) DO NOTHING`,
			g.ID, g.Name, now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert genre %d: %w", g.ID, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			added++
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE genre_stats SET name = ?, updated_at = ? WHERE genre_id = ? AND name != ?`,
			g.Name, now, g.ID, g.Name); err != nil {
			return 0, fmt.Errorf("failed to rename genre %d: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return added, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func get(ctx context.Context, q queryer, id int) (movies.GenreStat, bool, error) {
	var stat movies.GenreStat
	err := q.QueryRowContext(ctx,
		`SELECT genre_id, name, count FROM genre_stats WHERE genre_id = ?`, id,
	).Scan(&stat.ID, &stat.Name, &stat.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return movies.GenreStat{}, false, nil
	}
	if err != nil {
		return movies.GenreStat{}, false, fmt.Errorf("failed to query genre stat %d: %w", id, err)
	}
	return stat, true, nil
}

func upsert(ctx context.Context, q queryer, stat movies.GenreStat, now time.Time) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO genre_stats (genre_id, name, count, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(genre_id) DO UPDATE SET
			name = excluded.name,
			count = excluded.count,
			updated_at = excluded.updated_at`,
		stat.ID, stat.Name, stat.Count, now.UTC())
	if err != nil {
		return fmt.Errorf("failed to store genre stat %d: %w", stat.ID, err)
	}
	return nil
}

func validate(stat movies.GenreStat) error {
	switch {
	case stat.ID <= 0:
		return fmt.Errorf("%w: id must be positive (got %d)", ErrInvalidStat, stat.ID)
	case stat.Name == "":
		return fmt.Errorf("%w: genre %d has no name", ErrInvalidStat, stat.ID)
	case stat.Count < 0:
		return fmt.Errorf("%w: genre %d has negative count", ErrInvalidStat, stat.ID)
	}
	return nil
}
