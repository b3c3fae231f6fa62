// Package store persists the current roster in a single-file SQLite
// key-value table. Writes replace the whole value; there is no history.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/MarshallMM/GrimDarkRoster/internal/parser"
)

// RosterKey is the key the current roster is saved under.
const RosterKey = "roster"

var ErrNotFound = errors.New("store: key not found")

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=10000",
	"PRAGMA synchronous=NORMAL",
}

// Store is safe for concurrent use. Writes are serialized so a reader never
// observes a half-written value.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory store.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	// One connection keeps ":memory:" databases alive and matches the
	// single-writer model.
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	log.Debug("store opened", zap.String("path", path))
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %q: %w", key, err)
	}
	return value, nil
}

// Set replaces the value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store: set %q: %w", key, err)
	}
	s.log.Debug("store write", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("store: delete %q: %w", key, err)
	}
	return nil
}

// SaveRoster overwrites the current roster.
func (s *Store) SaveRoster(ctx context.Context, r *parser.Roster) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("store: encode roster: %w", err)
	}
	return s.Set(ctx, RosterKey, data)
}

// LoadRoster returns the current roster, or ErrNotFound when none is saved.
func (s *Store) LoadRoster(ctx context.Context) (*parser.Roster, error) {
	data, err := s.Get(ctx, RosterKey)
	if err != nil {
		return nil, err
	}
	var r parser.Roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("store: decode roster: %w", err)
	}
	return &r, nil
}

func (s *Store) ClearRoster(ctx context.Context) error {
	return s.Delete(ctx, RosterKey)
}
