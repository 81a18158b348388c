package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"jsonbrowse/internal/domain"
	"jsonbrowse/internal/ports"
)

const schemaVersion = "1"

// Slot names
const (
	SlotUsers    = "users"
	SlotLocation = "location"
)

// Store implements ports.LocalStore as named JSON slots in SQLite
type Store struct {
	db     *sql.DB
	path   string
	writer string
	logger *zap.Logger
}

// Ensure Store implements the store ports
var (
	_ ports.LocalStore    = (*Store)(nil)
	_ ports.LocationStore = (*Store)(nil)
)

// Open opens (creating if needed) the store database at path
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Expand ~ in path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	// Immediate transactions take the write lock up front, so two processes
	// updating the users slot serialize instead of failing on upgrade.
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS slots (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s := &Store{
		db:     db,
		path:   path,
		writer: fmt.Sprintf("%d-%d", os.Getpid(), time.Now().UnixNano()),
		logger: logger.With(zap.String("store", path)),
	}

	if err := s.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path after ~ expansion
func (s *Store) Path() string {
	return s.path
}

func (s *Store) updateMeta() error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	return err
}

// Revision returns the write counter and the id of the last writer.
// Both are empty before the first write.
func (s *Store) Revision(ctx context.Context) (int64, string, error) {
	var rev, writer sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT value FROM meta WHERE key = 'revision'),
			(SELECT value FROM meta WHERE key = 'last_writer')
	`).Scan(&rev, &writer)
	if err != nil {
		return 0, "", err
	}
	if !rev.Valid {
		return 0, writer.String, nil
	}
	n, err := strconv.ParseInt(rev.String, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("corrupt revision %q: %w", rev.String, err)
	}
	return n, writer.String, nil
}

// LoadUsers reads the users slot. A missing or unparseable slot is empty.
func (s *Store) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, SlotUsers).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return s.decodeUsers(raw), nil
}

// SaveUsers replaces the users slot
func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	return s.withTx(ctx, func(tx *slotTx) error {
		return tx.putUsers(ctx, users)
	})
}

// UpdateUsers reads, transforms and rewrites the users slot in one
// transaction. Nothing is written if fn fails.
func (s *Store) UpdateUsers(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) error {
	return s.withTx(ctx, func(tx *slotTx) error {
		raw, ok, err := tx.get(ctx, SlotUsers)
		if err != nil {
			return fmt.Errorf("failed to read users: %w", err)
		}
		users := []domain.User{}
		if ok {
			users = s.decodeUsers(raw)
		}

		next, err := fn(users)
		if err != nil {
			return err
		}
		return tx.putUsers(ctx, next)
	})
}

// LoadLocation returns the last saved fragment, or "" if none
func (s *Store) LoadLocation(ctx context.Context) (string, error) {
	var fragment string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, SlotLocation).Scan(&fragment)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read location: %w", err)
	}
	return fragment, nil
}

// SaveLocation remembers fragment for the next launch
func (s *Store) SaveLocation(ctx context.Context, fragment string) error {
	return s.withTx(ctx, func(tx *slotTx) error {
		return tx.put(ctx, SlotLocation, fragment)
	})
}

// decodeUsers parses the users slot. Everything in the slot was created
// locally, so the Local flags are restored even if the JSON lost them.
func (s *Store) decodeUsers(raw string) []domain.User {
	var users []domain.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		s.logger.Warn("users slot is not valid JSON, treating as empty", zap.Error(err))
		return []domain.User{}
	}
	if users == nil {
		return []domain.User{}
	}
	for i := range users {
		users[i].Local = true
		for j := range users[i].Todos {
			users[i].Todos[j].Local = true
		}
	}
	return users
}
