package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robalyx/cipherlab/internal/cipher"
	"github.com/robalyx/cipherlab/internal/storage/types"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS history (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	alphabet TEXT NOT NULL,
	applied_shift INTEGER NOT NULL,
	characters INTEGER NOT NULL,
	preview TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS history_created_at ON history (created_at);
`

const historyColumns = "id, mode, alphabet, applied_shift, characters, preview, created_at"

// Store keeps the last input and history in a SQLite database file.
// A single connection is shared and guarded by a mutex.
type Store struct {
	conn         *sqlite.Conn
	historyLimit int
	logger       *zap.Logger
	mu           sync.Mutex
}

// New opens or creates the database at path and ensures its schema.
func New(path string, historyLimit int, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite|sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Debug("Opened SQLite store", zap.String("path", path))

	return &Store{
		conn:         conn,
		historyLimit: historyLimit,
		logger:       logger,
	}, nil
}

// SaveInput replaces the stored last input.
func (s *Store) SaveInput(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	err := sqlitex.Execute(s.conn, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, &sqlitex.ExecOptions{
		Args: []any{types.LastInputKey, text, time.Now().UnixNano()},
	})
	if err != nil {
		return fmt.Errorf("failed to save input: %w", err)
	}

	return nil
}

// LastInput returns the stored last input.
func (s *Store) LastInput(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	var (
		value string
		found bool
	)

	err := sqlitex.Execute(s.conn, "SELECT value FROM settings WHERE key = ?", &sqlitex.ExecOptions{
		Args: []any{types.LastInputKey},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to load input: %w", err)
	}

	return value, found, nil
}

// AddHistory inserts an entry and trims the table to the history limit.
func (s *Store) AddHistory(ctx context.Context, entry *types.HistoryEntry) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	defer sqlitex.Save(s.conn)(&err)

	err = sqlitex.Execute(s.conn,
		"INSERT INTO history ("+historyColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		&sqlitex.ExecOptions{
			Args: []any{
				entry.ID.String(),
				entry.Mode.String(),
				entry.Alphabet.String(),
				entry.AppliedShift,
				entry.Characters,
				entry.Preview,
				entry.CreatedAt.UnixNano(),
			},
		})
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	if s.historyLimit > 0 {
		err = sqlitex.Execute(s.conn, `
			DELETE FROM history WHERE rowid NOT IN (
				SELECT rowid FROM history ORDER BY created_at DESC, rowid DESC LIMIT ?
			)
		`, &sqlitex.ExecOptions{
			Args: []any{s.historyLimit},
		})
		if err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
	}

	return nil
}

// History returns up to limit entries, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]*types.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	if limit <= 0 {
		limit = -1
	}

	var entries []*types.HistoryEntry

	err := sqlitex.Execute(s.conn,
		"SELECT "+historyColumns+" FROM history ORDER BY created_at DESC, rowid DESC LIMIT ?",
		&sqlitex.ExecOptions{
			Args: []any{limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				entry, err := scanEntry(stmt)
				if err != nil {
					s.logger.Warn("Skipping malformed history row", zap.Error(err))
					return nil
				}
				entries = append(entries, entry)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return entries, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

func scanEntry(stmt *sqlite.Stmt) (*types.HistoryEntry, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}

	mode, err := cipher.ModeString(stmt.ColumnText(1))
	if err != nil {
		return nil, err
	}

	alphabet, err := cipher.AlphabetIDString(stmt.ColumnText(2))
	if err != nil {
		return nil, err
	}

	return &types.HistoryEntry{
		ID:           id,
		Mode:         mode,
		Alphabet:     alphabet,
		AppliedShift: stmt.ColumnInt(3),
		Characters:   stmt.ColumnInt(4),
		Preview:      stmt.ColumnText(5),
		CreatedAt:    time.Unix(0, stmt.ColumnInt64(6)),
	}, nil
}
