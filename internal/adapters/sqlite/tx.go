package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"jsonbrowse/internal/domain"
)

// slotTx is a write transaction over the slots table
type slotTx struct {
	tx     *sql.Tx
	writer string
}

// withTx runs fn in a transaction, committing only if fn succeeds
func (s *Store) withTx(ctx context.Context, fn func(*slotTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	st := &slotTx{tx: tx, writer: s.writer}

	if err := fn(st); err != nil {
		_ = st.Rollback()
		return err
	}
	if err := st.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// get reads a slot; ok is false when the slot does not exist
func (t *slotTx) get(ctx context.Context, name string) (value string, ok bool, err error) {
	err = t.tx.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// put replaces a slot and records the write in meta
func (t *slotTx) put(ctx context.Context, name, value string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO slots (name, value) VALUES (?, ?)
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", name, err)
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ('revision', '1')
		ON CONFLICT(key) DO UPDATE SET value = CAST(value AS INTEGER) + 1
	`)
	if err != nil {
		return fmt.Errorf("failed to bump revision: %w", err)
	}
	_, err = t.tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES ('last_writer', ?)`, t.writer)
	return err
}

func (t *slotTx) putUsers(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	return t.put(ctx, SlotUsers, string(data))
}

// Commit commits the transaction
func (t *slotTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *slotTx) Rollback() error {
	return t.tx.Rollback()
}
