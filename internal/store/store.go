// Package store persists participants and messages in a SQL database.
// Both MySQL and SQLite are supported; statements use only the subset of SQL
// the two dialects share.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"batepapo/internal/model"
)

// SQL is the database/sql backed record store.
type SQL struct {
	db *sql.DB
}

// New wraps an open database handle. Migrations must already be applied.
func New(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// CreateParticipant inserts p and its join announcement in one transaction.
// It returns ErrDuplicate if p.Name is already registered.
func (s *SQL) CreateParticipant(ctx context.Context, p model.Participant, join model.Message) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (name, last_seen) VALUES (?, ?)",
			p.Name, p.LastSeen.UnixMilli(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert participant: %w", err)
		}
		return insertMessage(ctx, tx, join)
	})
}

// ListParticipants returns every registered participant ordered by name.
func (s *SQL) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, last_seen FROM participants ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	participants := []model.Participant{}
	for rows.Next() {
		var (
			p        model.Participant
			lastSeen int64
		)
		if err := rows.Scan(&p.Name, &lastSeen); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		p.LastSeen = time.UnixMilli(lastSeen)
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

// ParticipantExists reports whether name is registered.
func (s *SQL) ParticipantExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM participants WHERE name = ?)", name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("lookup participant: %w", err)
	}
	return exists, nil
}

// TouchParticipant sets last_seen for name, or returns ErrNotFound.
func (s *SQL) TouchParticipant(ctx context.Context, name string, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE participants SET last_seen = ? WHERE name = ?",
		at.UnixMilli(), name,
	)
	if err != nil {
		return fmt.Errorf("touch participant: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("touch participant: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpireParticipant removes name if its last_seen is still before cutoff and,
// in the same transaction, stores departure. It reports whether a participant
// was removed; a participant already gone or refreshed since is left alone and
// no departure is written.
func (s *SQL) ExpireParticipant(ctx context.Context, name string, cutoff time.Time, departure model.Message) (bool, error) {
	removed := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"DELETE FROM participants WHERE name = ? AND last_seen < ?",
			name, cutoff.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("delete participant: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete participant: %w", err)
		}
		if n == 0 {
			return nil
		}
		if err := insertMessage(ctx, tx, departure); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// InsertMessage appends m to the log.
func (s *SQL) InsertMessage(ctx context.Context, m model.Message) error {
	return insertMessage(ctx, s.db, m)
}

// ListMessages returns the messages visible to viewer in insertion order.
// A positive limit keeps only the newest limit entries.
func (s *SQL) ListMessages(ctx context.Context, viewer string, limit int) ([]model.Message, error) {
	const visible = `
SELECT id, from_name, to_name, body, type, sent_at
FROM messages
WHERE type = ? OR to_name = ? OR to_name = ? OR from_name = ?`
	args := []any{string(model.TypeMessage), model.Broadcast, viewer, viewer}

	query := visible + " ORDER BY seq ASC"
	if limit > 0 {
		query = visible + " ORDER BY seq DESC LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if limit > 0 {
		slices.Reverse(messages)
	}
	return messages, nil
}

// FindMessage loads one message by id, or returns ErrNotFound.
func (s *SQL) FindMessage(ctx context.Context, id string) (model.Message, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, from_name, to_name, body, type, sent_at FROM messages WHERE id = ?", id,
	)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Message{}, ErrNotFound
	}
	return m, err
}

// DeleteMessage removes message id if it was sent by owner. It returns
// ErrNotFound when no such row exists.
func (s *SQL) DeleteMessage(ctx context.Context, id, owner string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM messages WHERE id = ? AND from_name = ?", id, owner,
	)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func insertMessage(ctx context.Context, db execer, m model.Message) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO messages (id, from_name, to_name, body, type, sent_at) VALUES (?, ?, ?, ?, ?, ?)",
		m.ID, m.From, m.To, m.Text, string(m.Type), m.Time,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func scanMessage(row scanner) (model.Message, error) {
	var (
		m   model.Message
		typ string
	)
	if err := row.Scan(&m.ID, &m.From, &m.To, &m.Text, &typ, &m.Time); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Message{}, err
		}
		return model.Message{}, fmt.Errorf("scan message: %w", err)
	}
	m.Type = model.MessageType(typ)
	return m, nil
}

func (s *SQL) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
