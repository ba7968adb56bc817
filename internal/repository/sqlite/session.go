package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/fitness-tracker/internal/model"
	"github.com/sakif/fitness-tracker/internal/repository"
)

// SessionDB implements repository.SessionRepository.
type SessionDB struct {
	conn *sql.DB
}

// Sessions returns the session store.
func (db *DB) Sessions() *SessionDB {
	return &SessionDB{conn: db.conn}
}

var _ repository.SessionRepository = (*SessionDB)(nil)

// Create persists a token→user binding.
//
// The token column is UNIQUE. With 256-bit random tokens a collision will
// not happen in practice; if the generator were ever broken enough to
// produce one, the constraint turns silent corruption into a loud error.
func (s *SessionDB) Create(ctx context.Context, session *model.Session) error {
	session.CreatedAt = time.Now().UTC()

	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO sessions (user_id, token, created_at) VALUES (?, ?, ?)`,
		session.UserID,
		session.Token,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating session for user %d: %w", session.UserID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new session id: %w", err)
	}
	session.ID = id

	return nil
}

// GetByToken resolves a token by exact match.
//
// WHY (session, found, error) AND NOT A NotFound ERROR?
// An unresolvable token is the EXPECTED outcome for logged-out users and for
// garbage input — it is a normal answer, not a failure. The bool keeps the
// common path allocation-free and stops callers from accidentally logging
// every expired session as an error.
func (s *SessionDB) GetByToken(ctx context.Context, token string) (*model.Session, bool, error) {
	var sess model.Session

	err := s.conn.QueryRowContext(ctx,
		`SELECT id, user_id, token, created_at FROM sessions WHERE token = ?`,
		token,
	).Scan(
		&sess.ID,
		&sess.UserID,
		&sess.Token,
		&sess.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("sqlite: resolving session token: %w", err)
	}

	return &sess, true, nil
}

// DeleteByToken removes the binding for a token.
//
// Idempotent by construction: DELETE of a missing row affects zero rows and
// returns no error, so logging out twice (or logging out with a token that
// never existed) is harmless.
func (s *SessionDB) DeleteByToken(ctx context.Context, token string) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("sqlite: deleting session: %w", err)
	}
	return nil
}
