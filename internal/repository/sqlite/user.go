package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/fitness-tracker/internal/apperror"
	"github.com/sakif/fitness-tracker/internal/model"
	"github.com/sakif/fitness-tracker/internal/repository"
)

// UserDB implements repository.UserRepository on top of the shared pool.
// Obtained via DB.Users() so the three stores share one connection pool and
// one migration lifecycle but keep their methods in separate namespaces.
type UserDB struct {
	conn *sql.DB
}

// Users returns the user store.
func (db *DB) Users() *UserDB {
	return &UserDB{conn: db.conn}
}

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors immediately instead of at
// the first call site that passes a *Y where an X is expected.
var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user.
//
// UNIQUENESS IS THE DATABASE'S JOB:
// We do NOT pre-check "does this username exist?" — that would be a
// check-then-act race: two concurrent signups could both pass the check and
// both insert. Instead we just insert and let the UNIQUE constraints decide;
// SQLite guarantees exactly one of two racing inserts wins, and the loser
// gets a constraint error we translate to a Conflict.
//
// PARAMETERIZED QUERIES (the ? placeholders):
// Never build SQL with string concatenation — that is how SQL injection
// happens. The driver escapes each ? argument safely.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sqlite: creating user %q: %w",
				user.Username, apperror.Conflict("username or email already exists"))
		}
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}

	// The database assigned the id — read it back into the caller's struct.
	// Pointer receiver on user means the caller sees ID and CreatedAt filled.
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByUsername retrieves a user by their exact username.
// Returns an error wrapping apperror.ErrNotFound if no such user exists.
func (u *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var usr model.User

	err := u.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE username = ?`,
		username,
	).Scan(
		&usr.ID,
		&usr.Username,
		&usr.Email,
		&usr.PasswordHash,
		&usr.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// Bare sentinel, no AppError: the only caller is the login path,
			// which maps any miss to "invalid credentials" before a message
			// could ever reach a client.
			return nil, fmt.Errorf("sqlite: user %q: %w", username, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	return &usr, nil
}
