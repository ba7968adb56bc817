package repository

import (
	"context"

	"github.com/sakif/fitness-tracker/internal/model"
)

// UserRepository owns the user set. Users are created once at signup and are
// immutable afterwards — there is deliberately no Update or Delete.
type UserRepository interface {
	// Create inserts a new user and fills in ID and CreatedAt.
	// Returns an error wrapping apperror.ErrConflict if the username or
	// email is already taken.
	Create(ctx context.Context, user *model.User) error

	// GetByUsername returns the user with that exact username, or an error
	// wrapping apperror.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// SessionRepository owns the session set. It references users by id only.
type SessionRepository interface {
	// Create persists a token→user binding and fills in ID and CreatedAt.
	Create(ctx context.Context, session *model.Session) error

	// GetByToken is an exact-match lookup. (nil, false, nil) means the token
	// does not resolve — never issued, already deleted, or garbage.
	GetByToken(ctx context.Context, token string) (*model.Session, bool, error)

	// DeleteByToken removes the binding. Deleting a token that does not
	// exist is not an error — logout is idempotent.
	DeleteByToken(ctx context.Context, token string) error
}

// WorkoutRepository owns the workout set, always scoped by user id.
type WorkoutRepository interface {
	// Create inserts a workout and fills in ID and CreatedAt.
	Create(ctx context.Context, workout *model.Workout) error

	// ListByUser returns the user's workouts newest-first. An empty slice,
	// not an error, when the user has none.
	ListByUser(ctx context.Context, userID int64) ([]model.Workout, error)

	// Delete removes the workout only if it exists AND belongs to userID,
	// in a single statement. Returns whether a row was deleted — callers
	// cannot tell "not yours" apart from "does not exist", by design.
	Delete(ctx context.Context, workoutID, userID int64) (bool, error)

	// StatsByUser aggregates count/sums/average over the user's workouts at
	// call time. Nothing is cached or persisted.
	StatsByUser(ctx context.Context, userID int64) (*model.Stats, error)
}
