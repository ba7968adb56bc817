package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/fitness-tracker/internal/model"
	"github.com/sakif/fitness-tracker/internal/repository"
)

// WorkoutDB implements repository.WorkoutRepository.
type WorkoutDB struct {
	conn *sql.DB
}

// Workouts returns the workout store.
func (db *DB) Workouts() *WorkoutDB {
	return &WorkoutDB{conn: db.conn}
}

var _ repository.WorkoutRepository = (*WorkoutDB)(nil)

// Create inserts a workout owned by workout.UserID.
// The service layer has already checked structural completeness; by the time
// a record reaches here every field carries a value.
func (w *WorkoutDB) Create(ctx context.Context, workout *model.Workout) error {
	workout.CreatedAt = time.Now().UTC()

	res, err := w.conn.ExecContext(ctx,
		`INSERT INTO workouts
		 (user_id, calories, gender, age, height, weight, duration, heart_rate, body_temp, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		workout.UserID,
		workout.Calories,
		workout.Gender,
		workout.Age,
		workout.Height,
		workout.Weight,
		workout.Duration,
		workout.HeartRate,
		workout.BodyTemp,
		workout.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating workout for user %d: %w", workout.UserID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new workout id: %w", err)
	}
	workout.ID = id

	return nil
}

// ListByUser returns the user's workouts, newest first.
//
// ORDERING:
// created_at DESC puts the newest workout first. The secondary id DESC
// breaks timestamp ties deterministically — ids are assigned in insertion
// order, so two workouts saved in the same instant come back with the later
// insert first instead of in whatever order the btree felt like.
func (w *WorkoutDB) ListByUser(ctx context.Context, userID int64) ([]model.Workout, error) {
	rows, err := w.conn.QueryContext(ctx,
		`SELECT id, user_id, calories, gender, age, height, weight, duration, heart_rate, body_temp, created_at
		 FROM workouts
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing workouts for user %d: %w", userID, err)
	}
	// rows MUST be closed or the connection leaks back into the pool locked.
	defer rows.Close()

	// Start with an empty (non-nil) slice so a user with no workouts
	// serializes as [] rather than null.
	workouts := []model.Workout{}
	for rows.Next() {
		var wo model.Workout
		if err := rows.Scan(
			&wo.ID,
			&wo.UserID,
			&wo.Calories,
			&wo.Gender,
			&wo.Age,
			&wo.Height,
			&wo.Weight,
			&wo.Duration,
			&wo.HeartRate,
			&wo.BodyTemp,
			&wo.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning workout row: %w", err)
		}
		workouts = append(workouts, wo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating workout rows: %w", err)
	}

	return workouts, nil
}

// Delete removes a workout, but only if userID owns it.
//
// THE FUSED PREDICATE:
// `WHERE id = ? AND user_id = ?` does the existence check and the ownership
// check in ONE statement. The alternative — SELECT owner, compare, DELETE —
// is both racy and leaky: a separate "exists but not yours" answer would let
// an attacker probe which workout ids exist. Here the caller only learns
// "a row was deleted" or "no row was deleted", nothing else.
func (w *WorkoutDB) Delete(ctx context.Context, workoutID, userID int64) (bool, error) {
	res, err := w.conn.ExecContext(ctx,
		`DELETE FROM workouts WHERE id = ? AND user_id = ?`,
		workoutID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: deleting workout %d: %w", workoutID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: reading rows affected: %w", err)
	}

	return affected > 0, nil
}

// StatsByUser computes the aggregate at call time — nothing is persisted.
//
// ZERO-WORKOUT SEMANTICS:
// COUNT over no rows is 0 and SUM is NULL, so the sums are wrapped in
// COALESCE to come back as 0. AVG over no rows is also NULL — and that one
// we KEEP as NULL (scanned through sql.NullFloat64 into a *float64): an
// average of nothing is absent, not zero, and must never be a division by
// zero somewhere downstream.
func (w *WorkoutDB) StatsByUser(ctx context.Context, userID int64) (*model.Stats, error) {
	var stats model.Stats
	var avg sql.NullFloat64

	err := w.conn.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(calories), 0),
			AVG(calories),
			COALESCE(SUM(duration), 0)
		 FROM workouts
		 WHERE user_id = ?`,
		userID,
	).Scan(
		&stats.TotalWorkouts,
		&stats.TotalCalories,
		&avg,
		&stats.TotalDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: computing stats for user %d: %w", userID, err)
	}

	if avg.Valid {
		stats.AvgCalories = &avg.Float64
	}

	return &stats, nil
}
