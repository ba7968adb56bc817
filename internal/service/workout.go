package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/fitness-tracker/internal/apperror"
	"github.com/sakif/fitness-tracker/internal/model"
	"github.com/sakif/fitness-tracker/internal/repository"
)

// WorkoutInput carries the measurement fields of a workout being saved.
//
// WHY POINTER FIELDS?
// JSON decoding into plain float64/int cannot tell "the client sent 0" apart
// from "the client omitted the field" — both land as the zero value. With
// pointers, an omitted field decodes to nil, so Save can reject structurally
// incomplete records while still accepting legitimate zeroes. A field of the
// wrong kind ("age": "thirty") fails at decode time in the handler instead.
//
// The ledger checks COMPLETENESS only. Whether 300 is a plausible heart rate
// is between the user and the calorie model — the source system never
// validated ranges and neither do we.
type WorkoutInput struct {
	Calories  *float64 `json:"calories"`
	Gender    *int     `json:"gender"`
	Age       *int     `json:"age"`
	Height    *float64 `json:"height"`
	Weight    *float64 `json:"weight"`
	Duration  *int     `json:"duration"`
	HeartRate *int     `json:"heart_rate"`
	BodyTemp  *float64 `json:"body_temp"`
}

// WorkoutService handles business logic for the workout ledger.
// Every method takes the OWNER's user id as resolved by the auth middleware —
// nothing here ever trusts an id from a request body.
type WorkoutService struct {
	workouts repository.WorkoutRepository
	logger   *slog.Logger
}

// NewWorkoutService creates a WorkoutService.
func NewWorkoutService(workouts repository.WorkoutRepository, logger *slog.Logger) *WorkoutService {
	return &WorkoutService{
		workouts: workouts,
		logger:   logger,
	}
}

// Save validates structural completeness and persists a workout for userID.
// Returns the new workout's id.
func (s *WorkoutService) Save(ctx context.Context, userID int64, input WorkoutInput) (int64, error) {
	// Each required field gets its own error naming the field, so a client
	// fixing its payload doesn't have to guess.
	switch {
	case input.Calories == nil:
		return 0, apperror.ValidationFailed("calories", "calories is required")
	case input.Gender == nil:
		return 0, apperror.ValidationFailed("gender", "gender is required")
	case input.Age == nil:
		return 0, apperror.ValidationFailed("age", "age is required")
	case input.Height == nil:
		return 0, apperror.ValidationFailed("height", "height is required")
	case input.Weight == nil:
		return 0, apperror.ValidationFailed("weight", "weight is required")
	case input.Duration == nil:
		return 0, apperror.ValidationFailed("duration", "duration is required")
	case input.HeartRate == nil:
		return 0, apperror.ValidationFailed("heart_rate", "heart_rate is required")
	case input.BodyTemp == nil:
		return 0, apperror.ValidationFailed("body_temp", "body_temp is required")
	}

	workout := &model.Workout{
		UserID:    userID,
		Calories:  *input.Calories,
		Gender:    *input.Gender,
		Age:       *input.Age,
		Height:    *input.Height,
		Weight:    *input.Weight,
		Duration:  *input.Duration,
		HeartRate: *input.HeartRate,
		BodyTemp:  *input.BodyTemp,
	}

	if err := s.workouts.Create(ctx, workout); err != nil {
		return 0, fmt.Errorf("service/workout: saving workout for user %d: %w", userID, err)
	}

	s.logger.Info("workout saved",
		slog.Int64("userID", userID),
		slog.Int64("workoutID", workout.ID),
		slog.Float64("calories", workout.Calories),
	)

	return workout.ID, nil
}

// List returns the user's workouts, newest first.
func (s *WorkoutService) List(ctx context.Context, userID int64) ([]model.Workout, error) {
	workouts, err := s.workouts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/workout: listing workouts for user %d: %w", userID, err)
	}
	return workouts, nil
}

// Delete removes a workout if and only if userID owns it.
//
// A foreign-owned workout produces the SAME NotFound as a nonexistent one.
// The repository already fuses the two checks into a single predicate; this
// layer just translates "nothing deleted" into the error the handler maps
// to 404 — never a permission error that would confirm the row exists.
func (s *WorkoutService) Delete(ctx context.Context, userID, workoutID int64) error {
	deleted, err := s.workouts.Delete(ctx, workoutID, userID)
	if err != nil {
		return fmt.Errorf("service/workout: deleting workout %d: %w", workoutID, err)
	}
	if !deleted {
		return apperror.NotFound("workout", workoutID)
	}

	s.logger.Info("workout deleted",
		slog.Int64("userID", userID),
		slog.Int64("workoutID", workoutID),
	)

	return nil
}

// Stats aggregates the user's full workout set at call time.
func (s *WorkoutService) Stats(ctx context.Context, userID int64) (*model.Stats, error) {
	stats, err := s.workouts.StatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/workout: computing stats for user %d: %w", userID, err)
	}
	return stats, nil
}
