package model

import "time"

// Workout is a single logged exercise session.
//
// The measurement fields mirror what the calorie model was trained on.
// Gender is an integer encoding and Duration an integer count — the system
// stores both as opaque numerics and does not validate their semantics,
// only that the client supplied them.
type Workout struct {
	ID        int64     `json:"id"         db:"id"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	Calories  float64   `json:"calories"   db:"calories"`
	Gender    int       `json:"gender"     db:"gender"`
	Age       int       `json:"age"        db:"age"`
	Height    float64   `json:"height"     db:"height"`
	Weight    float64   `json:"weight"     db:"weight"`
	Duration  int       `json:"duration"   db:"duration"`
	HeartRate int       `json:"heart_rate" db:"heart_rate"`
	BodyTemp  float64   `json:"body_temp"  db:"body_temp"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Stats is a read-time aggregation over one user's workouts. It is computed
// fresh on every request and never persisted.
//
// WHY *float64 FOR AvgCalories?
// With zero workouts there is no meaningful average. A pointer lets us
// serialize JSON null instead of inventing a fake 0 — the sums really are 0,
// but an average of nothing is absent, not zero.
type Stats struct {
	TotalWorkouts int64    `json:"total_workouts"`
	TotalCalories float64  `json:"total_calories"`
	AvgCalories   *float64 `json:"avg_calories"`
	TotalDuration int64    `json:"total_duration"`
}
