package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/fitness-tracker/internal/auth"
	"github.com/sakif/fitness-tracker/internal/model"
	"github.com/sakif/fitness-tracker/internal/service"
)

// WorkoutHandler exposes the workout ledger: save, list, delete, stats.
//
// Every route here sits behind auth.RequireAuth, so the user id is always
// read from the request context — NEVER from the body or the URL. A client
// cannot act on another user's ledger no matter what it sends.
type WorkoutHandler struct {
	workouts *service.WorkoutService
	logger   *slog.Logger
}

// NewWorkoutHandler creates a WorkoutHandler.
func NewWorkoutHandler(workouts *service.WorkoutService, logger *slog.Logger) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts, logger: logger}
}

// mustUserID reads the authenticated user id. The middleware guarantees it
// is present on protected routes; its absence means a route was wired
// outside the protected group, which we fail loudly rather than serve.
func mustUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		slog.Error("protected handler reached without authenticated user",
			slog.String("path", r.URL.Path))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return 0, false
	}
	return userID, true
}

// HandleList returns the caller's workouts, newest first.
//
// HTTP: GET /workouts
// RESPONSE: {"workouts": [...]} — [] (not null) for an empty ledger.
func (h *WorkoutHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	workouts, err := h.workouts.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]model.Workout{"workouts": workouts})
}

// HandleCreate saves a workout for the caller.
//
// HTTP: POST /workouts
// BODY: the eight measurement fields; all are required, none are
// range-checked (the ledger stores what the client measured).
//
// A field of the wrong JSON kind ("age": "thirty") fails the decode and
// reports 400 — same taxonomy as a missing field, different detection point.
func (h *WorkoutHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var input service.WorkoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	id, err := h.workouts.Save(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"message": "Workout saved",
	})
}

// HandleDelete removes one of the caller's workouts.
//
// HTTP: DELETE /workouts/{id}
//
// A non-numeric id, an id that doesn't exist, and an id owned by someone
// else all answer 404 — one indistinguishable "not found", so the endpoint
// cannot be used to probe which ids exist.
func (h *WorkoutHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	workoutID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Workout not found",
		})
		return
	}

	if err := h.workouts.Delete(r.Context(), userID, workoutID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Workout deleted"})
}

// HandleStats returns the aggregate over the caller's full ledger.
//
// HTTP: GET /stats
// RESPONSE: {"total_workouts": n, "total_calories": x, "avg_calories": x|null, "total_duration": n}
func (h *WorkoutHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.workouts.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
