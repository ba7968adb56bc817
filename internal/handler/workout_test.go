package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/fitness-tracker/internal/auth"
	"github.com/sakif/fitness-tracker/internal/handler"
	"github.com/sakif/fitness-tracker/internal/model"
	"github.com/sakif/fitness-tracker/internal/repository/sqlite"
	"github.com/sakif/fitness-tracker/internal/service"
)

// workoutFixture is a router with the workout routes mounted behind the real
// session guard, plus a signed-up user's token to call them with.
type workoutFixture struct {
	router *chi.Mux
	svc    *service.AuthService
	token  string
}

func newWorkoutFixture(t *testing.T) *workoutFixture {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	authSvc := service.NewAuthService(db.Users(), db.Sessions(), auth.NewPasswordServiceForTest(4), logger)
	workoutSvc := service.NewWorkoutService(db.Workouts(), logger)
	wh := handler.NewWorkoutHandler(workoutSvc, logger)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(authSvc))
		r.Get("/workouts", wh.HandleList)
		r.Post("/workouts", wh.HandleCreate)
		r.Delete("/workouts/{id}", wh.HandleDelete)
		r.Get("/stats", wh.HandleStats)
	})

	result, err := authSvc.Signup(context.Background(), "runner", "r@x.com", "pw")
	require.NoError(t, err)

	return &workoutFixture{router: r, svc: authSvc, token: result.Token}
}

// do sends a request with the fixture user's token.
func (f *workoutFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return f.doAs(t, f.token, method, path, body)
}

func (f *workoutFixture) doAs(t *testing.T, token, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

const validWorkout = `{
	"calories": 250.5, "gender": 1, "age": 30, "height": 175.0,
	"weight": 70.0, "duration": 45, "heart_rate": 120, "body_temp": 38.5
}`

func TestWorkoutCreateAndList(t *testing.T) {
	f := newWorkoutFixture(t)

	rr := f.do(t, http.MethodPost, "/workouts", validWorkout)
	require.Equal(t, http.StatusOK, rr.Code)

	var created struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Workout saved", created.Message)

	rr = f.do(t, http.MethodGet, "/workouts", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var listed struct {
		Workouts []model.Workout `json:"workouts"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&listed))
	require.Len(t, listed.Workouts, 1)
	assert.Equal(t, created.ID, listed.Workouts[0].ID)
	assert.Equal(t, 250.5, listed.Workouts[0].Calories)
	assert.Equal(t, 45, listed.Workouts[0].Duration)
}

func TestWorkoutList_Empty(t *testing.T) {
	f := newWorkoutFixture(t)

	rr := f.do(t, http.MethodGet, "/workouts", "")
	require.Equal(t, http.StatusOK, rr.Code)

	// An empty ledger is [], never null — clients iterate without a nil check.
	assert.JSONEq(t, `{"workouts": []}`, rr.Body.String())
}

func TestWorkoutCreate_MissingField(t *testing.T) {
	f := newWorkoutFixture(t)

	rr := f.do(t, http.MethodPost, "/workouts",
		`{"calories": 250.5, "gender": 1, "age": 30}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "validation_error")
}

func TestWorkoutCreate_WrongType(t *testing.T) {
	f := newWorkoutFixture(t)

	rr := f.do(t, http.MethodPost, "/workouts",
		`{"calories": 250.5, "gender": 1, "age": "thirty", "height": 175.0,
		  "weight": 70.0, "duration": 45, "heart_rate": 120, "body_temp": 38.5}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWorkoutCreate_Unauthenticated(t *testing.T) {
	f := newWorkoutFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/workouts", bytes.NewBufferString(validWorkout))
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWorkoutDelete(t *testing.T) {
	f := newWorkoutFixture(t)

	rr := f.do(t, http.MethodPost, "/workouts", validWorkout)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	rr = f.do(t, http.MethodDelete, fmt.Sprintf("/workouts/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Workout deleted")

	rr = f.do(t, http.MethodGet, "/workouts", "")
	assert.JSONEq(t, `{"workouts": []}`, rr.Body.String())
}

func TestWorkoutDelete_NotFound(t *testing.T) {
	f := newWorkoutFixture(t)

	// Nonexistent id and garbage id both answer the same 404.
	for _, path := range []string{"/workouts/9999", "/workouts/abc"} {
		rr := f.do(t, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, "path %s", path)
		assert.Contains(t, rr.Body.String(), "Workout not found")
	}
}

func TestWorkoutDelete_OtherUsersWorkout(t *testing.T) {
	f := newWorkoutFixture(t)

	rr := f.do(t, http.MethodPost, "/workouts", validWorkout)
	require.Equal(t, http.StatusOK, rr.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	other, err := f.svc.Signup(context.Background(), "intruder", "i@x.com", "pw")
	require.NoError(t, err)

	// Deleting someone else's workout is indistinguishable from deleting a
	// workout that doesn't exist.
	rr = f.doAs(t, other.Token, http.MethodDelete, fmt.Sprintf("/workouts/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// And the owner still has it.
	rr = f.do(t, http.MethodGet, "/workouts", "")
	var listed struct {
		Workouts []model.Workout `json:"workouts"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&listed))
	assert.Len(t, listed.Workouts, 1)
}

func TestWorkoutStats(t *testing.T) {
	f := newWorkoutFixture(t)

	for _, body := range []string{
		`{"calories": 100, "gender": 1, "age": 30, "height": 175, "weight": 70, "duration": 30, "heart_rate": 110, "body_temp": 38}`,
		`{"calories": 200, "gender": 1, "age": 30, "height": 175, "weight": 70, "duration": 60, "heart_rate": 130, "body_temp": 39}`,
	} {
		rr := f.do(t, http.MethodPost, "/workouts", body)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := f.do(t, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"total_workouts": 2,
		"total_calories": 300,
		"avg_calories": 150,
		"total_duration": 90
	}`, rr.Body.String())
}

func TestWorkoutStats_EmptyLedger(t *testing.T) {
	f := newWorkoutFixture(t)

	rr := f.do(t, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)

	// No workouts: totals are zero, the average is null (0 would be a lie).
	assert.JSONEq(t, `{
		"total_workouts": 0,
		"total_calories": 0,
		"avg_calories": null,
		"total_duration": 0
	}`, rr.Body.String())
}
