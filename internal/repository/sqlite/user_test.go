package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sakif/fitness-tracker/internal/apperror"
	"github.com/sakif/fitness-tracker/internal/model"
)

// newTestDB is a "test helper" — a function used only in tests to reduce boilerplate.
// The `t.Helper()` call tells Go's test framework to report errors at the CALLER's
// line number, not inside this function. This makes test failure output much clearer.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	// t.Cleanup registers a function to run when the test finishes.
	// This is like defer, but scoped to the test — even works in subtests.
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser creates a user and fails the test if it errors.
func createTestUser(t *testing.T, u *UserDB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$fakehashfortesting000000000000000000000000000000000",
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestUserCreate(t *testing.T) {
	u := newTestDB(t).Users()

	user := &model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$04$somehash",
	}

	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Verify the user was modified in-place (pointer receiver)
	if user.ID == 0 {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestUserCreate_AssignsIncreasingIDs(t *testing.T) {
	u := newTestDB(t).Users()

	first := createTestUser(t, u, "first")
	second := createTestUser(t, u, "second")

	if second.ID <= first.ID {
		t.Errorf("ids not increasing: first=%d second=%d", first.ID, second.ID)
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	u := newTestDB(t).Users()

	createTestUser(t, u, "alice")

	// Same username, DIFFERENT email — still a conflict.
	duplicate := &model.User{
		Username:     "alice",
		Email:        "alice-other@example.com",
		PasswordHash: "$2a$04$otherhash",
	}
	err := u.Create(context.Background(), duplicate)
	if err == nil {
		t.Fatal("Create() should have failed for duplicate username")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	u := newTestDB(t).Users()

	createTestUser(t, u, "alice")

	duplicate := &model.User{
		Username:     "alice2",
		Email:        "alice@example.com", // same email
		PasswordHash: "$2a$04$otherhash",
	}
	err := u.Create(context.Background(), duplicate)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestUserCreate_ConcurrentDuplicates(t *testing.T) {
	u := newTestDB(t).Users()

	// N goroutines race to claim the same username. The UNIQUE constraint
	// inside SQLite is the only arbiter — there is no Go-side lock — so
	// exactly one insert must win and every loser must see Conflict.
	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := &model.User{
				Username:     "racer",
				Email:        "racer@example.com",
				PasswordHash: "$2a$04$somehash",
			}
			errs[i] = u.Create(context.Background(), user)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperror.ErrConflict):
			conflicts++
		default:
			t.Errorf("Create() unexpected error = %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if conflicts != n-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, n-1)
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestUserGetByUsername(t *testing.T) {
	u := newTestDB(t).Users()

	created := createTestUser(t, u, "bob")

	got, err := u.GetByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByUsername() ID = %d, want %d", got.ID, created.ID)
	}
	if got.Email != "bob@example.com" {
		t.Errorf("GetByUsername() Email = %q, want %q", got.Email, "bob@example.com")
	}
	if got.PasswordHash == "" {
		t.Error("GetByUsername() did not return the password hash (login needs it)")
	}
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	u := newTestDB(t).Users()

	_, err := u.GetByUsername(context.Background(), "nobody")
	if err == nil {
		t.Fatal("GetByUsername() should fail for an unknown username")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByUsername() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByUsername_ExactMatchOnly(t *testing.T) {
	u := newTestDB(t).Users()
	createTestUser(t, u, "carol")

	// Neither a prefix nor a different case variant may resolve.
	if _, err := u.GetByUsername(context.Background(), "caro"); err == nil {
		t.Error("GetByUsername() matched a prefix of the username")
	}
}
