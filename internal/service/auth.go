// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Handlers know HTTP and nothing about SQL; repositories know SQL and
// nothing about HTTP; this layer in the middle knows the RULES — what makes
// a signup valid, what "invalid credentials" means, who may delete what.
// Services take repository INTERFACES, so tests swap in in-memory fakes and
// main swaps in SQLite, without this package changing at all.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/fitness-tracker/internal/apperror"
	"github.com/sakif/fitness-tracker/internal/auth"
	"github.com/sakif/fitness-tracker/internal/model"
	"github.com/sakif/fitness-tracker/internal/repository"
)

// ErrInvalidCredentials is returned by Login for BOTH an unknown username
// and a wrong password. Collapsing the two is deliberate: if the errors
// differed, an attacker could enumerate which usernames exist by comparing
// responses. Handlers map this to 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles signup, login, logout, and session resolution.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users     repository.UserRepository    → the user set
//   - sessions  repository.SessionRepository → token bindings
//   - passwords *auth.PasswordService        → bcrypt hashing
//   - logger    *slog.Logger                 → structured logging
type AuthService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Call this in server.go when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued session token so the
// HTTP handler can build the {token, user} response in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Signup creates a new account and immediately opens a session for it.
//
// FLOW:
//  1. Structural validation — all three fields present
//  2. bcrypt-hash the password (the plaintext is never stored anywhere)
//  3. Insert the user; a username/email collision surfaces as Conflict
//  4. Issue a session token, same as a login would
//
// The conflict check is NOT done here with a pre-read — the repository
// relies on the database's UNIQUE constraints, so a race between two
// identical signups lets exactly one through.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing signup password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Conflict propagates as-is so the handler can answer 400;
		// anything else is an internal failure.
		return nil, fmt.Errorf("service/auth: creating user %q: %w", username, err)
	}

	s.logger.Info("user signed up",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and opens a new session.
//
// Both failure modes — no such user, wrong password — return the SAME
// ErrInvalidCredentials, with the same timing profile as far as practical
// (bcrypt comparison dominates either way).
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service/auth: looking up user %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))

	token, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Logout revokes the presented token. Idempotent — logging out with an
// already-dead token succeeds silently, there is nothing useful to report.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("service/auth: deleting session: %w", err)
	}
	return nil
}

// ResolveSession implements auth.SessionResolver for the request guard.
// found=false uniformly covers never-issued, revoked, and malformed tokens.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (int64, bool, error) {
	session, found, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return 0, false, fmt.Errorf("service/auth: resolving session: %w", err)
	}
	if !found {
		return 0, false, nil
	}
	return session.UserID, true, nil
}

// openSession issues a fresh token and persists the binding.
// This is the only place token plaintext exists outside the store.
func (s *AuthService) openSession(ctx context.Context, userID int64) (string, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}

	session := &model.Session{UserID: userID, Token: token}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("service/auth: persisting session for user %d: %w", userID, err)
	}

	return token, nil
}
