package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "userID", id), ANY package that knows the string "userID"
// can read or shadow your value. Using a package-private type prevents collisions:
// only THIS package can create a key of type contextKey, so only this package
// can read or write userID values in the context.
type contextKey string

const userIDKey contextKey = "userID"

// SessionResolver looks up the user id bound to a session token.
//
// found=false covers never-issued, already-deleted, and malformed tokens
// uniformly — callers cannot distinguish the three, which is deliberate.
// The service layer implements this; tests use a two-line fake.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (userID int64, found bool, err error)
}

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// It is the single enforcement point for workout ownership: handlers never
// trust a user id from the request body — the id always comes from here,
// resolved from a verified session.
//
// CONTRACT:
//  1. No Authorization header → 401, request stops
//  2. Strip the "Bearer " prefix if present (clients send both forms)
//  3. Resolve the token against the session store
//  4. Unknown token → 401, request stops
//  5. Otherwise stash the user id in the request context and continue
//
// MIDDLEWARE PATTERN IN GO:
// A middleware is a function that takes an http.Handler and returns a new
// http.Handler that wraps it. Chi applies middlewares in a chain:
// req → M1 → M2 → Handler → M2 → M1 → resp
func RequireAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromHeader(r)
			if token == "" {
				writeUnauthorized(w, "no token provided")
				return
			}

			userID, found, err := sessions.ResolveSession(r.Context(), token)
			if err != nil || !found {
				writeUnauthorized(w, "invalid token")
				return
			}

			// Store userID in context so handlers can read it
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's id from the request context.
//
// Returns (0, false) if RequireAuth did not run on this request — which in
// practice means a route was registered outside the protected group by
// mistake. Handlers treat that as a programming error.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id != 0
}

// TokenFromHeader extracts the bearer token from the Authorization header.
//
// Accepts both "Bearer <token>" and a bare "<token>" — the original clients
// of this API sent both, so the prefix is optional rather than required.
// Returns "" when the header is missing or empty.
func TokenFromHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// writeUnauthorized sends the standard 401 body. Revoked, never-issued and
// malformed tokens all produce the same "invalid token" message — the reply
// must not reveal whether a token ever existed.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthenticated","message":"` + message + `"}`))
}
