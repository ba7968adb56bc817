// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// WHY int64 FOR THE ID?
// The database assigns ids via INTEGER PRIMARY KEY AUTOINCREMENT, and SQLite's
// LastInsertId() returns an int64. Using the same type end-to-end means no
// conversions and no overflow surprises.
//
// WHY `json:"-"` ON PasswordHash?
// The bcrypt hash must NEVER leave the server. The "-" tag tells encoding/json
// to skip the field entirely, so even if a handler accidentally serializes a
// whole User, the hash cannot leak into a response body.
type User struct {
	ID           int64     `json:"id"         db:"id"`
	Username     string    `json:"username"   db:"username"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session binds an opaque bearer token to a user.
//
// The token is stored in plaintext — it is looked up by exact match on every
// authenticated request, and deleting the row is what makes logout immediate.
// A user can hold many sessions at once (one per device/login).
type Session struct {
	ID        int64     `json:"id"         db:"id"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	Token     string    `json:"-"          db:"token"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
