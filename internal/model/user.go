package model

import (
	"errors"
	"time"
)

// User represents an author in the system
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	DisplayName    *string   `db:"display_name" json:"display_name"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the lightweight author representation embedded in posts and comments.
type UserSummary struct {
	ID          int64   `db:"id" json:"id"`
	Username    string  `db:"username" json:"username"`
	DisplayName *string `db:"display_name" json:"display_name"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")
)
