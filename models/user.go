package models

import "time"

// DefaultRole is assigned to a user when registration does not specify one.
const DefaultRole = "user"

// User represents an account entity used for authentication and authorization
// on the solar-monitoring platform. Sensitive fields must never be exposed
// outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique user identifier used during authentication.
	// Comparison is case-sensitive.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This value MUST be a derived value, never plaintext, and is never
	// serialised to JSON.
	PasswordHash string `json:"-"`

	// Phone is the user's contact phone number. Free-text, non-sensitive.
	Phone string `json:"phone"`

	// Role is the user's platform role (e.g. "user", "admin").
	// Defaults to [DefaultRole] at registration time.
	Role string `json:"role"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
