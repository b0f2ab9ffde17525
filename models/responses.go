package models

// RegisterResponse is the JSON payload returned on successful registration.
type RegisterResponse struct {
	// Status is always "success" when registration completes.
	Status string `json:"status"`

	// Email echoes back the registered email address.
	Email string `json:"email"`
}

// LoginResponse is the JSON payload returned on successful login.
type LoginResponse struct {
	// Token is the signed JWT issued for the session.
	Token string `json:"token"`

	// Email is the authenticated user's email address.
	Email string `json:"email"`

	// Role is the authenticated user's platform role.
	Role string `json:"role"`

	// UserID is the internal identifier of the authenticated user.
	UserID int64 `json:"user_id"`
}

// DeleteResponse is the JSON payload returned when a user record is removed.
type DeleteResponse struct {
	// Status is always "deleted" when the operation completes.
	Status string `json:"status"`

	// Email echoes back the removed email address.
	Email string `json:"email"`
}
