package models

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is the user's email address (unique).
	Email string `json:"email"`

	// FullName is the display name shown to other members.
	FullName string `json:"full_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string `json:"-"`

	// Active reports whether the account is enabled. Accounts are
	// deactivated rather than deleted.
	Active bool `json:"is_active"`

	// HomeID is the home this user belongs to, empty if none.
	// A user belongs to at most one home.
	HomeID string `json:"home_id,omitempty"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"date_created"`
}
