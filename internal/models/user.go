package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user, assigned by the database.
	ID int64

	// Email is the user's email address (unique, stored case-sensitive).
	// Used for login.
	Email string

	// Name is the display name of the user.
	Name string

	// PasswordHash is the bcrypt digest of the user's password.
	// The plaintext password is never persisted or logged.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}
