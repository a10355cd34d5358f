package user

import "time"

// User represents a user entity in the system.
type User struct {
	ID        int64     // ID is the unique identifier for the user
	Name      string    // Name is the full name of the user
	Email     string    // Email is the unique email address of the user
	CreatedAt time.Time // CreatedAt is when the row was inserted
	UpdatedAt time.Time // UpdatedAt is when the row was last modified
}
