package user

import (
	"time"

	domain "user-web-service/internal/domain/user"
)

// User represents a user DTO for API responses.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromEntity(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string `validate:"required,min=3,max=100"`
	Email string `validate:"required,email,max=100"`
}

// UpdateUserRequest represents the request payload for updating an existing
// user. Empty fields keep their stored values.
type UpdateUserRequest struct {
	ID    int64  `validate:"required"`
	Name  string `validate:"omitempty,min=3,max=100"`
	Email string `validate:"omitempty,email,max=100"`
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// ListUsersRequest represents the request payload for listing users.
// It supports pagination and an optional search query.
type ListUsersRequest struct {
	Query string
	Page  int64
	Limit int64
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users      []User
	Pagination *domain.Pagination
}
