package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-web-service/internal/domain/user"
	"user-web-service/pkg/apperrors"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// to be used interchangeably.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, query string, page, limit int64) ([]domain.User, int64, error)
}

// Service implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

var _ Usecase = (*Service)(nil)

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed
// validation error with a human-readable message.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("", err.Error())
	}

	var messages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return apperrors.NewValidationError("", strings.Join(messages, ", "))
}

// CreateUser creates a new user after validating the request and checking
// email uniqueness.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("create user validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		s.log.Warn("email already exists", zap.String("email", in.Email))
		return nil, apperrors.NewAlreadyExistsError("user", "email already registered")
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return fromEntity(created), nil
}

// GetUser retrieves a user by ID after validating the request.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	if in.ID <= 0 {
		s.log.Warn("get user validation failed", zap.Int64("id", in.ID))
		return nil, apperrors.NewValidationError("id", "invalid user id")
	}

	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Warn("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return fromEntity(u), nil
}

// UpdateUser applies a partial update to an existing user. Fields left
// empty in the request keep their stored values. The email uniqueness
// check ignores the user's own row.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	s.log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("update user validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Warn("update target not found", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	if in.Name != "" {
		existing.Name = in.Name
	}
	if in.Email != "" && in.Email != existing.Email {
		other, err := s.repo.GetByEmail(ctx, in.Email)
		if err != nil {
			s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
			return nil, apperrors.NewInternalError("failed to validate email uniqueness", err)
		}
		if other != nil && other.ID != in.ID {
			s.log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("existing_id", other.ID))
			return nil, apperrors.NewAlreadyExistsError("user", "email already in use")
		}
		existing.Email = in.Email
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return fromEntity(updated), nil
}

// DeleteUser deletes a user after validating the user ID.
func (s *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) error {
	s.log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		s.log.Warn("delete user validation failed", zap.Int64("id", in.ID))
		return apperrors.NewValidationError("id", "invalid user id")
	}

	if err := s.repo.Delete(ctx, in.ID); err != nil {
		s.log.Warn("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return err
	}

	return nil
}

// ListUsers retrieves a paginated list of users with optional search.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = defaultPageLimit
	}
	if in.Limit > maxPageLimit {
		in.Limit = maxPageLimit
	}

	s.log.Info("listing users", zap.String("query", in.Query), zap.Int64("page", in.Page), zap.Int64("limit", in.Limit))

	domainUsers, total, err := s.repo.List(ctx, in.Query, in.Page, in.Limit)
	if err != nil {
		s.log.Warn("failed to list users", zap.String("query", in.Query), zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = *fromEntity(&du)
	}

	return &ListUsersResponse{
		Users:      users,
		Pagination: domain.NewPagination(total, in.Page, in.Limit),
	}, nil
}
