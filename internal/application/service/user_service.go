package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/pkg/apperror"
	"github.com/sangkips/salespoint-api/pkg/pagination"
	"github.com/sangkips/salespoint-api/pkg/utils"
)

// UserService handles operator account management
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Username string
	FullName string
	Email    string
	Password string
	Role     enum.Role
}

// CreateUser creates a new operator account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if !input.Role.Valid() {
		return nil, apperror.NewBadRequestError("Invalid role")
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	if input.Email != "" {
		existing, err = s.userRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Email already in use")
		}
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: input.Username,
		FullName: input.FullName,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     input.Role,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser returns a single user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers returns a paginated list of users
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	return s.userRepo.List(ctx, params, search)
}

// UpdateUserInput represents the update user input
type UpdateUserInput struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Role     enum.Role
	Password string
}

// UpdateUser updates an operator account
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}

	if input.Email != "" && input.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, apperror.NewConflictError("Email already in use")
		}
		user.Email = input.Email
	}

	if input.Role != "" {
		if !input.Role.Valid() {
			return nil, apperror.NewBadRequestError("Invalid role")
		}
		user.Role = input.Role
	}

	if input.Password != "" {
		hashedPassword, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ToggleUserStatus activates or deactivates an account. Deactivated cashiers
// cannot log in but their transaction history is preserved.
func (s *UserService) ToggleUserStatus(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser soft-deletes an operator account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	return s.userRepo.Delete(ctx, id)
}
