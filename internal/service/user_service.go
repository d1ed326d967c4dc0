package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"maktab/internal/domain"
	"maktab/internal/port"
)

// CreateUserInput is the DTO for creating users.
type CreateUserInput struct {
	Username string          `json:"username" binding:"required,min=3"`
	Password string          `json:"password" binding:"required,min=8"`
	FullName string          `json:"full_name" binding:"required"`
	Email    string          `json:"email" binding:"omitempty,email"`
	Role     domain.UserRole `json:"role" binding:"required"`
}

// UpdateUserInput is the DTO for updating users. The password is optional;
// when present the user's password is replaced.
type UpdateUserInput struct {
	FullName string          `json:"full_name" binding:"required"`
	Email    string          `json:"email" binding:"omitempty,email"`
	Role     domain.UserRole `json:"role" binding:"required"`
	IsActive *bool           `json:"is_active"`
	Password string          `json:"password" binding:"omitempty,min=8"`
}

// UserService defines the user management contract. All operations are
// admin-only; the handler layer enforces that.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo port.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo port.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleUser {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("user.Create hashing: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Email:        input.Email,
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleUser {
		return nil, domain.ErrValidation
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	user.Email = input.Email
	user.Role = input.Role
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("user.Update hashing: %w", err)
		}
		if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
