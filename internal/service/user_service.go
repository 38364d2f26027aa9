package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stackshack/internal/model"
	"stackshack/internal/policy"
	"stackshack/internal/repository"
	"stackshack/internal/utils"
)

// UserService provides the admin user-management operations
type UserService interface {
	ListUsers(ctx context.Context, actor *model.Principal) ([]model.User, error)
	CreateUser(ctx context.Context, actor *model.Principal, username, password, role string) (*model.User, error)
	UpdateUserRole(ctx context.Context, actor *model.Principal, userID int, role string) error
	DeleteUser(ctx context.Context, actor *model.Principal, userID int) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) authorize(actor *model.Principal) error {
	if actor == nil || !policy.Allowed(actor.Role, policy.ActionManageUsers) {
		return ErrForbidden
	}
	return nil
}

// ListUsers returns every account. Admin only.
func (s *userService) ListUsers(ctx context.Context, actor *model.Principal) ([]model.User, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser creates an account with any role. Admin only.
func (s *userService) CreateUser(ctx context.Context, actor *model.Principal, username, password, role string) (*model.User, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateUserRole changes an account's role. Admin only.
func (s *userService) UpdateUserRole(ctx context.Context, actor *model.Principal, userID int, role string) error {
	if err := s.authorize(actor); err != nil {
		return err
	}
	if !model.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update user role: %w", err)
	}
	return nil
}

// DeleteUser removes an account. Admin only. The user's orders are removed
// by the cascade on orders.user_id.
func (s *userService) DeleteUser(ctx context.Context, actor *model.Principal, userID int) error {
	if err := s.authorize(actor); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
