package service

import (
	"context"
	"errors"
	"fmt"

	"stackshack/internal/model"
	"stackshack/internal/policy"
	"stackshack/internal/repository"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuService provides menu catalog operations
type MenuService interface {
	CreateItem(ctx context.Context, actor *model.Principal, req model.CreateMenuItemRequest) (*model.MenuItem, error)
	GetItemByID(ctx context.Context, id int64) (*model.MenuItem, error)
	ListAllItems(ctx context.Context, actor *model.Principal) ([]model.MenuItem, error)
	ListAvailableItems(ctx context.Context) ([]model.MenuItem, error)
	ListHealthyChoices(ctx context.Context) ([]model.MenuItem, error)
	UpdateItem(ctx context.Context, actor *model.Principal, id int64, req model.UpdateMenuItemRequest) (*model.MenuItem, error)
	DeleteItem(ctx context.Context, actor *model.Principal, id int64) error
	ToggleAvailability(ctx context.Context, actor *model.Principal, id int64) (bool, error)
	ToggleHealthyChoice(ctx context.Context, actor *model.Principal, id int64) (bool, error)
}

type menuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new MenuService
func NewMenuService(repo repository.MenuRepository) MenuService {
	return &menuService{repo: repo}
}

func authorizeMenu(actor *model.Principal, action policy.Action) error {
	if actor == nil || !policy.Allowed(actor.Role, action) {
		return ErrForbidden
	}
	return nil
}

// CreateItem adds a new menu item. Admin or staff.
func (s *menuService) CreateItem(ctx context.Context, actor *model.Principal, req model.CreateMenuItemRequest) (*model.MenuItem, error) {
	if err := authorizeMenu(actor, policy.ActionCreateMenuItem); err != nil {
		return nil, err
	}
	if req.Name == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}

	item := &model.MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Calories:    req.Calories,
		Protein:     req.Protein,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item in repo: %w", err)
	}
	return item, nil
}

// GetItemByID returns a single menu item, or ErrMenuItemNotFound
func (s *menuService) GetItemByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find menu item: %w", err)
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

// ListAllItems returns the full catalog for the management view. Admin or staff.
func (s *menuService) ListAllItems(ctx context.Context, actor *model.Principal) ([]model.MenuItem, error) {
	if err := authorizeMenu(actor, policy.ActionUpdateMenuItem); err != nil {
		return nil, err
	}
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// ListAvailableItems returns items customers can order. Public.
func (s *menuService) ListAvailableItems(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.repo.FindAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available items: %w", err)
	}
	return items, nil
}

// ListHealthyChoices returns available items flagged healthy. Public.
func (s *menuService) ListHealthyChoices(ctx context.Context) ([]model.MenuItem, error) {
	items, err := s.repo.FindHealthy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list healthy choices: %w", err)
	}
	return items, nil
}

// UpdateItem edits an existing menu item. Admin or staff. Fields left nil in
// the request keep their current value.
func (s *menuService) UpdateItem(ctx context.Context, actor *model.Principal, id int64, req model.UpdateMenuItemRequest) (*model.MenuItem, error) {
	if err := authorizeMenu(actor, policy.ActionUpdateMenuItem); err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find menu item for update: %w", err)
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Calories != nil {
		item.Calories = *req.Calories
	}
	if req.Protein != nil {
		item.Protein = *req.Protein
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	if item.Name == "" || item.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", ErrValidation)
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to update menu item in repo: %w", err)
	}
	return item, nil
}

// DeleteItem removes a menu item. Admin only. Past order items keep their
// snapshotted name and price.
func (s *menuService) DeleteItem(ctx context.Context, actor *model.Principal, id int64) error {
	if err := authorizeMenu(actor, policy.ActionDeleteMenuItem); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item in repo: %w", err)
	}
	return nil
}

// ToggleAvailability flips is_available and returns the new value. Admin or staff.
func (s *menuService) ToggleAvailability(ctx context.Context, actor *model.Principal, id int64) (bool, error) {
	if err := authorizeMenu(actor, policy.ActionToggleMenuItem); err != nil {
		return false, err
	}
	available, err := s.repo.ToggleAvailability(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrMenuItemNotFound
		}
		return false, fmt.Errorf("failed to toggle availability in repo: %w", err)
	}
	return available, nil
}

// ToggleHealthyChoice flips is_healthy_choice and returns the new value. Admin or staff.
func (s *menuService) ToggleHealthyChoice(ctx context.Context, actor *model.Principal, id int64) (bool, error) {
	if err := authorizeMenu(actor, policy.ActionToggleMenuItem); err != nil {
		return false, err
	}
	healthy, err := s.repo.ToggleHealthyChoice(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrMenuItemNotFound
		}
		return false, fmt.Errorf("failed to toggle healthy choice in repo: %w", err)
	}
	return healthy, nil
}
