package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"stackshack/internal/model"
	"stackshack/internal/policy"
	"stackshack/internal/repository"
)

var ErrEmptyOrder = errors.New("order must contain at least one item")

// OrderService provides order placement and history
type OrderService interface {
	PlaceOrder(ctx context.Context, actor *model.Principal, lines []model.OrderLine) (*model.Order, error)
	GetUserOrders(ctx context.Context, actor *model.Principal, userID int) ([]model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	menuRepo  repository.MenuRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repository.OrderRepository, menuRepo repository.MenuRepository) OrderService {
	return &orderService{orderRepo: orderRepo, menuRepo: menuRepo}
}

// PlaceOrder builds an order from the submitted lines and persists it
// atomically with its items. Lines with non-positive quantities are dropped,
// not rejected. Unit price and name are resolved from the current catalog,
// never taken from the submission, so a tampered form cannot change what an
// item costs; lines referencing missing menu items are dropped as well.
// Catalog values are snapshotted into the order items so later menu edits do
// not alter history.
func (s *orderService) PlaceOrder(ctx context.Context, actor *model.Principal, lines []model.OrderLine) (*model.Order, error) {
	if actor == nil || !policy.Allowed(actor.Role, policy.ActionPlaceOrder) {
		return nil, ErrForbidden
	}

	var items []model.OrderItem
	var total float64
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		menuItem, err := s.menuRepo.FindByID(ctx, line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve menu item %d: %w", line.MenuItemID, err)
		}
		if menuItem == nil {
			continue // item removed since the form was rendered
		}
		itemID := menuItem.ID
		items = append(items, model.OrderItem{
			MenuItemID: &itemID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   line.Quantity,
		})
		total += menuItem.Price * float64(line.Quantity)
	}

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &model.Order{
		UserID:     actor.UserID,
		TotalPrice: math.Round(total*100) / 100,
		Status:     model.OrderStatusPending,
		Items:      items,
	}
	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order in repo: %w", err)
	}
	return order, nil
}

// GetUserOrders returns the user's order history, newest first. Non-admins
// may only view their own orders. An empty history is not an error.
func (s *orderService) GetUserOrders(ctx context.Context, actor *model.Principal, userID int) ([]model.Order, error) {
	if actor == nil || !policy.Allowed(actor.Role, policy.ActionViewOwnOrders) {
		return nil, ErrForbidden
	}
	if actor.UserID != userID && actor.Role != model.RoleAdmin {
		return nil, ErrForbidden
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders from repo: %w", err)
	}
	return orders, nil
}
