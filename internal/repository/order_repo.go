package repository

import (
	"context"
	"fmt"

	"stackshack/internal/model"
)

// OrderRepository defines operations for order data
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	FindByUser(ctx context.Context, userID int) ([]model.Order, error)
}

type orderRepository struct {
	db PgxPool
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db PgxPool) OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrder inserts an order and its line items in a single transaction.
// Either the order and every item are durable, or nothing is.
func (r *orderRepository) CreateOrder(ctx context.Context, order *model.Order) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	orderSQL := `INSERT INTO orders (user_id, total_price, status)
                 VALUES ($1, $2, $3) RETURNING id, ordered_at`
	err = tx.QueryRow(ctx, orderSQL, order.UserID, order.TotalPrice, order.Status).Scan(&order.ID, &order.OrderedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemSQL := `INSERT INTO order_items (order_id, menu_item_id, name, price, quantity)
                VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, itemSQL, item.OrderID, item.MenuItemID, item.Name, item.Price, item.Quantity).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return nil
}

// FindByUser retrieves a user's orders newest first, with line items attached.
// Returns an empty slice when the user has no orders.
func (r *orderRepository) FindByUser(ctx context.Context, userID int) ([]model.Order, error) {
	orderSQL := `SELECT id, user_id, total_price, status, ordered_at
                 FROM orders WHERE user_id = $1 ORDER BY ordered_at DESC, id DESC`
	rows, err := r.db.Query(ctx, orderSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by user: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	index := make(map[int64]int)
	var orderIDs []int64
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Status, &o.OrderedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		o.Items = []model.OrderItem{}
		index[o.ID] = len(orders)
		orderIDs = append(orderIDs, o.ID)
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemSQL := `SELECT id, order_id, menu_item_id, name, price, quantity
                FROM order_items WHERE order_id = ANY($1) ORDER BY id`
	itemRows, err := r.db.Query(ctx, itemSQL, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it model.OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item row: %w", err)
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order item rows: %w", err)
	}
	return orders, nil
}
