package model

import "time"

const OrderStatusPending = "Pending"

// Order represents a placed order with its line items
type Order struct {
	ID         int64       `json:"id"`
	UserID     int         `json:"user_id"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"`
	OrderedAt  time.Time   `json:"ordered_at"`
	Items      []OrderItem `json:"items"`
}

// OrderItem is a line of an order. Name and Price are snapshots taken at
// order time so later menu edits never change historical orders.
// MenuItemID is kept as a loose reference and may be nil if the menu item
// is deleted afterwards.
type OrderItem struct {
	ID         int64   `json:"id"`
	OrderID    int64   `json:"-"`
	MenuItemID *int64  `json:"menu_item_id,omitempty"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// OrderLine is one submitted row of the order form. Price and Name mirror
// what the client was shown; the service re-resolves both against the
// current catalog before persisting.
type OrderLine struct {
	MenuItemID int64   `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price,omitempty"`
	Name       string  `json:"name,omitempty"`
}

// PlaceOrderRequest is the JSON body for placing an order
type PlaceOrderRequest struct {
	Items []OrderLine `json:"items" binding:"required"`
}
