package model

import "time"

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	Calories        int       `json:"calories"`
	Protein         int       `json:"protein"`
	ImageURL        string    `json:"image_url,omitempty"`
	IsAvailable     bool      `json:"is_available"`
	IsHealthyChoice bool      `json:"is_healthy_choice"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateMenuItemRequest is used for creating a new menu item
type CreateMenuItemRequest struct {
	Name        string  `json:"name" form:"name" binding:"required"`
	Category    string  `json:"category" form:"category" binding:"required"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price" binding:"gte=0"`
	Calories    int     `json:"calories" form:"calories" binding:"omitempty,gte=0"`
	Protein     int     `json:"protein" form:"protein" binding:"omitempty,gte=0"`
	ImageURL    string  `json:"image_url" form:"image_url"`
}

// UpdateMenuItemRequest carries the editable fields of a menu item.
// Pointers allow partial updates.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty" form:"name"`
	Category    *string  `json:"category,omitempty" form:"category"`
	Description *string  `json:"description,omitempty" form:"description"`
	Price       *float64 `json:"price,omitempty" form:"price" binding:"omitempty,gte=0"`
	Calories    *int     `json:"calories,omitempty" form:"calories"`
	Protein     *int     `json:"protein,omitempty" form:"protein"`
	ImageURL    *string  `json:"image_url,omitempty" form:"image_url"`
}
