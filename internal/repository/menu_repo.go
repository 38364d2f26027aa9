package repository

import (
	"context"
	"errors"
	"fmt"

	"stackshack/internal/model"

	"github.com/jackc/pgx/v5"
)

// MenuRepository defines operations for menu item data
type MenuRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id int64) (*model.MenuItem, error)
	FindAll(ctx context.Context) ([]model.MenuItem, error)
	FindAvailable(ctx context.Context) ([]model.MenuItem, error)
	FindHealthy(ctx context.Context) ([]model.MenuItem, error)
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, id int64) error
	ToggleAvailability(ctx context.Context, id int64) (bool, error)
	ToggleHealthyChoice(ctx context.Context, id int64) (bool, error)
}

type menuRepository struct {
	db PgxPool
}

// NewMenuRepository creates a new MenuRepository
func NewMenuRepository(db PgxPool) MenuRepository {
	return &menuRepository{db: db}
}

const menuItemColumns = `id, name, category, description, price, calories, protein, image_url, is_available, is_healthy_choice, created_at, updated_at`

func scanMenuItem(row pgx.Row, item *model.MenuItem) error {
	return row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Description, &item.Price,
		&item.Calories, &item.Protein, &item.ImageURL, &item.IsAvailable,
		&item.IsHealthyChoice, &item.CreatedAt, &item.UpdatedAt,
	)
}

// Create inserts a new menu item
func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	sql := `INSERT INTO menu_items (name, category, description, price, calories, protein, image_url, is_available, is_healthy_choice)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		item.Name, item.Category, item.Description, item.Price, item.Calories,
		item.Protein, item.ImageURL, item.IsAvailable, item.IsHealthyChoice,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// FindByID retrieves a menu item by its ID
func (r *menuRepository) FindByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	item := &model.MenuItem{}
	sql := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	err := scanMenuItem(r.db.QueryRow(ctx, sql, id), item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find menu item by ID: %w", err)
	}
	return item, nil
}

func (r *menuRepository) queryItems(ctx context.Context, sql string, args ...any) ([]model.MenuItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		if err := scanMenuItem(rows, &item); err != nil {
			return nil, fmt.Errorf("failed to scan menu item row: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu item rows: %w", err)
	}
	return items, nil
}

// FindAll retrieves every menu item for the management view
func (r *menuRepository) FindAll(ctx context.Context) ([]model.MenuItem, error) {
	return r.queryItems(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY category, name`)
}

// FindAvailable retrieves items customers can currently order
func (r *menuRepository) FindAvailable(ctx context.Context) ([]model.MenuItem, error) {
	return r.queryItems(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE is_available = TRUE ORDER BY category, name`)
}

// FindHealthy retrieves available items flagged as healthy choices
func (r *menuRepository) FindHealthy(ctx context.Context) ([]model.MenuItem, error) {
	return r.queryItems(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE is_healthy_choice = TRUE AND is_available = TRUE ORDER BY category, name`)
}

// Update modifies an existing menu item
func (r *menuRepository) Update(ctx context.Context, item *model.MenuItem) error {
	sql := `UPDATE menu_items
            SET name = $1, category = $2, description = $3, price = $4, calories = $5, protein = $6, image_url = $7, updated_at = NOW()
            WHERE id = $8 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		item.Name, item.Category, item.Description, item.Price,
		item.Calories, item.Protein, item.ImageURL, item.ID,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	return nil
}

// Delete removes a menu item. Historical order items keep their snapshots.
func (r *menuRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM menu_items WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleAvailability flips is_available and returns the new value
func (r *menuRepository) ToggleAvailability(ctx context.Context, id int64) (bool, error) {
	sql := `UPDATE menu_items SET is_available = NOT is_available, updated_at = NOW() WHERE id = $1 RETURNING is_available`
	var available bool
	err := r.db.QueryRow(ctx, sql, id).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to toggle availability: %w", err)
	}
	return available, nil
}

// ToggleHealthyChoice flips is_healthy_choice and returns the new value
func (r *menuRepository) ToggleHealthyChoice(ctx context.Context, id int64) (bool, error) {
	sql := `UPDATE menu_items SET is_healthy_choice = NOT is_healthy_choice, updated_at = NOW() WHERE id = $1 RETURNING is_healthy_choice`
	var healthy bool
	err := r.db.QueryRow(ctx, sql, id).Scan(&healthy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to toggle healthy choice: %w", err)
	}
	return healthy, nil
}
