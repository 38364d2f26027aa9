package service

import (
	"context"
	"testing"
	"time"

	"stackshack/internal/model"
	"stackshack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMenuRepo is an in-memory MenuRepository for service tests
type fakeMenuRepo struct {
	items  map[int64]*model.MenuItem
	nextID int64
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[int64]*model.MenuItem), nextID: 1}
}

func (r *fakeMenuRepo) Create(_ context.Context, item *model.MenuItem) error {
	item.ID = r.nextID
	r.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	stored := *item
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeMenuRepo) FindByID(_ context.Context, id int64) (*model.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (r *fakeMenuRepo) findWhere(keep func(*model.MenuItem) bool) ([]model.MenuItem, error) {
	var items []model.MenuItem
	for id := int64(1); id < r.nextID; id++ {
		if item, ok := r.items[id]; ok && keep(item) {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *fakeMenuRepo) FindAll(_ context.Context) ([]model.MenuItem, error) {
	return r.findWhere(func(*model.MenuItem) bool { return true })
}

func (r *fakeMenuRepo) FindAvailable(_ context.Context) ([]model.MenuItem, error) {
	return r.findWhere(func(i *model.MenuItem) bool { return i.IsAvailable })
}

func (r *fakeMenuRepo) FindHealthy(_ context.Context) ([]model.MenuItem, error) {
	return r.findWhere(func(i *model.MenuItem) bool { return i.IsHealthyChoice && i.IsAvailable })
}

func (r *fakeMenuRepo) Update(_ context.Context, item *model.MenuItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *item
	stored.UpdatedAt = time.Now()
	r.items[item.ID] = &stored
	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeMenuRepo) ToggleAvailability(_ context.Context, id int64) (bool, error) {
	item, ok := r.items[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	item.IsAvailable = !item.IsAvailable
	return item.IsAvailable, nil
}

func (r *fakeMenuRepo) ToggleHealthyChoice(_ context.Context, id int64) (bool, error) {
	item, ok := r.items[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	item.IsHealthyChoice = !item.IsHealthyChoice
	return item.IsHealthyChoice, nil
}

func createBurger(t *testing.T, svc MenuService) *model.MenuItem {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), adminPrincipal, model.CreateMenuItemRequest{
		Name:     "Burger",
		Category: "patty",
		Price:    4.99,
	})
	require.NoError(t, err)
	return item
}

func TestMenuService_CreateAndGet(t *testing.T) {
	svc := NewMenuService(newFakeMenuRepo())
	item := createBurger(t, svc)

	got, err := svc.GetItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Burger", got.Name)
	assert.Equal(t, 4.99, got.Price)
	assert.True(t, got.IsAvailable)
}

func TestMenuService_CreateAuthorization(t *testing.T) {
	svc := NewMenuService(newFakeMenuRepo())
	req := model.CreateMenuItemRequest{Name: "Fries", Category: "sides", Price: 2.49}

	_, err := svc.CreateItem(context.Background(), staffPrincipal, req)
	assert.NoError(t, err)

	_, err = svc.CreateItem(context.Background(), customerPrincipal, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateItem(context.Background(), nil, req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMenuService_CreateValidation(t *testing.T) {
	svc := NewMenuService(newFakeMenuRepo())

	_, err := svc.CreateItem(context.Background(), adminPrincipal, model.CreateMenuItemRequest{Category: "patty", Price: 4.99})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateItem(context.Background(), adminPrincipal, model.CreateMenuItemRequest{Name: "Burger", Price: 4.99})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateItem(context.Background(), adminPrincipal, model.CreateMenuItemRequest{Name: "Burger", Category: "patty", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMenuService_Update(t *testing.T) {
	svc := NewMenuService(newFakeMenuRepo())
	item := createBurger(t, svc)

	newName := "Double Burger"
	newPrice := 6.99
	updated, err := svc.UpdateItem(context.Background(), staffPrincipal, item.ID, model.UpdateMenuItemRequest{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Double Burger", updated.Name)
	assert.Equal(t, 6.99, updated.Price)
	assert.Equal(t, "patty", updated.Category) // untouched field preserved

	_, err = svc.UpdateItem(context.Background(), customerPrincipal, item.ID, model.UpdateMenuItemRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateItem(context.Background(), staffPrincipal, 9999, model.UpdateMenuItemRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestMenuService_DeleteAdminOnly(t *testing.T) {
	svc := NewMenuService(newFakeMenuRepo())
	item := createBurger(t, svc)

	// Staff can create and update but not delete
	err := svc.DeleteItem(context.Background(), staffPrincipal, item.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteItem(context.Background(), adminPrincipal, item.ID)
	require.NoError(t, err)

	_, err = svc.GetItemByID(context.Background(), item.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)

	// Deleting again is a not-found signal
	err = svc.DeleteItem(context.Background(), adminPrincipal, item.ID)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestMenuService_ToggleTwiceRestoresState(t *testing.T) {
	svc := NewMenuService(newFakeMenuRepo())
	item := createBurger(t, svc)

	first, err := svc.ToggleAvailability(context.Background(), staffPrincipal, item.ID)
	require.NoError(t, err)
	assert.False(t, first)

	second, err := svc.ToggleAvailability(context.Background(), staffPrincipal, item.ID)
	require.NoError(t, err)
	assert.True(t, second) // back to the original value

	healthy, err := svc.ToggleHealthyChoice(context.Background(), adminPrincipal, item.ID)
	require.NoError(t, err)
	assert.True(t, healthy)

	_, err = svc.ToggleAvailability(context.Background(), customerPrincipal, item.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ToggleAvailability(context.Background(), staffPrincipal, 9999)
	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestMenuService_Listings(t *testing.T) {
	repo := newFakeMenuRepo()
	svc := NewMenuService(repo)

	burger := createBurger(t, svc)
	salad, err := svc.CreateItem(context.Background(), adminPrincipal, model.CreateMenuItemRequest{
		Name: "Salad", Category: "greens", Price: 3.99,
	})
	require.NoError(t, err)

	_, err = svc.ToggleHealthyChoice(context.Background(), adminPrincipal, salad.ID)
	require.NoError(t, err)
	_, err = svc.ToggleAvailability(context.Background(), adminPrincipal, burger.ID)
	require.NoError(t, err)

	all, err := svc.ListAllItems(context.Background(), staffPrincipal)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListAllItems(context.Background(), customerPrincipal)
	assert.ErrorIs(t, err, ErrForbidden)

	available, err := svc.ListAvailableItems(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Salad", available[0].Name)

	healthy, err := svc.ListHealthyChoices(context.Background())
	require.NoError(t, err)
	require.Len(t, healthy, 1)
	assert.Equal(t, "Salad", healthy[0].Name)
}
