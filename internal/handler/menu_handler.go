package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"stackshack/internal/middleware"
	"stackshack/internal/model"
	"stackshack/internal/service"

	"github.com/gin-gonic/gin"
)

// MenuHandler handles menu catalog requests
type MenuHandler struct {
	service service.MenuService
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(s service.MenuService) *MenuHandler {
	return &MenuHandler{service: s}
}

func menuItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return 0, false
	}
	return id, true
}

func (h *MenuHandler) respondMenuError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrMenuItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("%s: %v", logMsg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": logMsg})
	}
}

func (h *MenuHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListAllItems(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		h.respondMenuError(c, err, "Failed to list menu items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) GetItem(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}
	item, err := h.service.GetItemByID(c.Request.Context(), id)
	if err != nil {
		h.respondMenuError(c, err, "Failed to retrieve menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req model.CreateMenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		h.respondMenuError(c, err, "Failed to create menu item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}

	var req model.UpdateMenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		h.respondMenuError(c, err, "Failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteItem(c.Request.Context(), middleware.Principal(c), id); err != nil {
		h.respondMenuError(c, err, "Failed to delete menu item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}
	available, err := h.service.ToggleAvailability(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondMenuError(c, err, "Failed to toggle availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_available": available})
}

func (h *MenuHandler) ToggleHealthy(c *gin.Context) {
	id, ok := menuItemID(c)
	if !ok {
		return
	}
	healthy, err := h.service.ToggleHealthyChoice(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		h.respondMenuError(c, err, "Failed to toggle healthy choice")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_healthy_choice": healthy})
}

// BrowseMenu is the public customer view of available items
func (h *MenuHandler) BrowseMenu(c *gin.Context) {
	items, err := h.service.ListAvailableItems(c.Request.Context())
	if err != nil {
		log.Printf("Error browsing menu: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// HealthyChoices is the public view of available healthy items
func (h *MenuHandler) HealthyChoices(c *gin.Context) {
	items, err := h.service.ListHealthyChoices(c.Request.Context())
	if err != nil {
		log.Printf("Error loading healthy choices: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load healthy choices"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// RegisterMenuRoutes registers menu catalog routes
func (h *MenuHandler) RegisterMenuRoutes(rg *gin.RouterGroup, authMW, staffMW, adminMW gin.HandlerFunc) {
	menuGroup := rg.Group("/menu")

	// Public customer views
	menuGroup.GET("/browse", h.BrowseMenu)
	menuGroup.GET("/healthy", h.HealthyChoices)

	// Management routes (admin or staff; delete is admin only)
	itemRoutes := menuGroup.Group("/items")
	itemRoutes.Use(authMW)
	itemRoutes.Use(staffMW)
	{
		itemRoutes.GET("", h.ListItems)
		itemRoutes.POST("/create", h.CreateItem)
		itemRoutes.GET("/:id", h.GetItem)
		itemRoutes.POST("/:id/update", h.UpdateItem)
		itemRoutes.POST("/:id/delete", adminMW, h.DeleteItem)
		itemRoutes.POST("/:id/toggle-availability", h.ToggleAvailability)
		itemRoutes.POST("/:id/toggle-healthy", h.ToggleHealthy)
	}
}
