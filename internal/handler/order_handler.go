package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"stackshack/internal/middleware"
	"stackshack/internal/model"
	"stackshack/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles order placement and history requests
type OrderHandler struct {
	orderService service.OrderService
	menuService  service.MenuService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, menuService service.MenuService) *OrderHandler {
	return &OrderHandler{orderService: orderService, menuService: menuService}
}

// OrderHistory returns the authenticated user's past orders, newest first
func (h *OrderHandler) OrderHistory(c *gin.Context) {
	principal := middleware.Principal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orders, err := h.orderService.GetUserOrders(c.Request.Context(), principal, principal.UserID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting order history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// NewOrderForm returns the available menu items the order form is built from
func (h *OrderHandler) NewOrderForm(c *gin.Context) {
	items, err := h.menuService.ListAvailableItems(c.Request.Context())
	if err != nil {
		log.Printf("Error loading order form items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// PlaceOrder accepts either a JSON body {"items": [...]} or the classic
// form encoding with one quantity_<id>/price_<id>/name_<id> triple per menu
// item row.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	principal := middleware.Principal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var lines []model.OrderLine
	if c.ContentType() == "application/json" {
		var req model.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		lines = req.Items
	} else {
		lines = parseOrderForm(c)
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), principal, lines)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			log.Printf("Error placing order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

// parseOrderForm collects quantity_<id> form fields into order lines.
// Rows with unparseable ids or quantities are skipped, not rejected.
func parseOrderForm(c *gin.Context) []model.OrderLine {
	if err := c.Request.ParseForm(); err != nil {
		return nil
	}
	var lines []model.OrderLine
	for key, values := range c.Request.PostForm {
		if !strings.HasPrefix(key, "quantity_") || len(values) == 0 {
			continue
		}
		itemID, err := strconv.ParseInt(strings.TrimPrefix(key, "quantity_"), 10, 64)
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(values[0])
		if err != nil {
			continue
		}

		line := model.OrderLine{MenuItemID: itemID, Quantity: quantity}
		// Echoed display fields; the service re-resolves both from the catalog.
		if priceStr := c.PostForm("price_" + strconv.FormatInt(itemID, 10)); priceStr != "" {
			if price, err := strconv.ParseFloat(priceStr, 64); err == nil {
				line.Price = price
			}
		}
		line.Name = c.PostForm("name_" + strconv.FormatInt(itemID, 10))
		lines = append(lines, line)
	}
	return lines
}

// RegisterOrderRoutes registers order routes. All require authentication.
func (h *OrderHandler) RegisterOrderRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	orderGroup := rg.Group("/orders")
	orderGroup.Use(authMW)
	{
		orderGroup.GET("/history", h.OrderHistory)
		orderGroup.GET("/new", h.NewOrderForm)
		orderGroup.POST("/place", h.PlaceOrder)
	}
}
