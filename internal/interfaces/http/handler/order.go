package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appordering "github.com/shopfront/backend/internal/application/ordering"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
)

// OrderHandler serves the order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	service *appordering.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *appordering.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterPublicRoutes mounts the unauthenticated storefront endpoints
func (h *OrderHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.PlaceOrder)
	rg.GET("/orders/:id", h.GetPublicSummary)
	rg.POST("/orders/:id/validate", h.ValidateByCustomer)
}

// RegisterOwnerRoutes mounts the authenticated owner endpoints
func (h *OrderHandler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/:id", h.GetOrder)
	rg.PUT("/orders/:id/status", h.UpdateStatus)
	rg.GET("/shops/:id/orders", h.ListShopOrders)
}

// PlaceOrder creates a pending order from the public storefront
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req appordering.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// GetPublicSummary returns the unauthenticated tracking view of an
// order
func (h *OrderHandler) GetPublicSummary(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.service.GetPublicSummary(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, summary)
}

// ValidateByCustomer confirms delivery of an order
func (h *OrderHandler) ValidateByCustomer(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.ValidateByCustomer(c.Request.Context(), orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, gin.H{"validated": true})
}

// GetOrder returns the full order to its shop's owner
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), orderID, callerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, order)
}

// UpdateStatus applies an owner-driven status change
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	var req appordering.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, callerID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, order)
}

// ListShopOrders returns a paginated list of a shop's orders
func (h *OrderHandler) ListShopOrders(c *gin.Context) {
	shopID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	filter := parseFilter(c)
	list, err := h.service.ListShopOrders(c.Request.Context(), shopID, callerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OKWithMeta(c, list.Orders, dto.NewMeta(list.Page, list.PageSize, list.Total))
}

func parseFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil && size > 0 && size <= 100 {
		filter.PageSize = size
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	return filter
}
