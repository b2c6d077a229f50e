package handler

import (
	"github.com/gin-gonic/gin"

	appbilling "github.com/shopfront/backend/internal/application/billing"
)

// AdminHandler serves the payment review endpoints. All routes are
// mounted behind the admin role gate.
type AdminHandler struct {
	BaseHandler
	service *appbilling.PaymentService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *appbilling.PaymentService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes mounts the admin endpoints
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments", h.ListPaymentsByStatus)
	rg.POST("/payments/:id/approve", h.ApprovePayment)
	rg.POST("/payments/:id/reject", h.RejectPayment)
}

// ListPaymentsByStatus returns the review queue for one status
func (h *AdminHandler) ListPaymentsByStatus(c *gin.Context) {
	status := c.DefaultQuery("status", "pending")

	payments, err := h.service.ListPaymentsByStatus(c.Request.Context(), status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, payments)
}

// ApprovePayment approves a pending payment and activates the plan
func (h *AdminHandler) ApprovePayment(c *gin.Context) {
	paymentID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	var req appbilling.ReviewPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.HandleBindingError(c, err)
		return
	}

	payment, err := h.service.ApprovePayment(c.Request.Context(), paymentID, callerID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, payment)
}

// RejectPayment rejects a pending payment
func (h *AdminHandler) RejectPayment(c *gin.Context) {
	paymentID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	var req appbilling.ReviewPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.HandleBindingError(c, err)
		return
	}

	payment, err := h.service.RejectPayment(c.Request.Context(), paymentID, callerID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, payment)
}
