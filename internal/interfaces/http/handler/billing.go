package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbilling "github.com/shopfront/backend/internal/application/billing"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
)

// proofMaxBytes caps proof-of-payment uploads at 5MB
const proofMaxBytes = 5 << 20

// allowedProofTypes are the accepted proof image content types
var allowedProofTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// BillingHandler serves the subscription payment endpoints
type BillingHandler struct {
	BaseHandler
	service *appbilling.PaymentService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(service *appbilling.PaymentService) *BillingHandler {
	return &BillingHandler{service: service}
}

// RegisterPublicRoutes mounts the unauthenticated plan and channel
// listings
func (h *BillingHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.ListPlans)
	rg.GET("/payment-channels", h.ListPaymentChannels)
}

// RegisterUserRoutes mounts the authenticated subscriber endpoints
func (h *BillingHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.CreatePayment)
	rg.GET("/payments", h.ListMyPayments)
	rg.GET("/payments/:id", h.GetPayment)
	rg.POST("/payments/:id/proof", h.UploadProof)
	rg.GET("/subscriptions", h.ListMySubscriptions)
}

// ListPlans returns the active subscription plans
func (h *BillingHandler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, plans)
}

// ListPaymentChannels returns the active payment destinations
func (h *BillingHandler) ListPaymentChannels(c *gin.Context) {
	channels, err := h.service.ListPaymentChannels(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, channels)
}

// CreatePayment opens a pending payment request for the caller
func (h *BillingHandler) CreatePayment(c *gin.Context) {
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	var req appbilling.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	payment, err := h.service.CreatePayment(c.Request.Context(), callerID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, payment)
}

// ListMyPayments returns the caller's payment history
func (h *BillingHandler) ListMyPayments(c *gin.Context) {
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	payments, err := h.service.ListMyPayments(c.Request.Context(), callerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, payments)
}

// GetPayment returns one payment; admins can read any, users only
// their own
func (h *BillingHandler) GetPayment(c *gin.Context) {
	paymentID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	role, _ := middleware.CallerRole(c)
	payment, err := h.service.GetPayment(c.Request.Context(), paymentID, callerID, role.IsAdmin())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, payment)
}

// UploadProof attaches a proof-of-payment image to a pending payment
func (h *BillingHandler) UploadProof(c *gin.Context) {
	paymentID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBadRequest, "Missing proof file", c.GetString(middleware.RequestIDKey)))
		return
	}

	if fileHeader.Size > proofMaxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
			dto.ErrCodePayloadSize, "Proof file exceeds 5MB", c.GetString(middleware.RequestIDKey)))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedProofTypes[contentType] {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBadRequest, "Proof must be a jpeg, png, gif or webp image", c.GetString(middleware.RequestIDKey)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer file.Close()

	payment, err := h.service.AttachProof(c.Request.Context(), paymentID, callerID, &appbilling.ProofUpload{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, payment)
}

// ListMySubscriptions returns the caller's subscription periods
func (h *BillingHandler) ListMySubscriptions(c *gin.Context) {
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	subs, err := h.service.ListMySubscriptions(c.Request.Context(), callerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, subs)
}
