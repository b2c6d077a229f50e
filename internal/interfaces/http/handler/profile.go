package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shopfront/backend/internal/application/identity"
)

// ProfileHandler serves the caller's own account
type ProfileHandler struct {
	BaseHandler
	service *identityapp.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *identityapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes mounts the profile endpoints on an authenticated group
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetProfile)
}

// GetProfile returns the authenticated user's account and current plan
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), callerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, profile)
}
