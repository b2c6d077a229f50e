package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/shopfront/backend/internal/application/catalog"
)

// CatalogHandler serves the shop and product endpoints
type CatalogHandler struct {
	BaseHandler
	service *appcatalog.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *appcatalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterPublicRoutes mounts the unauthenticated storefront reads
func (h *CatalogHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id", h.GetProduct)
}

// RegisterOwnerRoutes mounts the authenticated owner endpoints
func (h *CatalogHandler) RegisterOwnerRoutes(rg *gin.RouterGroup) {
	rg.POST("/shops", h.CreateShop)
	rg.GET("/shops", h.ListMyShops)
	rg.GET("/shops/:id/products", h.ListShopProducts)
	rg.POST("/products", h.CreateProduct)
	rg.PUT("/products/:id/price", h.UpdateProductPrice)
}

// GetProduct returns an active product for the storefront
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, product)
}

// CreateShop creates a shop owned by the caller
func (h *CatalogHandler) CreateShop(c *gin.Context) {
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	var req appcatalog.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	shop, err := h.service.CreateShop(c.Request.Context(), callerID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, shop)
}

// ListMyShops returns the caller's shops
func (h *CatalogHandler) ListMyShops(c *gin.Context) {
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	shops, err := h.service.ListMyShops(c.Request.Context(), callerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, shops)
}

// ListShopProducts returns a shop's products to its owner
func (h *CatalogHandler) ListShopProducts(c *gin.Context) {
	shopID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	products, err := h.service.ListShopProducts(c.Request.Context(), callerID, shopID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, products)
}

// CreateProduct adds a product to one of the caller's shops
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), callerID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProductPrice changes a product's list price
func (h *CatalogHandler) UpdateProductPrice(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	callerID, ok := h.RequireCaller(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateProductPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.service.UpdateProductPrice(c.Request.Context(), callerID, productID, &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.OK(c, product)
}
