package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplift/autopilot/internal/domain"
	"github.com/shoplift/autopilot/internal/service"
)

// ProductHandler handles product listing endpoints.
type ProductHandler struct {
	manager *service.ProductManager
}

// NewProductHandler creates a new product handler.
func NewProductHandler(manager *service.ProductManager) *ProductHandler {
	return &ProductHandler{manager: manager}
}

// AutoCreate handles POST /api/v1/products/auto-create.
func (h *ProductHandler) AutoCreate(c *gin.Context) {
	var req domain.ProductCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.manager.AutoCreateProduct(c.Request.Context(), &req)
	if err != nil {
		if domain.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create product: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SetOnline handles POST /api/v1/products/:id/online.
func (h *ProductHandler) SetOnline(c *gin.Context) {
	res, err := h.manager.SetOnline(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// SetOffline handles POST /api/v1/products/:id/offline.
func (h *ProductHandler) SetOffline(c *gin.Context) {
	res, err := h.manager.SetOffline(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
