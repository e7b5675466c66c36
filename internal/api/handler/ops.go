package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shoplift/autopilot/internal/service"
)

// OpsHandler handles operational endpoints: the sales loop, stock
// corrections, and channel mode introspection.
type OpsHandler struct {
	orders    *service.OrderManager
	analytics *service.AnalyticsService
	inventory *service.InventoryManager
	manager   *service.ProductManager
}

// NewOpsHandler creates a new ops handler.
func NewOpsHandler(orders *service.OrderManager, analytics *service.AnalyticsService, inventory *service.InventoryManager, manager *service.ProductManager) *OpsHandler {
	return &OpsHandler{
		orders:    orders,
		analytics: analytics,
		inventory: inventory,
		manager:   manager,
	}
}

// SalesLoop handles GET /api/v1/ops/sales-loop: sync recent orders and
// run the threshold analysis over them.
func (h *OpsHandler) SalesLoop(c *gin.Context) {
	minutes, _ := strconv.Atoi(c.DefaultQuery("minutes", "60"))
	if minutes <= 0 {
		minutes = 60
	}

	ordersRes, err := h.orders.SyncRecentOrders(c.Request.Context(), time.Duration(minutes)*time.Minute)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to sync orders: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.analytics.AnalyzeSales(ordersRes))
}

type stockUpdateRequest struct {
	SKUID string `json:"sku_id" binding:"required"`
	Qty   int    `json:"qty" binding:"min=0"`
}

// UpdateStock handles POST /api/v1/items/:id/stock.
func (h *OpsHandler) UpdateStock(c *gin.Context) {
	var req stockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	res, err := h.inventory.SyncStock(c.Request.Context(), c.Param("id"), req.SKUID, req.Qty)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ChannelMode handles GET /api/v1/ops/channel.
func (h *OpsHandler) ChannelMode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"operation_mode": h.manager.ChannelName(),
	})
}
