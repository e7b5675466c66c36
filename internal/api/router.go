package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shoplift/autopilot/internal/api/handler"
	"github.com/shoplift/autopilot/internal/api/middleware"
	"github.com/shoplift/autopilot/internal/config"
	"github.com/shoplift/autopilot/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	manager *service.ProductManager,
	orders *service.OrderManager,
	analytics *service.AnalyticsService,
	inventory *service.InventoryManager,
	cfg *config.ServerConfig,
) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler()
	productHandler := handler.NewProductHandler(manager)
	taskHandler := handler.NewTaskHandler(manager)
	opsHandler := handler.NewOpsHandler(orders, analytics, inventory, manager)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		// Products
		v1.POST("/products/auto-create", productHandler.AutoCreate)
		v1.POST("/products/:id/online", productHandler.SetOnline)
		v1.POST("/products/:id/offline", productHandler.SetOffline)

		// Tasks
		v1.GET("/tasks/:id", taskHandler.GetTask)
		v1.POST("/tasks/:id/confirm", taskHandler.Confirm)

		// Inventory
		v1.POST("/items/:id/stock", opsHandler.UpdateStock)

		// Ops
		v1.GET("/ops/sales-loop", opsHandler.SalesLoop)
		v1.GET("/ops/channel", opsHandler.ChannelMode)
	}

	return r
}
