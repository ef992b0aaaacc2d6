package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/matthews-code/yummybitest3/controllers/order"
	"github.com/matthews-code/yummybitest3/middleware"
	"github.com/matthews-code/yummybitest3/models"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Day view: literal [date, date+24h) window
		orders.GET("", middleware.RequireRole(models.RoleUser), orderControllers.ListOrdersForDayHandler(db))

		// Per-customer order history
		orders.GET("/customer/:customerUID", middleware.RequireRole(models.RoleUser), orderControllers.ListOrdersForCustomerHandler(db))

		// Spreadsheet of a day's orders
		orders.GET("/export-excel", middleware.RequireRole(models.RoleAdmin), orderControllers.ExportOrdersToExcelHandler(db))

		// Websocket endpoint for day-invalidation events
		orders.GET("/ws", middleware.RequireRole(models.RoleUser), orderControllers.OrderWebSocketHandler)

		orders.POST("", middleware.RequireRole(models.RoleAdmin), orderControllers.CreateOrderHandler(db))
		orders.PUT("/:orderUID", middleware.RequireRole(models.RoleAdmin), orderControllers.EditOrderHandler(db))
		orders.DELETE("/:orderUID", middleware.RequireRole(models.RoleSuperAdmin), orderControllers.DeleteOrderHandler(db))

		orders.PUT("/:orderUID/toggle-paid", middleware.RequireRole(models.RoleSuperAdmin), orderControllers.TogglePaidHandler(db))
		orders.PUT("/:orderUID/toggle-collected", middleware.RequireRole(models.RoleAdmin), orderControllers.ToggleCollectedHandler(db))
	}
}
