package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	itemControllers "github.com/matthews-code/yummybitest3/controllers/item"
	"github.com/matthews-code/yummybitest3/middleware"
	"github.com/matthews-code/yummybitest3/models"
)

func SetupItemRoutes(r *gin.Engine, db *gorm.DB) {
	items := r.Group("/items")
	items.Use(middleware.ValidateToken)
	{
		items.GET("", middleware.RequireRole(models.RoleUser), itemControllers.ListItemsHandler(db))
		items.POST("", middleware.RequireRole(models.RoleAdmin), itemControllers.CreateItemHandler(db))
		items.PUT("/:itemUID", middleware.RequireRole(models.RoleAdmin), itemControllers.EditItemHandler(db))
		items.DELETE("/:itemUID", middleware.RequireRole(models.RoleSuperAdmin), itemControllers.DeleteItemHandler(db))
		items.POST("/import-excel", middleware.RequireRole(models.RoleAdmin), itemControllers.ImportItemsFromExcelHandler(db))
	}
}
