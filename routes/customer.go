package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	customerControllers "github.com/matthews-code/yummybitest3/controllers/customer"
	"github.com/matthews-code/yummybitest3/middleware"
	"github.com/matthews-code/yummybitest3/models"
)

func SetupCustomerRoutes(r *gin.Engine, db *gorm.DB) {
	customers := r.Group("/customers")
	customers.Use(middleware.ValidateToken)
	{
		customers.GET("", middleware.RequireRole(models.RoleUser), customerControllers.ListCustomersHandler(db))
		customers.POST("", middleware.RequireRole(models.RoleAdmin), customerControllers.CreateCustomerHandler(db))
		// contact number and address are sensitive fields, so edits sit with
		// the highest role alongside deletion
		customers.PUT("/:customerUID", middleware.RequireRole(models.RoleSuperAdmin), customerControllers.EditCustomerHandler(db))
		customers.DELETE("/:customerUID", middleware.RequireRole(models.RoleSuperAdmin), customerControllers.DeleteCustomerHandler(db))
	}
}
