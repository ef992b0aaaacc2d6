package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matthews-code/yummybitest3/auth"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", auth.LoginHandler(db))
	}
}
