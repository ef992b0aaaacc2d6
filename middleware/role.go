package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

// RequireRole refuses the request before any data access when the caller's
// role sits below min on the capability ladder. Must run after ValidateToken.
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(CtxRole)
		if !ok {
			apperrors.Respond(c, apperrors.Authentication("no session on request"))
			c.Abort()
			return
		}
		role, ok := val.(models.Role)
		if !ok || !role.HasAtLeast(min) {
			apperrors.Respond(c, apperrors.Authorization("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
