package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

// Context keys set by ValidateToken for downstream handlers.
const (
	CtxStaffID = "staff_id"
	CtxEmail   = "email"
	CtxRole    = "role"
)

// ValidateToken resolves the caller's session once per request. A missing or
// expired token is an authentication failure, distinct from the role check.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		apperrors.Respond(c, apperrors.Authentication("authorization header is missing"))
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		apperrors.Respond(c, apperrors.Authentication("invalid or expired token"))
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		apperrors.Respond(c, apperrors.Authentication("invalid token claims"))
		c.Abort()
		return
	}

	roleClaim, _ := claims[CtxRole].(string)
	role, err := models.ParseRole(roleClaim)
	if err != nil {
		apperrors.Respond(c, apperrors.Authentication("invalid role claim"))
		c.Abort()
		return
	}

	c.Set(CtxStaffID, claims[CtxStaffID])
	c.Set(CtxEmail, claims[CtxEmail])
	c.Set(CtxRole, role)

	c.Next()
}
