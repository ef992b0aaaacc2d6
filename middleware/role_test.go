package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthews-code/yummybitest3/models"
)

func signTestToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"staff_id": uint(1),
		"email":    "staff@example.com",
		"role":     role,
		"exp":      exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestRouter(min models.Role, hit *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/items/:itemUID", ValidateToken, RequireRole(min), func(c *gin.Context) {
		*hit = true
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func perform(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/items/item-1", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole_InsufficientRoleRefused(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hit := false
	r := newTestRouter(models.RoleSuperAdmin, &hit)

	token := signTestToken(t, "user", time.Now().Add(time.Hour))
	w := perform(r, token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, hit, "handler must not run for an under-privileged caller")
}

func TestRequireRole_SufficientRolePasses(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hit := false
	r := newTestRouter(models.RoleSuperAdmin, &hit)

	token := signTestToken(t, "superadmin", time.Now().Add(time.Hour))
	w := perform(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hit)
}

func TestRequireRole_HigherRolePassesLowerGate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hit := false
	r := newTestRouter(models.RoleUser, &hit)

	token := signTestToken(t, "admin", time.Now().Add(time.Hour))
	w := perform(r, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hit)
}

func TestValidateToken_MissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hit := false
	r := newTestRouter(models.RoleUser, &hit)

	w := perform(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, hit)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hit := false
	r := newTestRouter(models.RoleUser, &hit)

	token := signTestToken(t, "admin", time.Now().Add(-time.Hour))
	w := perform(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, hit)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-different-secret")

	hit := false
	r := newTestRouter(models.RoleUser, &hit)

	token := signTestToken(t, "admin", time.Now().Add(time.Hour))
	w := perform(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, hit)
}

func TestValidateToken_InvalidRoleClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hit := false
	r := newTestRouter(models.RoleUser, &hit)

	token := signTestToken(t, "owner", time.Now().Add(time.Hour))
	w := perform(r, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, hit)
}
