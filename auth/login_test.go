package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matthews-code/yummybitest3/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Staff{}))
	return db
}

func seedStaff(t *testing.T, db *gorm.DB, email, password string, role models.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Staff{
		Email:        email,
		Name:         "Test Staff",
		PasswordHash: string(hash),
		Role:         role,
	}).Error)
}

func doLogin(db *gorm.DB, body interface{}) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", LoginHandler(db))

	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_IssuesTokenWithRoleClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	seedStaff(t, db, "admin@example.com", "hunter2", models.RoleAdmin)

	w := doLogin(db, LoginRequest{Email: "admin@example.com", Password: "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.Role)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "admin@example.com", claims["email"])
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	seedStaff(t, db, "admin@example.com", "hunter2", models.RoleAdmin)

	w := doLogin(db, LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	w := doLogin(db, LoginRequest{Email: "nobody@example.com", Password: "hunter2"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)

	w := doLogin(db, map[string]string{"email": "admin@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeedSuperAdmin(t *testing.T) {
	t.Setenv("SEED_SUPERADMIN_EMAIL", "root@example.com")
	t.Setenv("SEED_SUPERADMIN_PASSWORD", "first-login")
	db := newTestDB(t)

	require.NoError(t, SeedSuperAdmin(db))

	var staff models.Staff
	require.NoError(t, db.First(&staff, "email = ?", "root@example.com").Error)
	assert.Equal(t, models.RoleSuperAdmin, staff.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte("first-login")))

	// a populated staff table is never re-seeded
	require.NoError(t, SeedSuperAdmin(db))
	var count int64
	require.NoError(t, db.Model(&models.Staff{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
