package auth

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler verifies staff credentials and issues a signed session token
// carrying the role claim consumed by the middleware.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}

		var staff models.Staff
		if err := db.First(&staff, "email = ?", req.Email).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.Authentication("invalid email or password"))
				return
			}
			logrus.WithError(err).Error("staff lookup failed")
			apperrors.Respond(c, apperrors.Store(err))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
			apperrors.Respond(c, apperrors.Authentication("invalid email or password"))
			return
		}

		token, err := IssueToken(staff)
		if err != nil {
			logrus.WithError(err).Error("token signing failed")
			apperrors.Respond(c, apperrors.Store(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"role":  staff.Role,
			"name":  staff.Name,
		})
	}
}

// IssueToken signs a 24h session token for the given staff account.
func IssueToken(staff models.Staff) (string, error) {
	claims := jwt.MapClaims{
		"staff_id": staff.ID,
		"email":    staff.Email,
		"role":     string(staff.Role),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// SeedSuperAdmin creates the first superadmin account from
// SEED_SUPERADMIN_EMAIL / SEED_SUPERADMIN_PASSWORD when the staff table is
// empty, so a fresh deployment can log in at all.
func SeedSuperAdmin(db *gorm.DB) error {
	email := os.Getenv("SEED_SUPERADMIN_EMAIL")
	password := os.Getenv("SEED_SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	staff := models.Staff{
		Email:        email,
		Name:         "Super Admin",
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
	}
	if err := db.Create(&staff).Error; err != nil {
		return err
	}
	logrus.WithField("email", email).Info("seeded superadmin account")
	return nil
}
