package customerControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

// -------- Request Structs --------

type CustomerRequest struct {
	FirstName  string  `json:"first_name" binding:"required"`
	LastName   *string `json:"last_name"`
	ContactNum string  `json:"contact_num" binding:"required"`
	Address    *string `json:"address"`
}

// -------- Core Logic --------

func validateCustomerRequest(req CustomerRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return apperrors.Validation("first name is required")
	}
	if strings.TrimSpace(req.ContactNum) == "" {
		return apperrors.Validation("contact number is required")
	}
	return nil
}

// contactTaken checks uniqueness among live customers only.
func contactTaken(db *gorm.DB, contactNum, excludeUID string) (bool, error) {
	var count int64
	q := db.Model(&models.Customer{}).
		Where("contact_num = ? AND deleted = ?", strings.TrimSpace(contactNum), false)
	if excludeUID != "" {
		q = q.Where("customer_uid <> ?", excludeUID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Store(err)
	}
	return count > 0, nil
}

func CreateCustomer(db *gorm.DB, req CustomerRequest) (models.Customer, error) {
	if err := validateCustomerRequest(req); err != nil {
		return models.Customer{}, err
	}
	taken, err := contactTaken(db, req.ContactNum, "")
	if err != nil {
		return models.Customer{}, err
	}
	if taken {
		return models.Customer{}, apperrors.Validationf("contact number %s is already in use", strings.TrimSpace(req.ContactNum))
	}

	customer := models.Customer{
		CustomerUID: uuid.NewString(),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    req.LastName,
		ContactNum:  strings.TrimSpace(req.ContactNum),
		Address:     req.Address,
	}
	if err := db.Create(&customer).Error; err != nil {
		return models.Customer{}, apperrors.Store(err)
	}
	return customer, nil
}

func EditCustomer(db *gorm.DB, customerUID string, req CustomerRequest) (models.Customer, error) {
	if err := validateCustomerRequest(req); err != nil {
		return models.Customer{}, err
	}

	var customer models.Customer
	if err := db.First(&customer, "customer_uid = ? AND deleted = ?", customerUID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, apperrors.NotFoundf("customer %s not found", customerUID)
		}
		return models.Customer{}, apperrors.Store(err)
	}

	taken, err := contactTaken(db, req.ContactNum, customerUID)
	if err != nil {
		return models.Customer{}, err
	}
	if taken {
		return models.Customer{}, apperrors.Validationf("contact number %s is already in use", strings.TrimSpace(req.ContactNum))
	}

	updates := map[string]interface{}{
		"first_name":  strings.TrimSpace(req.FirstName),
		"last_name":   req.LastName,
		"contact_num": strings.TrimSpace(req.ContactNum),
		"address":     req.Address,
	}
	if err := db.Model(&customer).Updates(updates).Error; err != nil {
		return models.Customer{}, apperrors.Store(err)
	}
	return customer, nil
}

func DeleteCustomer(db *gorm.DB, customerUID string) error {
	res := db.Model(&models.Customer{}).
		Where("customer_uid = ? AND deleted = ?", customerUID, false).
		Update("deleted", true)
	if res.Error != nil {
		return apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("customer %s not found", customerUID)
	}
	return nil
}

func ListCustomers(db *gorm.DB) ([]models.Customer, error) {
	var customers []models.Customer
	if err := db.
		Where("deleted = ?", false).
		Order("first_name asc, customer_uid asc").
		Find(&customers).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return customers, nil
}

// -------- Handlers --------

func CreateCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}
		customer, err := CreateCustomer(db, req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

func EditCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}
		customer, err := EditCustomer(db, c.Param("customerUID"), req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func DeleteCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := DeleteCustomer(db, c.Param("customerUID")); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
	}
}

func ListCustomersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := ListCustomers(db)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}
