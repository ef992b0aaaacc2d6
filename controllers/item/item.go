package itemControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

// -------- Request Structs --------

type ItemRequest struct {
	Name      string   `json:"name" binding:"required"`
	Price     *float64 `json:"price" binding:"required"`
	Inventory *int     `json:"inventory"`
}

// -------- Core Logic --------

func validateItemRequest(req ItemRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.Validation("name is required")
	}
	if req.Price == nil || *req.Price < 0 {
		return apperrors.Validation("price must be zero or positive")
	}
	if req.Inventory != nil && *req.Inventory < 0 {
		return apperrors.Validation("inventory must be zero or positive")
	}
	return nil
}

// nameTaken checks uniqueness among live items only; a soft-deleted item
// frees its name for reuse.
func nameTaken(db *gorm.DB, name, excludeUID string) (bool, error) {
	var count int64
	q := db.Model(&models.Item{}).Where("name = ? AND deleted = ?", strings.TrimSpace(name), false)
	if excludeUID != "" {
		q = q.Where("item_uid <> ?", excludeUID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Store(err)
	}
	return count > 0, nil
}

func CreateItem(db *gorm.DB, req ItemRequest) (models.Item, error) {
	if err := validateItemRequest(req); err != nil {
		return models.Item{}, err
	}
	taken, err := nameTaken(db, req.Name, "")
	if err != nil {
		return models.Item{}, err
	}
	if taken {
		return models.Item{}, apperrors.Validationf("item name %q is already in use", strings.TrimSpace(req.Name))
	}

	item := models.Item{
		ItemUID:   uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Price:     *req.Price,
		Inventory: req.Inventory,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(&item).Error; err != nil {
		return models.Item{}, apperrors.Store(err)
	}
	return item, nil
}

func EditItem(db *gorm.DB, itemUID string, req ItemRequest) (models.Item, error) {
	if err := validateItemRequest(req); err != nil {
		return models.Item{}, err
	}

	var item models.Item
	if err := db.First(&item, "item_uid = ? AND deleted = ?", itemUID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Item{}, apperrors.NotFoundf("item %s not found", itemUID)
		}
		return models.Item{}, apperrors.Store(err)
	}

	taken, err := nameTaken(db, req.Name, itemUID)
	if err != nil {
		return models.Item{}, err
	}
	if taken {
		return models.Item{}, apperrors.Validationf("item name %q is already in use", strings.TrimSpace(req.Name))
	}

	updates := map[string]interface{}{
		"name":      strings.TrimSpace(req.Name),
		"price":     *req.Price,
		"inventory": req.Inventory,
	}
	if err := db.Model(&item).Updates(updates).Error; err != nil {
		return models.Item{}, apperrors.Store(err)
	}
	return item, nil
}

func DeleteItem(db *gorm.DB, itemUID string) error {
	res := db.Model(&models.Item{}).
		Where("item_uid = ? AND deleted = ?", itemUID, false).
		Update("deleted", true)
	if res.Error != nil {
		return apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("item %s not found", itemUID)
	}
	return nil
}

func ListItems(db *gorm.DB) ([]models.Item, error) {
	var items []models.Item
	if err := db.
		Where("deleted = ?", false).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return items, nil
}

// -------- Handlers --------

func CreateItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}
		item, err := CreateItem(db, req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func EditItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}
		item, err := EditItem(db, c.Param("itemUID"), req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func DeleteItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := DeleteItem(db, c.Param("itemUID")); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
	}
}

func ListItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := ListItems(db)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
