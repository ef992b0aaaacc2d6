package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/matthews-code/yummybitest3/apperrors"
	"github.com/matthews-code/yummybitest3/models"
)

// -------- Request Structs --------

type LineRequest struct {
	ItemUID    string `json:"item_uid" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Multiplier int    `json:"multiplier"`
}

type OrderRequest struct {
	Date         time.Time     `json:"date" binding:"required"`
	AmountDue    float64       `json:"amount_due"`
	PaymentMode  string        `json:"payment_mode" binding:"required"`
	DeliveryMode string        `json:"delivery_mode" binding:"required"`
	Note         string        `json:"note"`
	CustomerUID  string        `json:"customer_uid" binding:"required"`
	Lines        []LineRequest `json:"lines" binding:"required"`
}

type ToggleRequest struct {
	// Current is the caller's notion of the flag's present value; the server
	// stores its negation without reading the row first (last write wins).
	Current *bool `json:"current" binding:"required"`
}

// -------- Core Logic --------

func validateOrderRequest(req OrderRequest) (models.PaymentMode, models.DeliveryMode, error) {
	paymentMode, err := models.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		return "", "", apperrors.Validationf("invalid payment mode %q", req.PaymentMode)
	}
	deliveryMode, err := models.ParseDeliveryMode(req.DeliveryMode)
	if err != nil {
		return "", "", apperrors.Validationf("invalid delivery mode %q", req.DeliveryMode)
	}
	if req.AmountDue < 0 {
		return "", "", apperrors.Validation("amount due must be zero or positive")
	}
	if len(req.Lines) == 0 {
		return "", "", apperrors.Validation("order must contain at least one line")
	}

	seen := make(map[string]bool, len(req.Lines))
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return "", "", apperrors.Validationf("quantity for item %s must be positive", line.ItemUID)
		}
		if line.Multiplier < 0 {
			return "", "", apperrors.Validationf("multiplier for item %s must be zero or positive", line.ItemUID)
		}
		if seen[line.ItemUID] {
			return "", "", apperrors.Validationf("item %s appears more than once", line.ItemUID)
		}
		seen[line.ItemUID] = true
	}
	return paymentMode, deliveryMode, nil
}

// checkReferences verifies that the owning customer and every line item exist
// as live rows before any write happens.
func checkReferences(tx *gorm.DB, customerUID string, lines []LineRequest) error {
	var customerCount int64
	if err := tx.Model(&models.Customer{}).
		Where("customer_uid = ? AND deleted = ?", customerUID, false).
		Count(&customerCount).Error; err != nil {
		return apperrors.Store(err)
	}
	if customerCount == 0 {
		return apperrors.ForeignKeyf("customer %s does not exist", customerUID)
	}

	itemUIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		itemUIDs = append(itemUIDs, line.ItemUID)
	}
	var items []models.Item
	if err := tx.Where("item_uid IN ? AND deleted = ?", itemUIDs, false).
		Find(&items).Error; err != nil {
		return apperrors.Store(err)
	}
	if len(items) != len(itemUIDs) {
		found := make(map[string]bool, len(items))
		for _, item := range items {
			found[item.ItemUID] = true
		}
		for _, itemUID := range itemUIDs {
			if !found[itemUID] {
				return apperrors.ForeignKeyf("item %s does not exist", itemUID)
			}
		}
	}
	return nil
}

func buildLines(orderUID string, lines []LineRequest) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		multiplier := line.Multiplier
		if multiplier == 0 {
			multiplier = 1
		}
		out = append(out, models.OrderLine{
			OrderUID:   orderUID,
			ItemUID:    line.ItemUID,
			Quantity:   line.Quantity,
			Multiplier: multiplier,
		})
	}
	return out
}

// CreateOrder writes the order and its lines as one atomic unit. The amount
// due is taken from the caller as-is and never re-derived here.
func CreateOrder(db *gorm.DB, req OrderRequest) (models.Order, error) {
	paymentMode, deliveryMode, err := validateOrderRequest(req)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		OrderUID:     uuid.NewString(),
		Date:         req.Date.UTC(),
		AmountDue:    req.AmountDue,
		PaymentMode:  paymentMode,
		DeliveryMode: deliveryMode,
		Note:         req.Note,
		CustomerUID:  req.CustomerUID,
		CreatedAt:    time.Now().UTC(),
	}
	order.Lines = buildLines(order.OrderUID, req.Lines)

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, req.CustomerUID, req.Lines); err != nil {
			return err
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperrors.Store(err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// EditOrder replaces the whole line set (delete then recreate, not a merge)
// and updates the order row in a single transaction. No partial state is ever
// visible: either every step lands or none do.
func EditOrder(db *gorm.DB, orderUID string, req OrderRequest) (models.Order, error) {
	paymentMode, deliveryMode, err := validateOrderRequest(req)
	if err != nil {
		return models.Order{}, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "order_uid = ? AND deleted = ?", orderUID, false).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("order %s not found", orderUID)
			}
			return apperrors.Store(err)
		}
		if err := checkReferences(tx, req.CustomerUID, req.Lines); err != nil {
			return err
		}
		if err := tx.Where("order_uid = ?", orderUID).Delete(&models.OrderLine{}).Error; err != nil {
			return apperrors.Store(err)
		}
		lines := buildLines(orderUID, req.Lines)
		if err := tx.Create(&lines).Error; err != nil {
			return apperrors.Store(err)
		}
		updates := map[string]interface{}{
			"date":          req.Date.UTC(),
			"amount_due":    req.AmountDue,
			"payment_mode":  paymentMode,
			"delivery_mode": deliveryMode,
			"note":          req.Note,
			"customer_uid":  req.CustomerUID,
		}
		if err := tx.Model(&models.Order{}).Where("order_uid = ?", orderUID).Updates(updates).Error; err != nil {
			return apperrors.Store(err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return GetOrder(db, orderUID)
}

// DeleteOrder flips the soft-delete flag; every read path filters deleted
// rows, so the order and its lines vanish from all views while staying
// auditable. Deleting an already-deleted order reports not found.
func DeleteOrder(db *gorm.DB, orderUID string) error {
	res := db.Model(&models.Order{}).
		Where("order_uid = ? AND deleted = ?", orderUID, false).
		Update("deleted", true)
	if res.Error != nil {
		return apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("order %s not found", orderUID)
	}
	return nil
}

// toggleFlag stores the negation of the caller-supplied current value. This is
// deliberately a blind write, not read-then-invert: two concurrent toggles on
// the same order can lose one update. Matching toggle behavior lives in the
// client day cache, which snapshots and rolls back on failure.
func toggleFlag(db *gorm.DB, orderUID, column string, current bool) (models.Order, error) {
	res := db.Model(&models.Order{}).
		Where("order_uid = ? AND deleted = ?", orderUID, false).
		Update(column, !current)
	if res.Error != nil {
		return models.Order{}, apperrors.Store(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Order{}, apperrors.NotFoundf("order %s not found", orderUID)
	}
	return GetOrder(db, orderUID)
}

func TogglePaid(db *gorm.DB, orderUID string, current bool) (models.Order, error) {
	return toggleFlag(db, orderUID, "paid", current)
}

func ToggleCollected(db *gorm.DB, orderUID string, current bool) (models.Order, error) {
	return toggleFlag(db, orderUID, "collected", current)
}

// GetOrder fetches one live order with its lines.
func GetOrder(db *gorm.DB, orderUID string) (models.Order, error) {
	var order models.Order
	if err := db.Preload("Lines").
		First(&order, "order_uid = ? AND deleted = ?", orderUID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperrors.NotFoundf("order %s not found", orderUID)
		}
		return models.Order{}, apperrors.Store(err)
	}
	return order, nil
}

// ListOrdersForDay returns the live orders whose date falls in the literal
// 24-hour window starting at day. The window is not re-anchored to a local
// midnight on the server; the caller picks the starting instant.
func ListOrdersForDay(db *gorm.DB, day time.Time) ([]models.Order, error) {
	start := day.UTC()
	end := start.Add(24 * time.Hour)

	var orders []models.Order
	if err := db.Preload("Lines").
		Where("deleted = ? AND date >= ? AND date < ?", false, start, end).
		Order("date asc, customer_uid asc").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return orders, nil
}

// ListOrdersForCustomer returns a customer's live order history, newest first.
func ListOrdersForCustomer(db *gorm.DB, customerUID string) ([]models.Order, error) {
	var orders []models.Order
	if err := db.Preload("Lines").
		Where("deleted = ? AND customer_uid = ?", false, customerUID).
		Order("date desc").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return orders, nil
}

// -------- Handlers --------

func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}
		order, err := CreateOrder(db, req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"order_uid":    order.OrderUID,
			"customer_uid": order.CustomerUID,
			"date":         order.Date,
		}).Info("order created")
		broadcastOrdersChanged(order.Date)
		c.JSON(http.StatusCreated, order)
	}
}

func EditOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}
		order, err := EditOrder(db, c.Param("orderUID"), req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		broadcastOrdersChanged(order.Date)
		c.JSON(http.StatusOK, order)
	}
}

func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderUID := c.Param("orderUID")
		order, err := GetOrder(db, orderUID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if err := DeleteOrder(db, orderUID); err != nil {
			apperrors.Respond(c, err)
			return
		}
		broadcastOrdersChanged(order.Date)
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}

func togglePaidOrCollectedHandler(db *gorm.DB, toggle func(*gorm.DB, string, bool) (models.Order, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ToggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.Validation(err.Error()))
			return
		}
		order, err := toggle(db, c.Param("orderUID"), *req.Current)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		broadcastOrdersChanged(order.Date)
		c.JSON(http.StatusOK, order)
	}
}

func TogglePaidHandler(db *gorm.DB) gin.HandlerFunc {
	return togglePaidOrCollectedHandler(db, TogglePaid)
}

func ToggleCollectedHandler(db *gorm.DB) gin.HandlerFunc {
	return togglePaidOrCollectedHandler(db, ToggleCollected)
}

func ListOrdersForDayHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dateStr := c.Query("date")
		if dateStr == "" {
			apperrors.Respond(c, apperrors.Validation("date query parameter is required"))
			return
		}
		day, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			apperrors.Respond(c, apperrors.Validationf("invalid date %q, want RFC3339", dateStr))
			return
		}
		orders, err := ListOrdersForDay(db, day)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func ListOrdersForCustomerHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerUID := c.Param("customerUID")
		if customerUID == "" {
			apperrors.Respond(c, apperrors.Validation("customerUID is required"))
			return
		}
		orders, err := ListOrdersForCustomer(db, customerUID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
