package models

import (
	"errors"
	"strings"
	"time"
)

type PaymentMode string
type DeliveryMode string

const (
	PaymentCash  PaymentMode = "Cash"
	PaymentGcash PaymentMode = "Gcash"
	PaymentBPI   PaymentMode = "BPI"

	DeliveryPickup   DeliveryMode = "Pickup"
	DeliveryDelivery DeliveryMode = "Delivery"
)

// ParsePaymentMode maps a string to a PaymentMode.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch strings.ToLower(s) {
	case strings.ToLower(string(PaymentCash)):
		return PaymentCash, nil
	case strings.ToLower(string(PaymentGcash)):
		return PaymentGcash, nil
	case strings.ToLower(string(PaymentBPI)):
		return PaymentBPI, nil
	default:
		return "", errors.New("invalid payment mode")
	}
}

// ParseDeliveryMode maps a string to a DeliveryMode.
func ParseDeliveryMode(s string) (DeliveryMode, error) {
	switch strings.ToLower(s) {
	case strings.ToLower(string(DeliveryPickup)):
		return DeliveryPickup, nil
	case strings.ToLower(string(DeliveryDelivery)):
		return DeliveryDelivery, nil
	default:
		return "", errors.New("invalid delivery mode")
	}
}

type Order struct {
	OrderUID     string       `gorm:"primaryKey" json:"order_uid"`
	Date         time.Time    `gorm:"not null;index" json:"date"`
	AmountDue    float64      `gorm:"not null" json:"amount_due"`
	PaymentMode  PaymentMode  `gorm:"type:VARCHAR(10);not null" json:"payment_mode"`
	DeliveryMode DeliveryMode `gorm:"type:VARCHAR(10);not null" json:"delivery_mode"`
	Note         string       `json:"note"`
	CustomerUID  string       `gorm:"not null;index" json:"customer_uid"`
	Paid         bool         `gorm:"not null;default:false" json:"paid"`
	Collected    bool         `gorm:"not null;default:false" json:"collected"`
	Deleted      bool         `gorm:"not null;default:false" json:"deleted"`
	CreatedAt    time.Time    `json:"created_at"`
	Lines        []OrderLine  `gorm:"foreignKey:OrderUID;constraint:OnDelete:CASCADE" json:"lines"`
}

// OrderLine is one (item, quantity, multiplier) entry within an order.
// An order never holds the same item twice as separate lines.
type OrderLine struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	OrderUID   string `gorm:"not null;uniqueIndex:idx_order_item" json:"order_uid"`
	ItemUID    string `gorm:"not null;uniqueIndex:idx_order_item" json:"item_uid"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	Multiplier int    `gorm:"not null;default:1" json:"multiplier"`
}
