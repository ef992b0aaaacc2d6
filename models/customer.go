package models

import "time"

type Customer struct {
	CustomerUID string    `gorm:"primaryKey" json:"customer_uid"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    *string   `json:"last_name"`
	ContactNum  string    `gorm:"not null;index" json:"contact_num"`
	Address     *string   `json:"address"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
}
