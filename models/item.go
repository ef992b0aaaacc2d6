package models

import "time"

type Item struct {
	ItemUID   string    `gorm:"primaryKey" json:"item_uid"`
	Name      string    `gorm:"not null;index" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Inventory *int      `json:"inventory"`
	Deleted   bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}
