package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is one purchased line of an order. Name, price and image are
// snapshots of the product at checkout time.
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"index;not null" json:"order_id"`
	ProductID  uint           `gorm:"index;not null" json:"product_id"`
	Name       string         `gorm:"not null" json:"name"`
	VariantID  string         `gorm:"column:variant_id;type:varchar(64);not null;default:''" json:"variant_id,omitempty"`
	Size       string         `gorm:"type:varchar(32);not null;default:''" json:"size,omitempty"`
	Image      string         `gorm:"type:varchar(500)" json:"image,omitempty"`
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
