package models

import (
	"time"
)

// CartItem is one line in a user's cart. A line is keyed by the combination
// of user, product, variant and size; adding the same combination again merges
// quantities instead of creating a new row.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"product_id"`
	VariantID string    `gorm:"column:variant_id;type:varchar(64);not null;default:'';uniqueIndex:idx_cart_line" json:"variant_id,omitempty"`
	Size      string    `gorm:"type:varchar(32);not null;default:'';uniqueIndex:idx_cart_line" json:"size,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
