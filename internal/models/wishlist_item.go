package models

import (
	"time"
)

// WishlistItem marks a product a user wants to come back to. One row per
// (user, product) pair.
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_once" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_once" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
