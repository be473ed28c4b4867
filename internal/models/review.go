package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a buyer's rating of a product on a specific order. One review
// per (order, product, user) combination, enforced by a unique index.
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;uniqueIndex:idx_review_once" json:"order_id"`
	ProductID uint           `gorm:"not null;uniqueIndex:idx_review_once" json:"product_id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_review_once" json:"user_id"`
	Rating    int            `gorm:"not null" json:"rating"` // 1..5
	Comment   string         `gorm:"type:varchar(2000)" json:"comment,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Review) TableName() string {
	return "reviews"
}
