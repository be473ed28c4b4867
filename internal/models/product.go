package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. Stock is a plain counter decremented at
// order creation; there is no reservation or optimistic locking.
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name            string         `gorm:"type:varchar(300);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	PriceAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`
	DiscountedPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discounted_price"` // zero means no discount
	Stock           int            `gorm:"not null;default:0" json:"stock"`
	Sizes           StringArray    `gorm:"type:json" json:"sizes"`
	SpecsJSON       JSON           `gorm:"type:json" json:"specs"` // section -> key -> value
	Images          StringArray    `gorm:"type:json" json:"images"`
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the discounted price when one is set.
func (p *Product) EffectivePrice() Money {
	if p == nil {
		return Money{}
	}
	if p.DiscountedPrice.IsPositive() && p.DiscountedPrice.LessThan(p.PriceAmount.Decimal) {
		return p.DiscountedPrice
	}
	return p.PriceAmount
}

// FindVariant returns the variant with the given opaque identifier, or nil.
func (p *Product) FindVariant(variantID string) *ProductVariant {
	if p == nil || variantID == "" {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].VariantID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}
