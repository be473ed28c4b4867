package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is a named sub-configuration of a product (e.g. a colour)
// with its own optional images and spec overrides. The variant identifier is
// an opaque, caller-generated string, unique within the owning product.
type ProductVariant struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"not null;index;uniqueIndex:idx_product_variant" json:"product_id"`
	VariantID string         `gorm:"column:variant_id;type:varchar(64);not null;uniqueIndex:idx_product_variant" json:"variant_id"`
	MainImage string         `gorm:"type:varchar(500)" json:"main_image,omitempty"`
	Images    StringArray    `gorm:"type:json" json:"images,omitempty"`
	SpecsJSON JSON           `gorm:"type:json" json:"specs,omitempty"` // overrides the product spec map
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}
