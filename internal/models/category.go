package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a node in the category tree. Parent references are validated
// at write time; products point at a category by id.
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ParentID  *uint          `gorm:"index" json:"parent_id,omitempty"` // nil for root categories
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name      string         `gorm:"type:varchar(200);not null" json:"name"`
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}
