package repository

import (
	"errors"

	"github.com/cartloom/cartloom/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetLine(userID, productID uint, variantID, size string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id uint, quantity int) error
	DeleteLine(userID, productID uint, variantID, size string) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser lists a user's cart lines with their products.
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Product.Variants").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetLine fetches the line for one (product, variant, size) combination.
func (r *GormCartRepository) GetLine(userID, productID uint, variantID, size string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.
		Where("user_id = ? AND product_id = ? AND variant_id = ? AND size = ?", userID, productID, variantID, size).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new cart line.
func (r *GormCartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateQuantity sets the quantity of an existing line.
func (r *GormCartRepository) UpdateQuantity(id uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

// DeleteLine removes one cart line.
func (r *GormCartRepository) DeleteLine(userID, productID uint, variantID, size string) error {
	return r.db.
		Where("user_id = ? AND product_id = ? AND variant_id = ? AND size = ?", userID, productID, variantID, size).
		Delete(&models.CartItem{}).Error
}

// ClearByUser empties a user's cart.
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
