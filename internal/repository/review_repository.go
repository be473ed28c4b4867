package repository

import (
	"errors"

	"github.com/cartloom/cartloom/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository is the review data access interface.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	GetByOrderProductUser(orderID, productID, userID uint) (*models.Review, error)
	ListByProduct(filter ReviewListFilter) ([]models.Review, int64, error)
	ListByUser(userID uint) ([]models.Review, error)
	AverageRating(productID uint) (float64, int64, error)
	Update(review *models.Review) error
	Delete(id uint) error
}

// GormReviewRepository is the GORM implementation.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a review repository.
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create inserts a review.
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetByID fetches one review.
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByOrderProductUser fetches the review for one purchase, if any.
func (r *GormReviewRepository) GetByOrderProductUser(orderID, productID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.
		Where("order_id = ? AND product_id = ? AND user_id = ?", orderID, productID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByProduct lists a product's reviews, newest first.
func (r *GormReviewRepository) ListByProduct(filter ReviewListFilter) ([]models.Review, int64, error) {
	var reviews []models.Review
	query := r.db.Model(&models.Review{}).Where("product_id = ?", filter.ProductID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("User").Order("id desc").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListByUser lists everything a user has reviewed.
func (r *GormReviewRepository) ListByUser(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id desc").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Update saves review edits.
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// Delete removes a review.
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// AverageRating returns the mean rating and review count for a product.
func (r *GormReviewRepository) AverageRating(productID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	if err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ?", productID).
		Take(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}
