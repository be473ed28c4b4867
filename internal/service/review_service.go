package service

import (
	"strings"

	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"
)

// ReviewService owns product reviews. A user can review a product once per
// order, and only products they actually bought on that order.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
}

// NewReviewService creates a review service.
func NewReviewService(reviewRepo repository.ReviewRepository, orderRepo repository.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

// CreateReviewInput is the review submission.
type CreateReviewInput struct {
	UserID    uint
	OrderID   uint
	ProductID uint
	Rating    int
	Comment   string
}

// Create adds a review after checking purchase eligibility.
func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.UserID == 0 || input.OrderID == 0 || input.ProductID == 0 {
		return nil, ErrValidation
	}
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return nil, ErrRatingOutOfRange
	}

	order, err := s.orderRepo.GetByIDAndUser(input.OrderID, input.UserID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	purchased := false
	for _, item := range order.Items {
		if item.ProductID == input.ProductID {
			purchased = true
			break
		}
	}
	if !purchased {
		return nil, ErrReviewNotEligible
	}

	existing, err := s.reviewRepo.GetByOrderProductUser(input.OrderID, input.ProductID, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		OrderID:   input.OrderID,
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ProductReviews is a paged review listing with the aggregate rating.
type ProductReviews struct {
	Reviews       []models.Review `json:"reviews"`
	Total         int64           `json:"total"`
	AverageRating float64         `json:"average_rating"`
}

// ListByProduct serves a product's review page.
func (s *ReviewService) ListByProduct(productID uint, page, pageSize int) (*ProductReviews, error) {
	if productID == 0 {
		return nil, ErrValidation
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	reviews, total, err := s.reviewRepo.ListByProduct(repository.ReviewListFilter{
		ProductID: productID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, err
	}
	avg, _, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, err
	}
	return &ProductReviews{
		Reviews:       reviews,
		Total:         total,
		AverageRating: avg,
	}, nil
}

// ListByUser lists everything a user has written.
func (s *ReviewService) ListByUser(userID uint) ([]models.Review, error) {
	if userID == 0 {
		return nil, ErrValidation
	}
	return s.reviewRepo.ListByUser(userID)
}

// Update edits a review. Only the author may edit.
func (s *ReviewService) Update(userID, reviewID uint, rating int, comment string) (*models.Review, error) {
	if userID == 0 || reviewID == 0 {
		return nil, ErrValidation
	}
	if rating < constants.ReviewRatingMin || rating > constants.ReviewRatingMax {
		return nil, ErrRatingOutOfRange
	}
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil || review.UserID != userID {
		return nil, ErrReviewNotFound
	}
	review.Rating = rating
	review.Comment = strings.TrimSpace(comment)
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. Only the author may delete.
func (s *ReviewService) Delete(userID, reviewID uint) error {
	if userID == 0 || reviewID == 0 {
		return ErrValidation
	}
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil || review.UserID != userID {
		return ErrReviewNotFound
	}
	return s.reviewRepo.Delete(review.ID)
}
