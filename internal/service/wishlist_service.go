package service

import (
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"
)

// WishlistService owns the per-user wishlist.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates a wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// List returns a user's wishlist with products.
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrValidation
	}
	return s.wishlistRepo.ListByUser(userID)
}

// Add puts a product on the wishlist.
func (s *WishlistService) Add(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrValidation
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotAvailable
	}
	existing, err := s.wishlistRepo.Get(userID, productID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrWishlistExists
	}
	return s.wishlistRepo.Create(&models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	})
}

// Remove takes a product off the wishlist.
func (s *WishlistService) Remove(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrValidation
	}
	return s.wishlistRepo.Delete(userID, productID)
}
