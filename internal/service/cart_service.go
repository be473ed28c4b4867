package service

import (
	"strings"
	"time"

	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail is one cart line shaped for responses, with the effective
// unit price resolved from the product's current discount.
type CartItemDetail struct {
	ProductID     uint            `json:"product_id"`
	VariantID     string          `json:"variant_id,omitempty"`
	Size          string          `json:"size,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     models.Money    `json:"unit_price"`
	OriginalPrice models.Money    `json:"original_price"`
	Subtotal      models.Money    `json:"subtotal"`
	Product       *models.Product `json:"product"`
}

// CartSummary is a user's full cart with the line subtotal sum.
type CartSummary struct {
	Items []CartItemDetail `json:"items"`
	Total models.Money     `json:"total"`
}

// UpsertCartItemInput is the add-to-cart input.
type UpsertCartItemInput struct {
	UserID    uint
	ProductID uint
	VariantID string
	Size      string
	Quantity  int
}

// CartService owns cart reads and writes.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser returns the user's cart. Lines whose product has gone missing
// or inactive are dropped from the cart as a side effect.
func (s *CartService) ListByUser(userID uint) (*CartSummary, error) {
	if userID == 0 {
		return nil, ErrValidation
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			_ = s.cartRepo.DeleteLine(userID, item.ProductID, item.VariantID, item.Size)
			continue
		}

		unitPrice := product.EffectivePrice()
		subtotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)

		details = append(details, CartItemDetail{
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			Size:          item.Size,
			Quantity:      item.Quantity,
			UnitPrice:     unitPrice,
			OriginalPrice: product.PriceAmount,
			Subtotal:      models.NewMoneyFromDecimal(subtotal),
			Product:       product,
		})
	}
	return &CartSummary{
		Items: details,
		Total: models.NewMoneyFromDecimal(total),
	}, nil
}

// AddItem adds a product to the cart. Adding an existing (product, variant,
// size) combination merges by summing quantities.
func (s *CartService) AddItem(input UpsertCartItemInput) error {
	if input.UserID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return ErrValidation
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductNotAvailable
	}

	variantID := strings.TrimSpace(input.VariantID)
	if variantID != "" && product.FindVariant(variantID) == nil {
		return ErrVariantNotFound
	}

	existing, err := s.cartRepo.GetLine(input.UserID, input.ProductID, variantID, input.Size)
	if err != nil {
		return err
	}
	if existing != nil {
		merged := existing.Quantity + input.Quantity
		if merged > product.Stock {
			return ErrInsufficientStock
		}
		return s.cartRepo.UpdateQuantity(existing.ID, merged)
	}
	if input.Quantity > product.Stock {
		return ErrInsufficientStock
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		VariantID: variantID,
		Size:      input.Size,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.cartRepo.Create(item)
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func (s *CartService) SetQuantity(input UpsertCartItemInput) error {
	if input.UserID == 0 || input.ProductID == 0 || input.Quantity < 0 {
		return ErrValidation
	}
	existing, err := s.cartRepo.GetLine(input.UserID, input.ProductID, strings.TrimSpace(input.VariantID), input.Size)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	if input.Quantity == 0 {
		return s.cartRepo.DeleteLine(input.UserID, input.ProductID, existing.VariantID, existing.Size)
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if !product.IsActive {
		return ErrProductNotAvailable
	}
	if input.Quantity > product.Stock {
		return ErrInsufficientStock
	}
	return s.cartRepo.UpdateQuantity(existing.ID, input.Quantity)
}

// RemoveItem deletes one cart line.
func (s *CartService) RemoveItem(userID, productID uint, variantID, size string) error {
	if userID == 0 || productID == 0 {
		return ErrValidation
	}
	return s.cartRepo.DeleteLine(userID, productID, strings.TrimSpace(variantID), size)
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrValidation
	}
	return s.cartRepo.ClearByUser(userID)
}
