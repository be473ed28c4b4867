package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers map these to response
// codes; keep messages short and user-facing.
var (
	ErrValidation              = errors.New("invalid request")
	ErrProductNotFound         = errors.New("product not found")
	ErrProductNotAvailable     = errors.New("product not available")
	ErrVariantNotFound         = errors.New("product variant not found")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrCartItemNotFound        = errors.New("cart item not found")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategoryParentInvalid   = errors.New("invalid parent category")
	ErrCategoryNotEmpty        = errors.New("category still has products")
	ErrSlugTaken               = errors.New("slug already in use")
	ErrVariantIDTaken          = errors.New("variant id already in use")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderEmpty              = errors.New("order has no items")
	ErrOrderTotalMismatch      = errors.New("order total does not match item subtotals")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrStatusTransitionInvalid = errors.New("status transition not allowed")
	ErrAmountOutOfRange        = errors.New("amount out of payable range")
	ErrPaymentIncomplete       = errors.New("payment not completed")
	ErrSessionNotFound         = errors.New("payment session not found")
	ErrReviewNotFound          = errors.New("review not found")
	ErrReviewExists            = errors.New("product already reviewed for this order")
	ErrReviewNotEligible       = errors.New("only purchased products can be reviewed")
	ErrRatingOutOfRange        = errors.New("rating must be between 1 and 5")
	ErrWishlistExists          = errors.New("product already in wishlist")
	ErrEmailTaken              = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrCaptchaInvalid          = errors.New("captcha verification failed")
	ErrUserNotFound            = errors.New("user not found")
)

// OrderItemError wraps an item-level checkout failure with the zero-based
// index of the offending line.
type OrderItemError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *OrderItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// Unwrap exposes the wrapped cause for errors.Is/As.
func (e *OrderItemError) Unwrap() error {
	return e.Err
}
