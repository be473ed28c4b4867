package public

import (
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest is the add-to-cart payload.
type CartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// CartQuantityRequest is the set-quantity payload. Zero removes the line.
type CartQuantityRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// GetCart returns the user's cart with line subtotals and the cart total.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	summary, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart fetch failed")
		return
	}
	response.Success(c, summary)
}

// AddCartItem adds a product to the cart, merging same-keyed lines.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CartService.AddItem(service.UpsertCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	}); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, gin.H{"added": true})
}

// UpdateCartItem replaces a line's quantity; zero removes the line.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CartService.SetQuantity(service.UpsertCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	}); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem removes one cart line.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, productID, c.Query("variant_id"), c.Query("size")); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart empties the user's cart.
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
