package public

import (
	"github.com/cartloom/cartloom/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetWishlist lists the user's wishlist.
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "wishlist fetch failed")
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddWishlistItem saves a product to the wishlist.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "wishlist update failed")
		return
	}
	response.Success(c, gin.H{"added": true})
}

// RemoveWishlistItem drops a product from the wishlist.
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.WishlistService.Remove(uid, productID); err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "wishlist update failed")
		return
	}
	response.Success(c, gin.H{"removed": true})
}
