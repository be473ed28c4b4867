package public

import (
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest is the review submission.
type CreateReviewRequest struct {
	OrderID   uint   `json:"order_id" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest is the review edit payload.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// CreateReview adds a review for a purchased product.
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	review, err := h.ReviewService.Create(service.CreateReviewInput{
		UserID:    uid,
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "review create failed")
		return
	}
	response.Success(c, review)
}

// UpdateReview edits the author's own review.
func (h *Handler) UpdateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	review, err := h.ReviewService.Update(uid, reviewID, req.Rating, req.Comment)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "review update failed")
		return
	}
	response.Success(c, review)
}

// DeleteReview removes the author's own review.
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(uid, reviewID); err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "review delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListMyReviews lists everything the authenticated user has reviewed.
func (h *Handler) ListMyReviews(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviews, err := h.ReviewService.ListByUser(uid)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "review list failed")
		return
	}
	response.Success(c, gin.H{"reviews": reviews})
}
