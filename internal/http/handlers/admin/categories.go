package admin

import (
	"errors"

	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest is the create/update payload.
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

// ListCategories serves the full category tree for the admin console.
func (h *Handler) ListCategories(c *gin.Context) {
	tree, err := h.CategoryService.Tree()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, gin.H{"categories": tree})
}

// CreateCategory creates a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.respondCategoryError(c, err, "category create failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory updates a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Slug:      req.Slug,
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.respondCategoryError(c, err, "category update failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory deletes a leaf category with no products.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		h.respondCategoryError(c, err, "category delete failed")
		return
	}
	response.SuccessWithMsg(c, "category deleted", nil)
}

func (h *Handler) respondCategoryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "category not found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeConflict, "slug already in use", nil)
	case errors.Is(err, service.ErrCategoryParentInvalid):
		respondError(c, response.CodeBadRequest, "invalid parent category", nil)
	case errors.Is(err, service.ErrCategoryNotEmpty):
		respondError(c, response.CodeConflict, "category still has children or products", nil)
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, "invalid category payload", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
