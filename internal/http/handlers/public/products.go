package public

import (
	"errors"
	"strings"

	"github.com/cartloom/cartloom/internal/http/response"
	handlershared "github.com/cartloom/cartloom/internal/http/handlers/shared"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts serves the public catalog with category filter, search and
// pagination.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	products, total, err := h.ProductService.List(service.ProductListInput{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: c.Query("category_id"),
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"products": products}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct serves one product by slug, active only.
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	product, err := h.ProductService.GetBySlug(slug, true)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, product)
}

// ListCategories serves the nested category tree.
func (h *Handler) ListCategories(c *gin.Context) {
	tree, err := h.CategoryService.Tree()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, gin.H{"categories": tree})
}

// ListProductReviews serves a product's reviews with the aggregate rating.
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)

	reviews, err := h.ReviewService.ListByProduct(productID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "review list failed")
		return
	}
	response.Success(c, reviews)
}
