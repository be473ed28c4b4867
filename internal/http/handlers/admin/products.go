package admin

import (
	"errors"
	"strings"

	handlershared "github.com/cartloom/cartloom/internal/http/handlers/shared"
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VariantRequest is one variant in a product submission.
type VariantRequest struct {
	VariantID string      `json:"variant_id" binding:"required"`
	MainImage string      `json:"main_image"`
	Images    []string    `json:"images"`
	Specs     models.JSON `json:"specs"`
}

// ProductRequest is the create/update payload.
type ProductRequest struct {
	CategoryID      uint             `json:"category_id" binding:"required"`
	Slug            string           `json:"slug" binding:"required"`
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price" binding:"required"`
	DiscountedPrice decimal.Decimal  `json:"discounted_price"`
	Stock           int              `json:"stock"`
	Sizes           []string         `json:"sizes"`
	Specs           models.JSON      `json:"specs"`
	Images          []string         `json:"images"`
	IsActive        *bool            `json:"is_active"`
	SortOrder       int              `json:"sort_order"`
	Variants        []VariantRequest `json:"variants"`
}

func (r ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		CategoryID:      r.CategoryID,
		Slug:            r.Slug,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DiscountedPrice: r.DiscountedPrice,
		Stock:           r.Stock,
		Sizes:           r.Sizes,
		Specs:           r.Specs,
		Images:          r.Images,
		IsActive:        true,
		SortOrder:       r.SortOrder,
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	for _, v := range r.Variants {
		input.Variants = append(input.Variants, service.VariantInput{
			VariantID: v.VariantID,
			MainImage: v.MainImage,
			Images:    v.Images,
			Specs:     v.Specs,
		})
	}
	return input
}

// ListProducts serves the admin catalog listing, inactive products included.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	products, total, err := h.ProductService.List(service.ProductListInput{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: strings.TrimSpace(c.Query("category")),
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: false,
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

// GetProduct serves one product with category and variants.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		h.respondProductError(c, err, "product fetch failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct creates a product with its variants.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		h.respondProductError(c, err, "product create failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct replaces a product and its variant set.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		h.respondProductError(c, err, "product update failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct soft-deletes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		h.respondProductError(c, err, "product delete failed")
		return
	}
	response.SuccessWithMsg(c, "product deleted", nil)
}

func (h *Handler) respondProductError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeConflict, "slug already in use", nil)
	case errors.Is(err, service.ErrVariantIDTaken):
		respondError(c, response.CodeConflict, "variant id already in use", nil)
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, "invalid product payload", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}
