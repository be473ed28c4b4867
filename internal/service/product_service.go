package service

import (
	"strings"

	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService owns catalog reads and back-office writes.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ProductListInput filters the catalog listing.
type ProductListInput struct {
	Page       int
	PageSize   int
	CategoryID string
	Search     string
	OnlyActive bool
}

// List serves the catalog listing.
func (s *ProductService) List(input ProductListInput) ([]models.Product, int64, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 20
	}
	return s.productRepo.List(repository.ProductListFilter{
		Page:         input.Page,
		PageSize:     input.PageSize,
		CategoryID:   input.CategoryID,
		Search:       input.Search,
		OnlyActive:   input.OnlyActive,
		WithCategory: true,
		WithVariants: true,
	})
}

// GetBySlug fetches one product for the storefront.
func (s *ProductService) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrValidation
	}
	product, err := s.productRepo.GetBySlug(slug, onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByID fetches one product.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrValidation
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// VariantInput is one variant in a product submission.
type VariantInput struct {
	VariantID string
	MainImage string
	Images    []string
	Specs     models.JSON
}

// ProductInput is the create/update submission.
type ProductInput struct {
	CategoryID      uint
	Slug            string
	Name            string
	Description     string
	Price           decimal.Decimal
	DiscountedPrice decimal.Decimal
	Stock           int
	Sizes           []string
	Specs           models.JSON
	Images          []string
	IsActive        bool
	SortOrder       int
	Variants        []VariantInput
}

func (s *ProductService) validateInput(input ProductInput, excludeID *uint) error {
	if strings.TrimSpace(input.Slug) == "" || strings.TrimSpace(input.Name) == "" {
		return ErrValidation
	}
	if input.Price.LessThanOrEqual(decimal.Zero) || input.Stock < 0 {
		return ErrValidation
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.productRepo.CountBySlug(strings.TrimSpace(input.Slug), excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}

	seen := make(map[string]bool, len(input.Variants))
	for _, variant := range input.Variants {
		vid := strings.TrimSpace(variant.VariantID)
		if vid == "" {
			return ErrValidation
		}
		if seen[vid] {
			return ErrVariantIDTaken
		}
		seen[vid] = true
	}
	return nil
}

// Create adds a product with its variants.
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input, nil); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:      input.CategoryID,
		Slug:            strings.TrimSpace(input.Slug),
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		PriceAmount:     models.NewMoneyFromDecimal(input.Price),
		DiscountedPrice: models.NewMoneyFromDecimal(input.DiscountedPrice),
		Stock:           input.Stock,
		Sizes:           input.Sizes,
		SpecsJSON:       input.Specs,
		Images:          input.Images,
		IsActive:        input.IsActive,
		SortOrder:       input.SortOrder,
	}
	for _, variant := range input.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			VariantID: strings.TrimSpace(variant.VariantID),
			MainImage: variant.MainImage,
			Images:    variant.Images,
			SpecsJSON: variant.Specs,
		})
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update edits a product, replacing its variant set.
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	if id == 0 {
		return nil, ErrValidation
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateInput(input, &id); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Slug = strings.TrimSpace(input.Slug)
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.PriceAmount = models.NewMoneyFromDecimal(input.Price)
	product.DiscountedPrice = models.NewMoneyFromDecimal(input.DiscountedPrice)
	product.Stock = input.Stock
	product.Sizes = input.Sizes
	product.SpecsJSON = input.Specs
	product.Images = input.Images
	product.IsActive = input.IsActive
	product.SortOrder = input.SortOrder

	variants := make([]models.ProductVariant, 0, len(input.Variants))
	for _, variant := range input.Variants {
		vid := strings.TrimSpace(variant.VariantID)
		next := models.ProductVariant{
			ProductID: product.ID,
			VariantID: vid,
			MainImage: variant.MainImage,
			Images:    variant.Images,
			SpecsJSON: variant.Specs,
		}
		if existing := product.FindVariant(vid); existing != nil {
			next.ID = existing.ID
		}
		variants = append(variants, next)
	}
	product.Variants = variants

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft-deletes a product.
func (s *ProductService) Delete(id uint) error {
	if id == 0 {
		return ErrValidation
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}
