package service

import (
	"strings"

	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"
)

// CategoryService owns the category tree. Parent links are validated at
// write time so reads never need cycle detection.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput is the create/update submission.
type CategoryInput struct {
	Slug      string
	Name      string
	ParentID  *uint
	SortOrder int
}

// Tree returns the full category forest, children nested under parents.
func (s *CategoryService) Tree() ([]models.Category, error) {
	flat, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Category, len(flat))
	for i := range flat {
		byID[flat[i].ID] = &flat[i]
	}
	roots := make([]models.Category, 0)
	for i := range flat {
		node := &flat[i]
		if node.ParentID == nil {
			continue
		}
		if parent, ok := byID[*node.ParentID]; ok {
			parent.Children = append(parent.Children, *node)
		}
	}
	for i := range flat {
		if flat[i].ParentID == nil {
			roots = append(roots, flat[i])
		}
	}
	return roots, nil
}

// Create adds a category.
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		return nil, ErrValidation
	}
	count, err := s.categoryRepo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}
	if input.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryParentInvalid
		}
	}

	category := &models.Category{
		Slug:      slug,
		Name:      name,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits a category. Re-parenting onto the category itself or any of
// its descendants is rejected.
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	if id == 0 {
		return nil, ErrValidation
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		return nil, ErrValidation
	}
	count, err := s.categoryRepo.CountBySlug(slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, ErrCategoryParentInvalid
		}
		ancestorID := input.ParentID
		for ancestorID != nil {
			if *ancestorID == id {
				return nil, ErrCategoryParentInvalid
			}
			ancestor, err := s.categoryRepo.GetByID(*ancestorID)
			if err != nil {
				return nil, err
			}
			if ancestor == nil {
				return nil, ErrCategoryParentInvalid
			}
			ancestorID = ancestor.ParentID
		}
	}

	category.Slug = slug
	category.Name = name
	category.ParentID = input.ParentID
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes an empty, childless category.
func (s *CategoryService) Delete(id uint) error {
	if id == 0 {
		return ErrValidation
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	productCount, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return ErrCategoryNotEmpty
	}
	children, err := s.categoryRepo.ListChildren(id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return ErrCategoryNotEmpty
	}
	return s.categoryRepo.Delete(id)
}
