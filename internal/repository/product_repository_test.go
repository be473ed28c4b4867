package repository

import (
	"fmt"
	"testing"

	"github.com/cartloom/cartloom/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate product tables failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, slug string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  1,
		Slug:        slug,
		Name:        "Test Product " + slug,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		Stock:       stock,
		IsActive:    true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestStockDecrementAndRestore(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "stock-lifecycle", 10)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	// Asking for more than remains must not touch the row.
	affected, err = repo.DecrementStock(product.ID, 8)
	if err != nil {
		t.Fatalf("decrement over available failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over available affected want 0 got %d", affected)
	}

	if err := repo.RestoreStock(product.ID, 2); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 9 {
		t.Fatalf("stock want 9 got %d", got.Stock)
	}
}

func TestProductListFilterActiveAndSearch(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "linen-shirt", 5)
	createTestProduct(t, repo, "denim-jacket", 5)
	inactive := createTestProduct(t, repo, "hidden-shirt", 5)
	if err := db.Model(&models.Product{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("active want 2 got total=%d len=%d", total, len(products))
	}

	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "shirt"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("search total want 2 got %d", total)
	}
	_ = products
}

func TestProductVariantLookup(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "variant-product", 5)

	variants := []models.ProductVariant{
		{ProductID: product.ID, VariantID: "red", MainImage: "red.jpg"},
		{ProductID: product.ID, VariantID: "blue", MainImage: "blue.jpg"},
	}
	if err := db.Create(&variants).Error; err != nil {
		t.Fatalf("create variants failed: %v", err)
	}

	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if len(got.Variants) != 2 {
		t.Fatalf("variants want 2 got %d", len(got.Variants))
	}
	v := got.FindVariant("blue")
	if v == nil {
		t.Fatalf("variant blue not found")
	}
	if v.MainImage != "blue.jpg" {
		t.Fatalf("variant image want blue.jpg got %s", v.MainImage)
	}
	if got.FindVariant("green") != nil {
		t.Fatalf("unknown variant should be nil")
	}
}
