package repository

import (
	"fmt"
	"testing"

	"github.com/cartloom/cartloom/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CartItem{}, &models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate cart tables failed: %v", err)
	}
	return NewCartRepository(db), db
}

func TestCartLineKeyedByVariantAndSize(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	lines := []models.CartItem{
		{UserID: 1, ProductID: 10, VariantID: "red", Size: "M", Quantity: 1},
		{UserID: 1, ProductID: 10, VariantID: "red", Size: "L", Quantity: 2},
		{UserID: 1, ProductID: 10, VariantID: "blue", Size: "M", Quantity: 3},
	}
	for i := range lines {
		if err := repo.Create(&lines[i]); err != nil {
			t.Fatalf("create line %d failed: %v", i, err)
		}
	}

	got, err := repo.GetLine(1, 10, "red", "L")
	if err != nil {
		t.Fatalf("get line failed: %v", err)
	}
	if got == nil {
		t.Fatalf("line not found")
	}
	if got.Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", got.Quantity)
	}

	all, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("lines want 3 got %d", len(all))
	}
}

func TestCartUpdateQuantityAndDelete(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	line := &models.CartItem{UserID: 2, ProductID: 5, Quantity: 1}
	if err := repo.Create(line); err != nil {
		t.Fatalf("create line failed: %v", err)
	}
	if err := repo.UpdateQuantity(line.ID, 4); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	got, err := repo.GetLine(2, 5, "", "")
	if err != nil {
		t.Fatalf("get line failed: %v", err)
	}
	if got.Quantity != 4 {
		t.Fatalf("quantity want 4 got %d", got.Quantity)
	}

	if err := repo.DeleteLine(2, 5, "", ""); err != nil {
		t.Fatalf("delete line failed: %v", err)
	}
	got, err = repo.GetLine(2, 5, "", "")
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if got != nil {
		t.Fatalf("line should be gone after delete")
	}
}

func TestCartClearByUser(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	for i := uint(1); i <= 3; i++ {
		if err := repo.Create(&models.CartItem{UserID: 9, ProductID: i, Quantity: 1}); err != nil {
			t.Fatalf("create line failed: %v", err)
		}
	}
	if err := repo.Create(&models.CartItem{UserID: 8, ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("create other user line failed: %v", err)
	}

	if err := repo.ClearByUser(9); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	mine, err := repo.ListByUser(9)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("cart should be empty, got %d lines", len(mine))
	}
	theirs, err := repo.ListByUser(8)
	if err != nil {
		t.Fatalf("list other user failed: %v", err)
	}
	if len(theirs) != 1 {
		t.Fatalf("other user's cart should be untouched, got %d lines", len(theirs))
	}
}
