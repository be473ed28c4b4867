package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.OrderStatusLog{}, &models.Review{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewOrderRepository(db),
	)
	return svc, db
}

func seedPurchase(t *testing.T, db *gorm.DB, userID uint, productIDs ...uint) *models.Order {
	t.Helper()
	items := make([]models.OrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		items = append(items, models.OrderItem{
			ProductID:  id,
			Name:       fmt.Sprintf("Product %d", id),
			UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			Quantity:   1,
			TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		})
	}
	order := &models.Order{
		OrderNo:     fmt.Sprintf("ORD-%s-%d", t.Name(), userID),
		UserID:      userID,
		Status:      constants.OrderStatusDelivered,
		Currency:    "INR",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(int64(100 * len(items)))),
		ShippingAddress: models.ShippingAddress{
			Address: "5 Temple Street", City: "Chennai", Country: "India",
		},
		Items: items,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	return order
}

func TestReviewCreateRequiresPurchase(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	order := seedPurchase(t, db, 1, 10)

	// Product 99 is not on the order.
	_, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, ProductID: 99, Rating: 4})
	if !errors.Is(err, ErrReviewNotEligible) {
		t.Fatalf("want ErrReviewNotEligible got %v", err)
	}

	// Another user's order is invisible.
	_, err = svc.Create(CreateReviewInput{UserID: 2, OrderID: order.ID, ProductID: 10, Rating: 4})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}

	review, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, ProductID: 10, Rating: 4, Comment: "  solid build  "})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if review.Comment != "solid build" {
		t.Fatalf("comment want trimmed got %q", review.Comment)
	}
}

func TestReviewCreateOncePerOrderProduct(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	order := seedPurchase(t, db, 1, 10)

	if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, ProductID: 10, Rating: 5}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, ProductID: 10, Rating: 3}); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("want ErrReviewExists got %v", err)
	}
}

func TestReviewRatingBounds(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	order := seedPurchase(t, db, 1, 10)

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, ProductID: 10, Rating: rating}); !errors.Is(err, ErrRatingOutOfRange) {
			t.Fatalf("rating %d want ErrRatingOutOfRange got %v", rating, err)
		}
	}
}

func TestReviewAuthorOnlyEditAndDelete(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	order := seedPurchase(t, db, 1, 10)

	review, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: order.ID, ProductID: 10, Rating: 3})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(2, review.ID, 5, "not mine"); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("foreign edit want ErrReviewNotFound got %v", err)
	}
	updated, err := svc.Update(1, review.ID, 5, "improved after a week")
	if err != nil {
		t.Fatalf("author edit failed: %v", err)
	}
	if updated.Rating != 5 || updated.Comment != "improved after a week" {
		t.Fatalf("update mismatch: %+v", updated)
	}

	if err := svc.Delete(2, review.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("foreign delete want ErrReviewNotFound got %v", err)
	}
	if err := svc.Delete(1, review.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("review should be gone, got %d", count)
	}
}

func TestReviewListByProductAverages(t *testing.T) {
	svc, db := setupReviewServiceTest(t)
	first := seedPurchase(t, db, 1, 10)
	second := seedPurchase(t, db, 2, 10)

	if _, err := svc.Create(CreateReviewInput{UserID: 1, OrderID: first.ID, ProductID: 10, Rating: 5}); err != nil {
		t.Fatalf("review one failed: %v", err)
	}
	if _, err := svc.Create(CreateReviewInput{UserID: 2, OrderID: second.ID, ProductID: 10, Rating: 2}); err != nil {
		t.Fatalf("review two failed: %v", err)
	}

	page, err := svc.ListByProduct(10, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 2 || len(page.Reviews) != 2 {
		t.Fatalf("want 2 reviews got total=%d len=%d", page.Total, len(page.Reviews))
	}
	if page.AverageRating != 3.5 {
		t.Fatalf("average want 3.5 got %v", page.AverageRating)
	}
}
