package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/queue"
	"github.com/cartloom/cartloom/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.ProductVariant{},
		&models.Order{}, &models.OrderItem{}, &models.OrderStatusLog{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		queueClient,
	)
	return svc, db
}

func seedOrder(t *testing.T, db *gorm.DB, status string, items ...models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:     fmt.Sprintf("ORD-%s-%s", t.Name(), status),
		UserID:      1,
		Status:      status,
		Currency:    "INR",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		ShippingAddress: models.ShippingAddress{
			Address: "12 Lake View", City: "Pune", Country: "India",
		},
		Items: items,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	return order
}

func TestTransitionStatusAppendsLog(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := seedOrder(t, db, constants.OrderStatusPending)

	got, err := svc.TransitionStatus(order.ID, constants.OrderStatusShipped, "ops")
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if got.Status != constants.OrderStatusShipped {
		t.Fatalf("status want Shipped got %s", got.Status)
	}

	logs, err := svc.StatusHistory(order.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("history want 1 entry got %d", len(logs))
	}
	if logs[0].FromStatus != constants.OrderStatusPending || logs[0].ToStatus != constants.OrderStatusShipped {
		t.Fatalf("log mismatch: %+v", logs[0])
	}
	if logs[0].ChangedBy != "ops" {
		t.Fatalf("changed_by want ops got %s", logs[0].ChangedBy)
	}
}

func TestTransitionStatusRejectsInvalidMoves(t *testing.T) {
	svc, db := setupOrderServiceTest(t)

	delivered := seedOrder(t, db, constants.OrderStatusDelivered)
	if _, err := svc.TransitionStatus(delivered.ID, constants.OrderStatusPending, "ops"); !errors.Is(err, ErrStatusTransitionInvalid) {
		t.Fatalf("Delivered->Pending want ErrStatusTransitionInvalid got %v", err)
	}
	if _, err := svc.TransitionStatus(delivered.ID, constants.OrderStatusCompleted, "ops"); err != nil {
		t.Fatalf("Delivered->Completed should be allowed: %v", err)
	}

	cancelled := seedOrder(t, db, constants.OrderStatusCancelled)
	if _, err := svc.TransitionStatus(cancelled.ID, constants.OrderStatusProcessing, "ops"); !errors.Is(err, ErrStatusTransitionInvalid) {
		t.Fatalf("Cancelled is terminal, got %v", err)
	}

	if _, err := svc.TransitionStatus(delivered.ID, "Refunded", "ops"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("unknown status want ErrInvalidStatus got %v", err)
	}
}

func TestTransitionStatusSameStatusIsNoOp(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := seedOrder(t, db, constants.OrderStatusProcessing)

	got, err := svc.TransitionStatus(order.ID, constants.OrderStatusProcessing, "ops")
	if err != nil {
		t.Fatalf("same-status transition failed: %v", err)
	}
	if got.Status != constants.OrderStatusProcessing {
		t.Fatalf("status want Processing got %s", got.Status)
	}
	logs, err := svc.StatusHistory(order.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("no-op should not log, got %d entries", len(logs))
	}
}

func TestTransitionCancelRestoresStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	product := &models.Product{
		CategoryID:  1,
		Slug:        "kettle",
		Name:        "Kettle",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		Stock:       7,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	order := seedOrder(t, db, constants.OrderStatusPending, models.OrderItem{
		ProductID:  product.ID,
		Name:       product.Name,
		UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
		Quantity:   3,
		TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(1500)),
	})

	if _, err := svc.TransitionStatus(order.ID, constants.OrderStatusCancelled, "ops"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 10 {
		t.Fatalf("stock want 10 got %d", got.Stock)
	}
}

func TestListAdminPaginationMath(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	for i := 0; i < 25; i++ {
		order := &models.Order{
			OrderNo:     fmt.Sprintf("ORD-PG-%02d", i),
			UserID:      1,
			Status:      constants.OrderStatusPending,
			Currency:    "INR",
			TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(int64(100 + i))),
			ShippingAddress: models.ShippingAddress{
				Address: "12 Lake View", City: "Pune", Country: "India",
			},
		}
		if err := db.Create(order).Error; err != nil {
			t.Fatalf("seed order %d failed: %v", i, err)
		}
	}

	list, err := svc.ListAdmin(AdminListInput{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if len(list.Orders) != 10 {
		t.Fatalf("page 2 want 10 orders got %d", len(list.Orders))
	}
	if list.CurrentPage != 2 || list.TotalPages != 3 || list.TotalOrders != 25 {
		t.Fatalf("pagination mismatch: page=%d pages=%d total=%d", list.CurrentPage, list.TotalPages, list.TotalOrders)
	}

	if _, err := svc.ListAdmin(AdminListInput{Status: "Refunded"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bad status filter want ErrInvalidStatus got %v", err)
	}
}
