package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cartloom/cartloom/internal/cache"
	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/queue"
	"github.com/cartloom/cartloom/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCheckoutServiceTest(t *testing.T) (*CheckoutService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{}, &models.ProductVariant{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{}, &models.OrderStatusLog{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	svc := NewCheckoutService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		queueClient,
		nil,
		"INR",
		false,
	)
	return svc, db
}

func seedCheckoutProduct(t *testing.T, db *gorm.DB, slug string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  1,
		Slug:        slug,
		Name:        "Product " + slug,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:       stock,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func checkoutAddress() models.ShippingAddress {
	return models.ShippingAddress{Address: "42 Harbor Road", City: "Mumbai", Country: "India"}
}

func TestCreateSessionCODCreatesPendingOrder(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	product := seedCheckoutProduct(t, db, "tote-bag", 300, 10)

	// Pre-existing cart contents must be cleared by checkout.
	if err := db.Create(&models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 2}).Error; err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}

	result, err := svc.CreateSession(context.Background(), CreateSessionInput{
		UserID: 1,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(300)},
		},
		Total:           decimal.NewFromInt(600),
		PaymentMethod:   constants.PaymentMethodCOD,
		ShippingAddress: checkoutAddress(),
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if !strings.HasPrefix(result.SessionID, constants.CODSessionPrefix) {
		t.Fatalf("cod session id want %s prefix got %s", constants.CODSessionPrefix, result.SessionID)
	}
	if result.Order.Status != constants.OrderStatusPending {
		t.Fatalf("status want Pending got %s", result.Order.Status)
	}
	if result.Order.Payment.Kind != constants.PaymentKindMethod || result.Order.Payment.Method != constants.PaymentMethodCOD {
		t.Fatalf("payment descriptor mismatch: %+v", result.Order.Payment)
	}

	var logs []models.OrderStatusLog
	if err := db.Where("order_id = ?", result.Order.ID).Find(&logs).Error; err != nil {
		t.Fatalf("load logs failed: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("new order history want empty got %d", len(logs))
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 8 {
		t.Fatalf("stock want 8 got %d", got.Stock)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("cart should be cleared, got %d lines", cartCount)
	}
}

func TestCreateSessionRejectsTotalMismatch(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	product := seedCheckoutProduct(t, db, "mug", 120, 5)

	_, err := svc.CreateSession(context.Background(), CreateSessionInput{
		UserID: 1,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(120)},
		},
		Total:           decimal.NewFromInt(200),
		PaymentMethod:   constants.PaymentMethodCOD,
		ShippingAddress: checkoutAddress(),
	})
	if !errors.Is(err, ErrOrderTotalMismatch) {
		t.Fatalf("want ErrOrderTotalMismatch got %v", err)
	}
}

func TestCreateSessionInsufficientStockRollsBack(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	first := seedCheckoutProduct(t, db, "scarf", 100, 10)
	second := seedCheckoutProduct(t, db, "belt", 50, 1)

	_, err := svc.CreateSession(context.Background(), CreateSessionInput{
		UserID: 1,
		Items: []CheckoutItemInput{
			{ProductID: first.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{ProductID: second.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(50)},
		},
		Total:           decimal.NewFromInt(350),
		PaymentMethod:   constants.PaymentMethodCOD,
		ShippingAddress: checkoutAddress(),
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	var itemErr *OrderItemError
	if !errors.As(err, &itemErr) {
		t.Fatalf("want OrderItemError got %T", err)
	}
	if itemErr.Index != 1 {
		t.Fatalf("offending index want 1 got %d", itemErr.Index)
	}

	// The whole transaction rolls back, including the first line's decrement.
	var got models.Product
	if err := db.First(&got, first.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 10 {
		t.Fatalf("first product stock want 10 got %d", got.Stock)
	}
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("no order should be created, got %d", orderCount)
	}
}

func TestCreateSessionBadItemIndex(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	product := seedCheckoutProduct(t, db, "cap", 80, 5)

	_, err := svc.CreateSession(context.Background(), CreateSessionInput{
		UserID: 1,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(80)},
			{ProductID: product.ID, Quantity: 0, UnitPrice: decimal.NewFromInt(80)},
		},
		Total:           decimal.NewFromInt(80),
		PaymentMethod:   constants.PaymentMethodCOD,
		ShippingAddress: checkoutAddress(),
	})
	var itemErr *OrderItemError
	if !errors.As(err, &itemErr) {
		t.Fatalf("want OrderItemError got %v", err)
	}
	if itemErr.Index != 1 {
		t.Fatalf("offending index want 1 got %d", itemErr.Index)
	}
}

func TestCreateSessionRejectsUnknownVariant(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	product := seedCheckoutProduct(t, db, "jacket", 900, 5)
	if err := db.Create(&models.ProductVariant{ProductID: product.ID, VariantID: "navy"}).Error; err != nil {
		t.Fatalf("seed variant failed: %v", err)
	}

	_, err := svc.CreateSession(context.Background(), CreateSessionInput{
		UserID: 1,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, VariantID: "olive", Quantity: 1, UnitPrice: decimal.NewFromInt(900)},
		},
		Total:           decimal.NewFromInt(900),
		PaymentMethod:   constants.PaymentMethodCOD,
		ShippingAddress: checkoutAddress(),
	})
	if !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("want ErrVariantNotFound got %v", err)
	}
}

func TestReconcileSessionCODReturnsStoredOrder(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	ctx := context.Background()
	product := seedCheckoutProduct(t, db, "notebook", 150, 3)

	result, err := svc.CreateSession(ctx, CreateSessionInput{
		UserID: 2,
		Items: []CheckoutItemInput{
			{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(150)},
		},
		Total:           decimal.NewFromInt(150),
		PaymentMethod:   constants.PaymentMethodCOD,
		ShippingAddress: checkoutAddress(),
	})
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	order, err := svc.ReconcileSession(ctx, result.SessionID)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("cod reconcile status want Pending got %s", order.Status)
	}
	if order.PaidAt != nil {
		t.Fatalf("cod order should not be marked paid")
	}
}

func TestReconcileSessionLockFailureStillConsultsProvider(t *testing.T) {
	svc, db := setupCheckoutServiceTest(t)
	ctx := context.Background()

	sessionID := "cs_test_lock_down"
	order := &models.Order{
		OrderNo:         "ORD-LOCK-1",
		UserID:          2,
		Status:          constants.OrderStatusPending,
		Currency:        "INR",
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(150)),
		ShippingAddress: checkoutAddress(),
		SessionID:       &sessionID,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	// Point the lock store at a closed port so SETNX fails. A lock error
	// must fall through to the provider, not serve the stored order the
	// way lock contention does. With no provider configured that lookup
	// surfaces as an error.
	if err := cache.InitRedis(&config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	t.Cleanup(func() { _ = cache.InitRedis(nil) })

	if _, err := svc.ReconcileSession(ctx, sessionID); err == nil {
		t.Fatalf("reconcile with failing lock store should reach the provider, got stored order")
	}
}

func TestReconcileSessionUnknownSession(t *testing.T) {
	svc, _ := setupCheckoutServiceTest(t)
	_, err := svc.ReconcileSession(context.Background(), "cod-999999")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}
