package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/provider"
	"github.com/cartloom/cartloom/internal/queue"
	"github.com/cartloom/cartloom/internal/repository"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Order{}, &models.OrderItem{}, &models.OrderStatusLog{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	container := &provider.Container{
		OrderRepo:    repository.NewOrderRepository(db),
		UserRepo:     repository.NewUserRepository(db),
		EmailService: service.NewEmailService(&config.EmailConfig{Enabled: false}),
	}
	return NewConsumer(container), db
}

func statusEmailTask(t *testing.T, payload queue.OrderStatusEmailPayload) *asynq.Task {
	t.Helper()
	task, err := queue.NewOrderStatusEmailTask(payload)
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandleOrderStatusEmailSkipsDisabledMailer(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	user := models.User{Email: "buyer@example.com", PasswordHash: "x", Status: constants.UserStatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	order := models.Order{
		OrderNo:     "ORD-WORKER-1",
		UserID:      user.ID,
		Currency:    "INR",
		TotalAmount: models.Money{Decimal: decimal.NewFromInt(500)},
		Status:      constants.OrderStatusShipped,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	task := statusEmailTask(t, queue.OrderStatusEmailPayload{
		OrderID:    order.ID,
		FromStatus: constants.OrderStatusProcessing,
		ToStatus:   constants.OrderStatusShipped,
	})
	// A disabled mailer must not fail the task, so asynq does not retry it.
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected nil for disabled mailer, got %v", err)
	}
}

func TestHandleOrderStatusEmailIgnoresMissingOrder(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := statusEmailTask(t, queue.OrderStatusEmailPayload{OrderID: 424242})
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected nil for missing order, got %v", err)
	}
}

func TestHandleOrderStatusEmailRejectsBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte("{not-json"))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err == nil {
		t.Fatal("expected error for malformed payload")
	}

	// A zero order ID decodes fine and is skipped without retry.
	body, err := json.Marshal(queue.OrderStatusEmailPayload{})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	if err := consumer.handleOrderStatusEmail(context.Background(), asynq.NewTask(queue.TaskOrderStatusEmail, body)); err != nil {
		t.Fatalf("expected nil for zero order id, got %v", err)
	}
}
