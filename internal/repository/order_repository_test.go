package repository

import (
	"fmt"
	"testing"

	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.OrderStatusLog{}, &models.User{}); err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo string, userID uint, status string, total int64) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:  orderNo,
		UserID:   userID,
		Status:   status,
		Currency: constants.SiteCurrencyDefault,
		TotalAmount: models.NewMoneyFromDecimal(
			decimal.NewFromInt(total),
		),
		Payment:         models.PaymentDescriptor{Kind: constants.PaymentKindMethod, Method: constants.PaymentMethodCOD},
		ShippingAddress: models.ShippingAddress{Address: "1 Test Lane"},
	}
	items := []models.OrderItem{{
		ProductID:  1,
		Name:       "Test Product",
		UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
		Quantity:   1,
		TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(total)),
	}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderCreateAndGetBySessionID(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)

	order := createTestOrder(t, repo, "ORD-1001", 7, constants.OrderStatusPending, 100)
	session := "cs_test_abc123"
	if err := repo.UpdateStatus(order.ID, constants.OrderStatusPending, map[string]interface{}{"session_id": session}); err != nil {
		t.Fatalf("set session failed: %v", err)
	}

	got, err := repo.GetBySessionID(session)
	if err != nil {
		t.Fatalf("get by session failed: %v", err)
	}
	if got == nil {
		t.Fatalf("order not found by session")
	}
	if got.OrderNo != "ORD-1001" {
		t.Fatalf("order no want ORD-1001 got %s", got.OrderNo)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(got.Items))
	}

	missing, err := repo.GetBySessionID("cs_test_missing")
	if err != nil {
		t.Fatalf("get missing session failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing session should return nil order")
	}
}

func TestOrderStatusLogAppendOrder(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := createTestOrder(t, repo, "ORD-2001", 3, constants.OrderStatusPending, 50)

	logs, err := repo.ListStatusLogs(order.ID)
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("new order should have empty history, got %d entries", len(logs))
	}

	transitions := [][2]string{
		{constants.OrderStatusPending, constants.OrderStatusProcessing},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered},
	}
	for _, tr := range transitions {
		if err := repo.AppendStatusLog(&models.OrderStatusLog{
			OrderID:    order.ID,
			FromStatus: tr[0],
			ToStatus:   tr[1],
			ChangedBy:  "admin",
		}); err != nil {
			t.Fatalf("append log failed: %v", err)
		}
	}

	logs, err = repo.ListStatusLogs(order.ID)
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("logs want 3 got %d", len(logs))
	}
	for i, tr := range transitions {
		if logs[i].FromStatus != tr[0] || logs[i].ToStatus != tr[1] {
			t.Fatalf("log %d want %s->%s got %s->%s", i, tr[0], tr[1], logs[i].FromStatus, logs[i].ToStatus)
		}
	}
}

func TestOrderListAdminPagination(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	for i := 1; i <= 25; i++ {
		createTestOrder(t, repo, fmt.Sprintf("ORD-%04d", i), 1, constants.OrderStatusPending, int64(i))
	}

	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 2, PageSize: 10, SortBy: constants.OrderSortByCreatedAt, SortDesc: true})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 25 {
		t.Fatalf("total want 25 got %d", total)
	}
	if len(orders) != 10 {
		t.Fatalf("page size want 10 got %d", len(orders))
	}
}

func TestOrderListAdminFilterAndSearch(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createTestOrder(t, repo, "ORD-A1", 1, constants.OrderStatusPending, 10)
	createTestOrder(t, repo, "ORD-A2", 1, constants.OrderStatusShipped, 20)
	createTestOrder(t, repo, "ORD-B1", 2, constants.OrderStatusShipped, 30)

	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Status: constants.OrderStatusShipped})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("shipped want 2 got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Search: "ORD-B"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("search want 1 got total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNo != "ORD-B1" {
		t.Fatalf("search hit want ORD-B1 got %s", orders[0].OrderNo)
	}
}

func TestOrderListAdminSearchByOwnerEmail(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	buyer := models.User{Email: "priya@example.com", PasswordHash: "x"}
	other := models.User{Email: "rahul@example.com", PasswordHash: "x"}
	if err := db.Create(&buyer).Error; err != nil {
		t.Fatalf("seed buyer failed: %v", err)
	}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed other user failed: %v", err)
	}
	createTestOrder(t, repo, "ORD-E1", buyer.ID, constants.OrderStatusPending, 10)
	createTestOrder(t, repo, "ORD-E2", other.ID, constants.OrderStatusPending, 20)

	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Search: "priya@example"})
	if err != nil {
		t.Fatalf("search by email failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("email search want 1 got total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNo != "ORD-E1" {
		t.Fatalf("email search hit want ORD-E1 got %s", orders[0].OrderNo)
	}

	// Order numbers still match with the join in place.
	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Search: "ORD-E2"})
	if err != nil {
		t.Fatalf("search by order no failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].OrderNo != "ORD-E2" {
		t.Fatalf("order no search want ORD-E2 got total=%d len=%d", total, len(orders))
	}
}

func TestOrderListAdminSortByTotal(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createTestOrder(t, repo, "ORD-S1", 1, constants.OrderStatusPending, 30)
	createTestOrder(t, repo, "ORD-S2", 1, constants.OrderStatusPending, 10)
	createTestOrder(t, repo, "ORD-S3", 1, constants.OrderStatusPending, 20)

	orders, _, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, SortBy: constants.OrderSortByTotal})
	if err != nil {
		t.Fatalf("list sorted failed: %v", err)
	}
	want := []string{"ORD-S2", "ORD-S3", "ORD-S1"}
	for i, no := range want {
		if orders[i].OrderNo != no {
			t.Fatalf("sorted order %d want %s got %s", i, no, orders[i].OrderNo)
		}
	}
}

func TestOrderListAdminStablePagingOnEqualSortKeys(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	// Every order shares the same status, so the sort key alone cannot
	// order them and paging falls back to the id tie-break.
	for i := 1; i <= 6; i++ {
		createTestOrder(t, repo, fmt.Sprintf("ORD-T%02d", i), 1, constants.OrderStatusPending, 10)
	}

	seen := map[string]bool{}
	for page := 1; page <= 2; page++ {
		orders, total, err := repo.ListAdmin(OrderListFilter{
			Page: page, PageSize: 3, SortBy: constants.OrderSortByStatus,
		})
		if err != nil {
			t.Fatalf("page %d failed: %v", page, err)
		}
		if total != 6 {
			t.Fatalf("page %d total want 6 got %d", page, total)
		}
		if len(orders) != 3 {
			t.Fatalf("page %d size want 3 got %d", page, len(orders))
		}
		for _, order := range orders {
			if seen[order.OrderNo] {
				t.Fatalf("order %s appeared on more than one page", order.OrderNo)
			}
			seen[order.OrderNo] = true
		}
	}
	if len(seen) != 6 {
		t.Fatalf("pages should cover all 6 orders, got %d", len(seen))
	}
}

func TestOrderPaymentDescriptorRoundTrip(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	order := &models.Order{
		OrderNo:         "ORD-PAY1",
		UserID:          1,
		Status:          constants.OrderStatusPending,
		Currency:        constants.SiteCurrencyDefault,
		TotalAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(42)),
		Payment:         models.PaymentDescriptor{Kind: constants.PaymentKindCard, Brand: "visa", Last4: "4242"},
		ShippingAddress: models.ShippingAddress{Address: "2 Test Lane", City: "Pune"},
	}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Payment.Kind != constants.PaymentKindCard {
		t.Fatalf("payment kind want card got %s", got.Payment.Kind)
	}
	if got.Payment.Brand != "visa" || got.Payment.Last4 != "4242" {
		t.Fatalf("card summary mismatch: %+v", got.Payment)
	}
	if got.ShippingAddress.City != "Pune" {
		t.Fatalf("shipping city want Pune got %s", got.ShippingAddress.City)
	}
}
