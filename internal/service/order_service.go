package service

import (
	"strings"
	"time"

	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/logger"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/queue"
	"github.com/cartloom/cartloom/internal/repository"

	"gorm.io/gorm"
)

// OrderService owns order queries and the guarded status machine.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// GetByID fetches one order.
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	if id == 0 {
		return nil, ErrValidation
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser lists a user's orders, newest first.
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrValidation
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// AdminOrderList is the paged admin console result.
type AdminOrderList struct {
	Orders      []models.Order `json:"orders"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
	TotalOrders int64          `json:"total_orders"`
}

// AdminListInput filters and sorts the admin order console.
type AdminListInput struct {
	Page     int
	PageSize int
	Status   string
	Search   string
	SortBy   string
	SortDesc bool
}

// ListAdmin serves the back-office order console.
func (s *OrderService) ListAdmin(input AdminListInput) (*AdminOrderList, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 10
	}
	if input.Status != "" && !IsValidOrderStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	orders, total, err := s.orderRepo.ListAdmin(repository.OrderListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Status:   input.Status,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortDesc: input.SortDesc,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(input.PageSize) - 1) / int64(input.PageSize))
	return &AdminOrderList{
		Orders:      orders,
		CurrentPage: input.Page,
		TotalPages:  totalPages,
		TotalOrders: total,
	}, nil
}

// TransitionStatus moves an order through the status machine, appends the
// history entry and notifies the buyer. Cancelling gives the stock back.
func (s *OrderService) TransitionStatus(orderID uint, toStatus, changedBy string) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrValidation
	}
	toStatus = strings.TrimSpace(toStatus)
	if !IsValidOrderStatus(toStatus) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == toStatus {
		return order, nil
	}
	if !CanTransition(order.Status, toStatus) {
		return nil, ErrStatusTransitionInvalid
	}

	fromStatus := order.Status
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		txOrders := s.orderRepo.WithTx(tx)

		updates := map[string]interface{}{"updated_at": time.Now()}
		if err := txOrders.UpdateStatus(order.ID, toStatus, updates); err != nil {
			return err
		}
		if err := txOrders.AppendStatusLog(&models.OrderStatusLog{
			OrderID:    order.ID,
			FromStatus: fromStatus,
			ToStatus:   toStatus,
			ChangedBy:  changedBy,
		}); err != nil {
			return err
		}

		if toStatus == constants.OrderStatusCancelled {
			txProducts := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if err := txProducts.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID:    order.ID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
	}); err != nil {
		logger.Warnw("status_email_enqueue_failed", "order_id", order.ID, "error", err)
	}
	logger.Infow("order_status_changed", "order_no", order.OrderNo, "from", fromStatus, "to", toStatus, "by", changedBy)

	return s.orderRepo.GetByID(order.ID)
}

// StatusHistory returns the append-only transition log of an order.
func (s *OrderService) StatusHistory(orderID uint) ([]models.OrderStatusLog, error) {
	if orderID == 0 {
		return nil, ErrValidation
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.orderRepo.ListStatusLogs(orderID)
}
