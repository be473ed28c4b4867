package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cartloom/cartloom/internal/cache"
	"github.com/cartloom/cartloom/internal/constants"
	"github.com/cartloom/cartloom/internal/logger"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/payment/cod"
	"github.com/cartloom/cartloom/internal/payment/stripe"
	"github.com/cartloom/cartloom/internal/queue"
	"github.com/cartloom/cartloom/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService coordinates order creation with the payment provider.
// Orders are always created Pending with stock already taken; the payment
// session is attached afterwards so a provider outage never loses the order.
type CheckoutService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
	stripeCfg   *stripe.Config
	currency    string
	// advanceOnPayment moves the order to Processing when reconciliation
	// confirms payment; off by default, settled orders stay Pending until
	// an operator picks them up.
	advanceOnPayment bool
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client, stripeCfg *stripe.Config, currency string, advanceOnPayment bool) *CheckoutService {
	if strings.TrimSpace(currency) == "" {
		currency = constants.SiteCurrencyDefault
	}
	return &CheckoutService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		cartRepo:         cartRepo,
		queueClient:      queueClient,
		stripeCfg:        stripeCfg,
		currency:         strings.ToUpper(strings.TrimSpace(currency)),
		advanceOnPayment: advanceOnPayment,
	}
}

// CheckoutItemInput is one order line as submitted at checkout. The unit
// price is the storefront's snapshot and is stored as-is; the declared total
// must still add up.
type CheckoutItemInput struct {
	ProductID uint
	VariantID string
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateSessionInput is the checkout submission.
type CreateSessionInput struct {
	UserID          uint
	Items           []CheckoutItemInput
	Total           decimal.Decimal
	PaymentMethod   string // online / cod
	ShippingAddress models.ShippingAddress
	ClientIP        string
}

// CreateSessionResult is the checkout outcome handed back to the storefront.
type CreateSessionResult struct {
	SessionID string
	URL       string // provider redirect, empty for cash on delivery
	Order     *models.Order
}

// CreateSession validates the submission, creates a Pending order with stock
// taken, then attaches a payment session (real for card, pseudo for cash on
// delivery).
func (s *CheckoutService) CreateSession(ctx context.Context, input CreateSessionInput) (*CreateSessionResult, error) {
	order, err := s.createPendingOrder(input)
	if err != nil {
		return nil, err
	}

	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method == constants.PaymentMethodCOD {
		sessionID := cod.NewSessionID(time.Now())
		if err := s.attachSession(order.ID, sessionID); err != nil {
			return nil, err
		}
		return &CreateSessionResult{SessionID: sessionID, Order: order}, nil
	}

	items := make([]stripe.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, stripe.LineItem{
			Name:      item.Name,
			UnitPrice: item.UnitPrice.Decimal,
			Quantity:  item.Quantity,
		})
	}
	session, err := stripe.CreateSession(ctx, s.stripeCfg, stripe.CreateSessionInput{
		OrderNo:  order.OrderNo,
		Currency: s.currency,
		Items:    items,
		Metadata: map[string]string{
			"order_no": order.OrderNo,
			"order":    encodeSessionOrder(order),
		},
	})
	if err != nil {
		logger.Errorw("checkout_create_session_failed", "order_no", order.OrderNo, "error", err)
		if errors.Is(err, stripe.ErrAmountOutOfRange) {
			return nil, ErrAmountOutOfRange
		}
		return nil, err
	}
	if err := s.attachSession(order.ID, session.SessionID); err != nil {
		return nil, err
	}
	return &CreateSessionResult{SessionID: session.SessionID, URL: session.URL, Order: order}, nil
}

func (s *CheckoutService) createPendingOrder(input CreateSessionInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrValidation
	}
	if len(input.Items) == 0 {
		return nil, ErrOrderEmpty
	}
	if strings.TrimSpace(input.ShippingAddress.Address) == "" {
		return nil, ErrValidation
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method != constants.PaymentMethodOnline && method != constants.PaymentMethodCOD {
		return nil, ErrValidation
	}

	declared := decimal.Zero
	for i, item := range input.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, &OrderItemError{Index: i, Err: ErrValidation}
		}
		if item.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, &OrderItemError{Index: i, Err: ErrValidation}
		}
		declared = declared.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !declared.Equal(input.Total) {
		return nil, ErrOrderTotalMismatch
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(now),
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		Currency:        s.currency,
		TotalAmount:     models.NewMoneyFromDecimal(input.Total),
		ShippingAddress: input.ShippingAddress,
		ClientIP:        input.ClientIP,
	}
	if method == constants.PaymentMethodCOD {
		order.Payment = models.PaymentDescriptor{Kind: constants.PaymentKindMethod, Method: constants.PaymentMethodCOD}
	} else {
		order.Payment = models.PaymentDescriptor{Kind: constants.PaymentKindLabel, Label: "Stripe"}
	}

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		txProducts := s.productRepo.WithTx(tx)
		txOrders := s.orderRepo.WithTx(tx)

		ids := make([]uint, 0, len(input.Items))
		for _, item := range input.Items {
			ids = append(ids, item.ProductID)
		}
		products, err := txProducts.ListByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]*models.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		orderItems := make([]models.OrderItem, 0, len(input.Items))
		for i, item := range input.Items {
			product := byID[item.ProductID]
			if product == nil {
				return &OrderItemError{Index: i, Err: ErrProductNotFound}
			}
			if !product.IsActive {
				return &OrderItemError{Index: i, Err: ErrProductNotAvailable}
			}
			image := firstImage(product)
			variantID := strings.TrimSpace(item.VariantID)
			if variantID != "" {
				variant := product.FindVariant(variantID)
				if variant == nil {
					return &OrderItemError{Index: i, Err: ErrVariantNotFound}
				}
				if variant.MainImage != "" {
					image = variant.MainImage
				}
			}

			affected, err := txProducts.DecrementStock(product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &OrderItemError{Index: i, Err: ErrInsufficientStock}
			}

			subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			orderItems = append(orderItems, models.OrderItem{
				ProductID:  product.ID,
				Name:       product.Name,
				VariantID:  variantID,
				Size:       item.Size,
				Image:      image,
				UnitPrice:  models.NewMoneyFromDecimal(item.UnitPrice),
				Quantity:   item.Quantity,
				TotalPrice: models.NewMoneyFromDecimal(subtotal),
			})
		}

		if err := txOrders.Create(order, orderItems); err != nil {
			return err
		}
		order.Items = orderItems

		return s.cartRepo.WithTx(tx).ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("order_created", "order_no", order.OrderNo, "user_id", order.UserID, "total", order.TotalAmount.String())
	return order, nil
}

func (s *CheckoutService) attachSession(orderID uint, sessionID string) error {
	return s.orderRepo.UpdateStatus(orderID, constants.OrderStatusPending, map[string]interface{}{
		"session_id": sessionID,
	})
}

// ReconcileSession looks an order up by its session handle and, for provider
// sessions, folds the provider's view of the payment back into the order.
// Pseudo sessions have no provider to consult and return the order as stored.
func (s *CheckoutService) ReconcileSession(ctx context.Context, sessionID string) (*models.Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrValidation
	}
	order, err := s.orderRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		if cod.IsPseudoSession(sessionID) {
			return nil, ErrOrderNotFound
		}
		// The order row can be missing when attaching the session failed
		// after the provider call. A paid session still carries the full
		// order payload in its metadata, so rebuild from that.
		return s.rebuildFromSession(ctx, sessionID)
	}
	if cod.IsPseudoSession(sessionID) {
		return order, nil
	}

	lockKey := "checkout:reconcile:" + sessionID
	locked, err := cache.TryLock(ctx, lockKey, 30*time.Second)
	switch {
	case err != nil:
		// A failing lock store must not stop us from consulting the
		// provider; reconcile unguarded, same as with the cache disabled.
		logger.Warnw("reconcile_lock_failed", "session_id", sessionID, "error", err)
	case !locked:
		// Another reconcile is in flight; serve the stored state.
		return order, nil
	default:
		defer func() { _ = cache.Unlock(ctx, lockKey) }()
	}

	session, err := stripe.QuerySession(ctx, s.stripeCfg, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid() {
		return nil, ErrPaymentIncomplete
	}

	updates := map[string]interface{}{}
	if order.PaidAt == nil {
		paidAt := time.Now()
		if session.PaidAt != nil {
			paidAt = *session.PaidAt
		}
		updates["paid_at"] = paidAt
		descriptor := models.PaymentDescriptor{Kind: constants.PaymentKindLabel, Label: "Card"}
		if session.CardBrand != "" || session.CardLast4 != "" {
			descriptor = models.PaymentDescriptor{
				Kind:  constants.PaymentKindCard,
				Brand: session.CardBrand,
				Last4: session.CardLast4,
			}
		}
		updates["payment"] = descriptor
	}

	status := order.Status
	if s.advanceOnPayment && order.Status == constants.OrderStatusPending {
		status = constants.OrderStatusProcessing
	}
	if err := s.orderRepo.UpdateStatus(order.ID, status, updates); err != nil {
		return nil, err
	}
	if status != order.Status {
		if err := s.orderRepo.AppendStatusLog(&models.OrderStatusLog{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   status,
			ChangedBy:  "system",
		}); err != nil {
			return nil, err
		}
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   status,
		}); err != nil {
			logger.Warnw("status_email_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}
	logger.Infow("session_reconciled", "order_no", order.OrderNo, "session_id", sessionID, "status", status)

	return s.orderRepo.GetByID(order.ID)
}

// sessionOrderPayload is the order snapshot carried in the provider session's
// metadata so a paid session can be reconciled even when the local order row
// went missing.
type sessionOrderPayload struct {
	OrderNo  string                    `json:"order_no"`
	UserID   uint                      `json:"user_id"`
	Currency string                    `json:"currency"`
	Total    string                    `json:"total"`
	Address  models.ShippingAddress    `json:"address"`
	Items    []sessionOrderItemPayload `json:"items"`
}

type sessionOrderItemPayload struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	VariantID string `json:"variant_id,omitempty"`
	Size      string `json:"size,omitempty"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func encodeSessionOrder(order *models.Order) string {
	payload := sessionOrderPayload{
		OrderNo:  order.OrderNo,
		UserID:   order.UserID,
		Currency: order.Currency,
		Total:    order.TotalAmount.String(),
		Address:  order.ShippingAddress,
	}
	for _, item := range order.Items {
		payload.Items = append(payload.Items, sessionOrderItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			VariantID: item.VariantID,
			Size:      item.Size,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
		})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(raw)
}

// rebuildFromSession recreates a lost order from a paid session's metadata.
// Stock was already taken when the order was first created, so only the
// order rows are recreated.
func (s *CheckoutService) rebuildFromSession(ctx context.Context, sessionID string) (*models.Order, error) {
	session, err := stripe.QuerySession(ctx, s.stripeCfg, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid() {
		return nil, ErrOrderNotFound
	}
	raw := session.Metadata["order"]
	if raw == "" {
		return nil, ErrOrderNotFound
	}
	var payload sessionOrderPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Errorw("session_metadata_decode_failed", "session_id", sessionID, "error", err)
		return nil, ErrOrderNotFound
	}
	total, err := decimal.NewFromString(payload.Total)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	paidAt := time.Now()
	if session.PaidAt != nil {
		paidAt = *session.PaidAt
	}
	descriptor := models.PaymentDescriptor{Kind: constants.PaymentKindLabel, Label: "Card"}
	if session.CardBrand != "" || session.CardLast4 != "" {
		descriptor = models.PaymentDescriptor{
			Kind:  constants.PaymentKindCard,
			Brand: session.CardBrand,
			Last4: session.CardLast4,
		}
	}

	order := &models.Order{
		OrderNo:         payload.OrderNo,
		UserID:          payload.UserID,
		Status:          constants.OrderStatusPending,
		Currency:        payload.Currency,
		TotalAmount:     models.NewMoneyFromDecimal(total),
		Payment:         descriptor,
		ShippingAddress: payload.Address,
		SessionID:       &sessionID,
		PaidAt:          &paidAt,
	}
	items := make([]models.OrderItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return nil, ErrOrderNotFound
		}
		items = append(items, models.OrderItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			VariantID:  item.VariantID,
			Size:       item.Size,
			Image:      item.Image,
			Quantity:   item.Quantity,
			UnitPrice:  models.NewMoneyFromDecimal(unitPrice),
			TotalPrice: models.NewMoneyFromDecimal(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}
	if err := s.orderRepo.Create(order, items); err != nil {
		return nil, err
	}
	logger.Infow("order_rebuilt_from_session", "order_no", order.OrderNo, "session_id", sessionID)
	return s.orderRepo.GetByID(order.ID)
}

func firstImage(product *models.Product) string {
	if product == nil || len(product.Images) == 0 {
		return ""
	}
	return product.Images[0]
}

// generateOrderNo mints an order number from the creation instant plus a
// random suffix to dodge same-second collisions.
func generateOrderNo(now time.Time) string {
	suffix, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		suffix = big.NewInt(now.UnixNano() % 1_000_000)
	}
	return fmt.Sprintf("ORD%s%06d", now.Format("20060102150405"), suffix.Int64())
}
