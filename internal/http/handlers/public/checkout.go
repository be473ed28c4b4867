package public

import (
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CheckoutItemRequest is one order line of the checkout submission. Prices
// are the storefront's snapshot; the declared total still has to add up.
type CheckoutItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	VariantID string          `json:"variant_id"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// ShippingAddressRequest is the delivery address payload.
type ShippingAddressRequest struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// CreateCheckoutSessionRequest is the checkout submission.
type CreateCheckoutSessionRequest struct {
	Items           []CheckoutItemRequest  `json:"items" binding:"required"`
	Total           decimal.Decimal        `json:"total" binding:"required"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address" binding:"required"`
}

// CreateCheckoutSession creates a Pending order and attaches a payment
// session: a hosted checkout redirect for card, a local pseudo-session for
// cash on delivery.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	items := make([]service.CheckoutItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItemInput{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	result, err := h.CheckoutService.CreateSession(c.Request.Context(), service.CreateSessionInput{
		UserID:        uid,
		Items:         items,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		ShippingAddress: models.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
			Phone:      req.ShippingAddress.Phone,
		},
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
		return
	}

	response.Success(c, gin.H{
		"session_id": result.SessionID,
		"url":        result.URL,
		"order_no":   result.Order.OrderNo,
	})
}
