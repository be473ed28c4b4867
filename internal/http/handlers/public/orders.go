package public

import (
	"strings"

	handlershared "github.com/cartloom/cartloom/internal/http/handlers/shared"
	"github.com/cartloom/cartloom/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetOrderBySession resolves an order by its payment session handle,
// reconciling the provider's view of the payment first. Cash-on-delivery
// pseudo-sessions resolve locally.
func (h *Handler) GetOrderBySession(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("sessionId"))
	order, err := h.CheckoutService.ReconcileSession(c.Request.Context(), sessionID)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "order lookup failed")
		return
	}
	response.Success(c, order)
}

// ListUserOrders lists a user's orders, newest first. Only the owner or an
// admin may read them.
func (h *Handler) ListUserOrders(c *gin.Context) {
	ownerID, ok := parseUintParam(c, "userId")
	if !ok {
		return
	}
	if _, isAdmin := c.Get(handlershared.ContextKeyAdminID); !isAdmin {
		uid, ok := getUserID(c)
		if !ok {
			return
		}
		if uid != ownerID {
			response.Forbidden(c, "orders belong to another user")
			return
		}
	}

	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListByUser(ownerID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "order list failed")
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetOrder returns one of the authenticated user's orders with its status
// history.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderRepo.GetByIDAndUser(orderID, uid)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	if order == nil {
		respondError(c, response.CodeNotFound, "order not found", nil)
		return
	}
	response.Success(c, order)
}
