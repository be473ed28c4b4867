package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/cartloom/cartloom/internal/http/handlers/shared"
	"github.com/cartloom/cartloom/internal/http/response"
	"github.com/cartloom/cartloom/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest is the status transition payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders serves the order console: status filter, free-text search over
// order number and owner email, sortable columns, paged.
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	list, err := h.OrderService.ListAdmin(service.AdminListInput{
		Page:     page,
		PageSize: limit,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
		SortBy:   strings.TrimSpace(c.Query("sortBy")),
		SortDesc: !strings.EqualFold(c.DefaultQuery("order", "desc"), "asc"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(c, response.CodeBadRequest, "unknown order status", nil)
		default:
			respondError(c, response.CodeInternal, "order list failed", err)
		}
		return
	}
	response.Success(c, list)
}

// GetOrder serves one order with items and status history.
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "order fetch failed", err)
		}
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus moves an order through the status machine.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	changedBy := handlershared.GetAdminName(c)
	if changedBy == "" {
		changedBy = "admin"
	}
	order, err := h.OrderService.TransitionStatus(orderID, req.Status, changedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(c, response.CodeBadRequest, "unknown order status", nil)
		case errors.Is(err, service.ErrStatusTransitionInvalid):
			respondError(c, response.CodeBadRequest, "status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "order update failed", err)
		}
		return
	}
	response.Success(c, order)
}

// GetOrderStatusHistory serves an order's append-only transition log.
func (h *Handler) GetOrderStatusHistory(c *gin.Context) {
	orderID, ok := parseUintParam(c, "orderId")
	if !ok {
		return
	}
	logs, err := h.OrderService.StatusHistory(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		default:
			respondError(c, response.CodeInternal, "history fetch failed", err)
		}
		return
	}
	response.Success(c, gin.H{"history": logs})
}
