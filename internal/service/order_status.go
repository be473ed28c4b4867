package service

import (
	"github.com/cartloom/cartloom/internal/constants"
)

// allowedTransitions guards the order status machine. Cancelled and
// Completed are terminal; Completed is only reachable from Delivered.
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusShipped:    true,
		constants.OrderStatusDelivered:  true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCompleted: true,
	},
}

// IsValidOrderStatus reports whether status is one of the known values.
func IsValidOrderStatus(status string) bool {
	for _, s := range constants.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransition reports whether from -> to is an allowed move.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}
