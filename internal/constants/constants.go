package constants

// Order status constants
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
	OrderStatusCompleted  = "Completed"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusCompleted,
}

// User account status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Payment method constants
const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"
)

// Payment descriptor kind constants
const (
	PaymentKindLabel  = "label"
	PaymentKindCard   = "card"
	PaymentKindMethod = "method"
)

// CODSessionPrefix marks locally generated cash-on-delivery pseudo-sessions.
const CODSessionPrefix = "cod-"

// Review rating bounds
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// Queue constants
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
)

// Cache defaults
const (
	RedisPrefixDefault = "cl"
)

// Currency constants
const (
	SiteCurrencyDefault = "INR"
)

// Admin order console sort keys
const (
	OrderSortByCreatedAt = "createdAt"
	OrderSortByTotal     = "total"
	OrderSortByStatus    = "status"
)
