package models

import (
	"time"
)

// OrderStatusLog is one entry in an order's append-only status history.
// A row is written for every transition after the order is created; the
// initial status has no log entry.
type OrderStatusLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"index;not null" json:"order_id"`
	FromStatus string    `gorm:"not null" json:"from_status"`
	ToStatus   string    `gorm:"not null" json:"to_status"`
	ChangedBy  string    `gorm:"type:varchar(100)" json:"changed_by,omitempty"` // admin username or "system"
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (OrderStatusLog) TableName() string {
	return "order_status_logs"
}
