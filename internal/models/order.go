package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PaymentDescriptor records how an order was (or will be) paid. Exactly one
// shape applies, chosen by Kind: a plain label ("label"), a card summary
// ("card") or a named method such as cash on delivery ("method"). Stored as a
// JSON column.
type PaymentDescriptor struct {
	Kind string `json:"kind"`

	// Kind == "label"
	Label string `json:"label,omitempty"`

	// Kind == "card"
	Brand string `json:"brand,omitempty"`
	Last4 string `json:"last4,omitempty"`

	// Kind == "method"
	Method string `json:"method,omitempty"`
}

// Value implements the driver.Valuer interface.
func (p PaymentDescriptor) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface.
func (p *PaymentDescriptor) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentDescriptor{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported type for PaymentDescriptor")
	}
}

// ShippingAddress is the destination captured at checkout, embedded in the
// order row. Only the street address is mandatory.
type ShippingAddress struct {
	Address    string `gorm:"column:ship_address;type:varchar(500);not null" json:"address"`
	City       string `gorm:"column:ship_city;type:varchar(100)" json:"city,omitempty"`
	PostalCode string `gorm:"column:ship_postal_code;type:varchar(20)" json:"postal_code,omitempty"`
	Country    string `gorm:"column:ship_country;type:varchar(100)" json:"country,omitempty"`
	Phone      string `gorm:"column:ship_phone;type:varchar(32)" json:"phone,omitempty"`
}

// Order is one placed order. The price fields are snapshots taken at
// checkout time and never re-derived from the catalog.
type Order struct {
	ID              uint              `gorm:"primarykey" json:"id"`
	OrderNo         string            `gorm:"uniqueIndex;not null" json:"order_no"`
	UserID          uint              `gorm:"index;not null" json:"user_id"`
	Status          string            `gorm:"index;not null" json:"status"`
	Currency        string            `gorm:"not null" json:"currency"`
	TotalAmount     Money             `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	Payment         PaymentDescriptor `gorm:"type:json" json:"payment"`
	ShippingAddress ShippingAddress   `gorm:"embedded" json:"shipping_address"`
	SessionID       *string           `gorm:"uniqueIndex;type:varchar(255)" json:"session_id,omitempty"` // external payment session handle
	ClientIP        string            `gorm:"type:varchar(64)" json:"client_ip,omitempty"`
	PaidAt          *time.Time        `gorm:"index" json:"paid_at"`
	CreatedAt       time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"-"`

	Items      []OrderItem      `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	StatusLogs []OrderStatusLog `gorm:"foreignKey:OrderID" json:"status_logs,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
