package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// Scan implements sql.Scanner interface
func (s *OrderStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// PaymentStatus represents the settlement state of a payment or order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Scan implements sql.Scanner interface
func (s *PaymentStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// PaymentMethod is the customer-facing payment method vocabulary. The
// gateway channel vocabulary is narrower; the worker maps between the two.
type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "credit_card"
	PaymentMethodDebitCard      PaymentMethod = "debit_card"
	PaymentMethodMobileMoney    PaymentMethod = "mobile_money"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Scan implements sql.Scanner interface
func (m *PaymentMethod) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(v)
	default:
		return nil
	}
	return nil
}

// Value implements driver.Valuer interface
func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

// Order represents a placed order. PaymentStatus transitions
// pending -> completed exactly once; settlement re-checks it under a row
// lock before mutating anything.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ConsumerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"consumer_id"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_price"`
	Status        OrderStatus     `gorm:"size:50;not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"size:50;not null;default:'pending'" json:"payment_status"`
	PaymentMethod PaymentMethod   `gorm:"size:50;not null" json:"payment_method"`
	ReferralCode  *string         `gorm:"size:50" json:"referral_code,omitempty"`
	Address       string          `gorm:"not null" json:"address"`
	Contact       string          `gorm:"not null;size:50" json:"contact"`
	CreatedAt     time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"default:now()" json:"updated_at"`

	// Relations
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	DeliveryOption *DeliveryOption `gorm:"foreignKey:OrderID" json:"delivery_option,omitempty"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single line item of an order.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
}

// TableName specifies the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// DeliveryOption records how an order is delivered.
type DeliveryOption struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrderID  uuid.UUID       `gorm:"type:uuid;unique;not null" json:"order_id"`
	Type     string          `gorm:"size:50;not null" json:"type"`
	Fee      decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"fee"`
	Unit     string          `gorm:"size:20" json:"unit"`
	Duration int             `json:"duration"`
}

// TableName specifies the table name for GORM
func (DeliveryOption) TableName() string {
	return "delivery_options"
}
