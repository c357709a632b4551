package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metadata display names carried through the gateway so the webhook can
// tell what a charge was for.
const (
	DisplayNameOrderPayment = "ORDER_PAYMENT"
	DisplayNameWalletTopup  = "WALLET_TOPUP"
)

// Payment represents a payment record. OrderID is NULL for wallet top-ups.
// InitReference is the gateway's correlation token; it stays NULL until the
// settlement worker finishes the initialize call and reports it back.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index" json:"order_id,omitempty"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency      string          `gorm:"size:3;default:'GHS'" json:"currency"`
	PaymentMethod PaymentMethod   `gorm:"size:50;not null" json:"payment_method"`
	InitReference *string         `gorm:"unique;size:100" json:"init_reference,omitempty"`
	Status        PaymentStatus   `gorm:"size:50;not null;default:'pending'" json:"status"`
	CreatedAt     time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"default:now()" json:"updated_at"`

	// Relations
	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}
