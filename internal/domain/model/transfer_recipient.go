package model

import (
	"time"

	"github.com/google/uuid"
)

// TransferRecipient mirrors the gateway-side recipient registration. A
// principal must have one before any transfer can be initiated to them.
type TransferRecipient struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipientCode string        `gorm:"unique;not null;size:100" json:"recipient_code"`
	Name          string        `gorm:"not null;size:255" json:"name"`
	AccountNumber string        `gorm:"size:50" json:"account_number"`
	BankCode      string        `gorm:"size:20" json:"bank_code"`
	BankName      string        `gorm:"size:255" json:"bank_name"`
	Type          PaymentMethod `gorm:"size:50;not null" json:"type"`
	Currency      string        `gorm:"size:3;default:'GHS'" json:"currency"`
	CreatedAt     time.Time     `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (TransferRecipient) TableName() string {
	return "transfer_recipients"
}
