package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet holds a principal's spendable balance. One wallet per user,
// created lazily the first time a credit is owed. The balance is only ever
// mutated through atomic SQL increments inside a transaction.
type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;unique;not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Wallet) TableName() string {
	return "wallets"
}

// WalletTransfer records an applied wallet-to-wallet transfer. The unique
// reference is the finalize-time idempotency guard: a replayed finalize for
// an already recorded reference mutates nothing.
type WalletTransfer struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Reference       string          `gorm:"unique;not null" json:"reference"`
	SenderUserID    uuid.UUID       `gorm:"type:uuid;not null" json:"sender_user_id"`
	RecipientUserID uuid.UUID       `gorm:"type:uuid;not null" json:"recipient_user_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	TransferCode    string          `json:"transfer_code"`
	CreatedAt       time.Time       `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (WalletTransfer) TableName() string {
	return "wallet_transfers"
}

// Earning is the running referral-commission ledger, kept separate from the
// wallet so earned and available can diverge.
type Earning struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	ConsumerID        uuid.UUID       `gorm:"type:uuid;unique;not null" json:"consumer_id"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount"`
	PendingCommission decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"pending_commission"`
	CreatedAt         time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Earning) TableName() string {
	return "earnings"
}
