package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorCredit is one vendor's share of a settled order, keyed by the
// vendor's user id (wallets are per user).
type VendorCredit struct {
	VendorUserID uuid.UUID
	Amount       decimal.Decimal
}

// CommissionCredit is the referral commission owed to the referring
// consumer.
type CommissionCredit struct {
	ConsumerID     uuid.UUID
	ConsumerUserID uuid.UUID
	Amount         decimal.Decimal
}

// OrderSettlementPlan is everything the settlement transaction needs to
// apply a confirmed order payment. It is computed outside the transaction;
// the idempotency guard is re-evaluated inside it.
type OrderSettlementPlan struct {
	PaymentID     uuid.UUID
	OrderID       uuid.UUID
	Commission    *CommissionCredit
	VendorCredits []VendorCredit
}

// TopupSettlementPlan is the wallet top-up counterpart.
type TopupSettlementPlan struct {
	PaymentID uuid.UUID
	UserID    uuid.UUID
	Amount    decimal.Decimal
}
