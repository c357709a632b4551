package repository

import (
	"context"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
)

// SettlementRepository applies the financial consequences of a confirmed
// payment. Each Apply* method is a single database transaction: the order
// (or payment) row is locked, the already-settled guard is re-checked while
// holding the lock, and every write commits or rolls back together.
type SettlementRepository interface {
	// ApplyOrderSettlement marks the payment and order completed, accrues
	// the referral commission and credits each vendor's wallet. Returns
	// ErrAlreadySettled when the order's payment status is already
	// completed.
	ApplyOrderSettlement(ctx context.Context, plan dto.OrderSettlementPlan) error

	// ApplyTopupSettlement marks the payment completed and credits the
	// owner's wallet. Returns ErrAlreadySettled on replay.
	ApplyTopupSettlement(ctx context.Context, plan dto.TopupSettlementPlan) error
}
