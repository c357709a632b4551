package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced by the settlement and transfer flows. Handlers
// translate these into HTTP responses; repositories return them untouched.
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrRecipientNotFound = errors.New("transfer recipient not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrJobNotFound       = errors.New("job not found")
	ErrTransferNotFound  = errors.New("wallet transfer not found")

	// ErrPaymentNotVerified means the gateway did not confirm the charge
	// when settlement re-checked it. The webhook body is never trusted on
	// its own.
	ErrPaymentNotVerified = errors.New("payment not verified")

	// ErrAlreadySettled is the idempotency guard outcome: a replayed event
	// for a payment that was already applied. It is a benign no-op, not a
	// failure.
	ErrAlreadySettled = errors.New("payment already processed")

	// ErrJobNotCompleted is returned when a transfer finalize is attempted
	// before the initiate job has finished.
	ErrJobNotCompleted = errors.New("transfer job has not completed")
)

// InsufficientFundsError is a user-facing failure, distinct from
// infrastructure errors so callers know not to retry.
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient wallet balance: requested %s, available %s",
		e.Requested.String(), e.Available.String())
}

// NewInsufficientFundsError creates a new InsufficientFundsError
func NewInsufficientFundsError(requested, available decimal.Decimal) *InsufficientFundsError {
	return &InsufficientFundsError{
		Requested: requested,
		Available: available,
	}
}
