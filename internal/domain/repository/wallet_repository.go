package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// WalletRepository owns wallet persistence. Balance mutations happen
// through atomic increments, never read-modify-write in application code.
type WalletRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
	// CreateForUser creates a zero-balance wallet, or returns the existing
	// one when the user already has a wallet.
	CreateForUser(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
	// GetTransferByReference returns the recorded transfer for a finalize
	// reference, or ErrTransferNotFound.
	GetTransferByReference(ctx context.Context, reference string) (*model.WalletTransfer, error)
	// ApplyTransfer debits the sender, credits the recipient and records
	// the transfer under its unique reference in one transaction. The
	// sender's balance is re-checked under a row lock; an insufficient
	// balance returns InsufficientFundsError and a reference that was
	// already applied returns ErrAlreadySettled, with no mutation on
	// either wallet in both cases.
	ApplyTransfer(ctx context.Context, transfer *model.WalletTransfer) error
}
