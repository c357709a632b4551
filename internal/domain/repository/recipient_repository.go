package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// RecipientRepository owns the local mirror of gateway transfer recipients.
type RecipientRepository interface {
	Create(ctx context.Context, recipient *model.TransferRecipient) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.TransferRecipient, error)
	UpdateName(ctx context.Context, recipientCode, name string) error
}
