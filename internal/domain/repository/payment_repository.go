package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// PaymentRepository owns payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	// SetInitReference records the gateway correlation token reported by
	// the settlement worker once the initialize call completes.
	SetInitReference(ctx context.Context, paymentID uuid.UUID, reference string) error
}
