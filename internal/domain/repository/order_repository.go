package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// EnqueueFunc enqueues the payment-initialization job and returns its id.
// It runs inside the placement transaction so an enqueue failure rolls the
// whole order back.
type EnqueueFunc func(ctx context.Context, paymentID uuid.UUID) (string, error)

// OrderRepository owns order persistence.
type OrderRepository interface {
	// CreateWithPayment creates the order (with its items and delivery
	// option), the pending payment, and runs enqueue, all as one logical
	// unit. Returns the job id from enqueue.
	CreateWithPayment(ctx context.Context, order *model.Order, payment *model.Payment, enqueue EnqueueFunc) (string, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByConsumer(ctx context.Context, consumerID uuid.UUID) ([]model.Order, error)
}
