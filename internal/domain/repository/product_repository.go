package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// ProductRepository resolves products, including the shop and vendor chain
// needed for payout attribution.
type ProductRepository interface {
	// GetByIDs returns the products for the given ids in one query, with
	// Shop and Shop.Vendor preloaded.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
}
