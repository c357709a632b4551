package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/osikani/marketplace-payments/internal/domain/model"
	domainRepo "github.com/osikani/marketplace-payments/internal/domain/repository"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

// GetByIDs fetches all requested products in one query, with the shop and
// vendor chain preloaded for payout attribution.
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Shop.Vendor").
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}
