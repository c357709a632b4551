package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	domainRepo "github.com/osikani/marketplace-payments/internal/domain/repository"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB, logger *zap.Logger) domainRepo.OrderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateWithPayment creates the order, its items and delivery option, the
// pending payment, and runs enqueue, all inside one transaction. An
// enqueue failure rolls every write back so the order never becomes
// observable without a queued payment job.
func (r *orderRepository) CreateWithPayment(ctx context.Context, order *model.Order, payment *model.Payment, enqueue domainRepo.EnqueueFunc) (string, error) {
	var jobID string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		orderID := order.ID
		payment.OrderID = &orderID
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		id, err := enqueue(ctx, payment.ID)
		if err != nil {
			return fmt.Errorf("failed to enqueue payment job: %w", err)
		}
		jobID = id
		return nil
	})
	if err != nil {
		r.logger.Error("order placement transaction failed", zap.Error(err))
		return "", err
	}

	return jobID, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("DeliveryOption").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) ListByConsumer(ctx context.Context, consumerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("DeliveryOption").
		Where("consumer_id = ?", consumerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
