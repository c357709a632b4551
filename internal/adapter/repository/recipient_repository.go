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

// recipientRepository implements the RecipientRepository interface
type recipientRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipientRepository creates a new transfer recipient repository instance
func NewRecipientRepository(db *gorm.DB, logger *zap.Logger) domainRepo.RecipientRepository {
	return &recipientRepository{
		db:     db,
		logger: logger,
	}
}

func (r *recipientRepository) Create(ctx context.Context, recipient *model.TransferRecipient) error {
	if err := r.db.WithContext(ctx).Create(recipient).Error; err != nil {
		return fmt.Errorf("failed to create transfer recipient: %w", err)
	}
	return nil
}

func (r *recipientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.TransferRecipient, error) {
	var recipient model.TransferRecipient
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&recipient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to get transfer recipient: %w", err)
	}
	return &recipient, nil
}

func (r *recipientRepository) UpdateName(ctx context.Context, recipientCode, name string) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransferRecipient{}).
		Where("recipient_code = ?", recipientCode).
		Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to update transfer recipient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrRecipientNotFound
	}
	return nil
}
