package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// UserRepository resolves principals and their role-specific records.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetConsumerByUserID(ctx context.Context, userID uuid.UUID) (*model.Consumer, error)
	// GetConsumerByReferralCode returns ErrUserNotFound when no consumer
	// owns the code; settlement treats that as a silent skip.
	GetConsumerByReferralCode(ctx context.Context, code string) (*model.Consumer, error)
}
