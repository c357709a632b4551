package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	domainRepo "github.com/osikani/marketplace-payments/internal/domain/repository"
)

// settlementRepository implements the SettlementRepository interface
type settlementRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSettlementRepository creates a new settlement repository instance
func NewSettlementRepository(db *gorm.DB, logger *zap.Logger) domainRepo.SettlementRepository {
	return &settlementRepository{
		db:     db,
		logger: logger,
	}
}

// ApplyOrderSettlement applies a confirmed order payment in one database
// transaction. The order row is locked first and the already-settled guard
// is evaluated while holding the lock, so two concurrent deliveries of the
// same event cannot both settle. Every write commits or rolls back
// together.
func (r *settlementRepository) ApplyOrderSettlement(ctx context.Context, plan dto.OrderSettlementPlan) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", plan.OrderID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrOrderNotFound
			}
			return fmt.Errorf("failed to lock order: %w", err)
		}

		// Exactly-once boundary: the decision and the writes it gates
		// become durable in the same transaction.
		if order.PaymentStatus == model.PaymentStatusCompleted {
			return domainErrors.ErrAlreadySettled
		}

		result := tx.Model(&model.Payment{}).
			Where("id = ?", plan.PaymentID).
			Update("status", model.PaymentStatusCompleted)
		if result.Error != nil {
			return fmt.Errorf("failed to complete payment: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainErrors.ErrPaymentNotFound
		}

		if err := tx.Model(&model.Order{}).
			Where("id = ?", plan.OrderID).
			Updates(map[string]interface{}{
				"status":         model.OrderStatusProcessing,
				"payment_status": model.PaymentStatusCompleted,
			}).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		if plan.Commission != nil {
			if err := accrueCommission(tx, plan.Commission); err != nil {
				return err
			}
		}

		for _, credit := range plan.VendorCredits {
			if err := creditWallet(tx, credit.VendorUserID, credit.Amount); err != nil {
				return fmt.Errorf("failed to credit vendor wallet: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("order settlement applied",
		zap.String("order_id", plan.OrderID.String()),
		zap.String("payment_id", plan.PaymentID.String()),
		zap.Int("vendor_credits", len(plan.VendorCredits)),
		zap.Bool("commission", plan.Commission != nil))
	return nil
}

// ApplyTopupSettlement credits a wallet top-up, guarded against replay by
// the payment's own status under a row lock.
func (r *settlementRepository) ApplyTopupSettlement(ctx context.Context, plan dto.TopupSettlementPlan) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment model.Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", plan.PaymentID).
			First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrPaymentNotFound
			}
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		if payment.Status == model.PaymentStatusCompleted {
			return domainErrors.ErrAlreadySettled
		}

		if err := tx.Model(&model.Payment{}).
			Where("id = ?", plan.PaymentID).
			Update("status", model.PaymentStatusCompleted).Error; err != nil {
			return fmt.Errorf("failed to complete payment: %w", err)
		}

		if err := creditWallet(tx, plan.UserID, plan.Amount); err != nil {
			return fmt.Errorf("failed to credit wallet: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("wallet top-up settled",
		zap.String("payment_id", plan.PaymentID.String()),
		zap.String("user_id", plan.UserID.String()),
		zap.String("amount", plan.Amount.String()))
	return nil
}

// accrueCommission upserts the referring consumer's earning ledger and
// credits their wallet with the same amount. Must run inside tx.
func accrueCommission(tx *gorm.DB, commission *dto.CommissionCredit) error {
	earning := model.Earning{
		ConsumerID:        commission.ConsumerID,
		TotalAmount:       decimal.Zero,
		PendingCommission: decimal.Zero,
	}
	if err := tx.Where("consumer_id = ?", commission.ConsumerID).
		FirstOrCreate(&earning).Error; err != nil {
		return fmt.Errorf("failed to upsert earning: %w", err)
	}

	if err := tx.Model(&model.Earning{}).
		Where("consumer_id = ?", commission.ConsumerID).
		Updates(map[string]interface{}{
			"total_amount":       gorm.Expr("total_amount + ?", commission.Amount),
			"pending_commission": gorm.Expr("pending_commission + ?", commission.Amount),
		}).Error; err != nil {
		return fmt.Errorf("failed to accrue commission: %w", err)
	}

	if err := creditWallet(tx, commission.ConsumerUserID, commission.Amount); err != nil {
		return fmt.Errorf("failed to credit referrer wallet: %w", err)
	}

	return nil
}
