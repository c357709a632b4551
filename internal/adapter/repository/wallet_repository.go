package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	domainRepo "github.com/osikani/marketplace-payments/internal/domain/repository"
)

// walletRepository implements the WalletRepository interface
type walletRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWalletRepository creates a new wallet repository instance
func NewWalletRepository(db *gorm.DB, logger *zap.Logger) domainRepo.WalletRepository {
	return &walletRepository{
		db:     db,
		logger: logger,
	}
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	var wallet model.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) CreateForUser(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	wallet := model.Wallet{
		UserID:  userID,
		Balance: decimal.Zero,
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetTransferByReference(ctx context.Context, reference string) (*model.WalletTransfer, error) {
	var transfer model.WalletTransfer
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&transfer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrTransferNotFound
		}
		return nil, fmt.Errorf("failed to get wallet transfer: %w", err)
	}
	return &transfer, nil
}

// ApplyTransfer debits the sender, credits the recipient and records the
// transfer atomically. The sender's wallet is locked first; both the
// balance check and the reference guard run while holding the lock, so two
// concurrent finalizations for the same sender cannot both pass.
func (r *walletRepository) ApplyTransfer(ctx context.Context, transfer *model.WalletTransfer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sender model.Wallet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", transfer.SenderUserID).
			First(&sender).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrWalletNotFound
			}
			return fmt.Errorf("failed to lock sender wallet: %w", err)
		}

		var applied model.WalletTransfer
		err = tx.Where("reference = ?", transfer.Reference).First(&applied).Error
		if err == nil {
			return domainErrors.ErrAlreadySettled
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check transfer reference: %w", err)
		}

		if sender.Balance.LessThan(transfer.Amount) {
			return domainErrors.NewInsufficientFundsError(transfer.Amount, sender.Balance)
		}

		if err := tx.Create(transfer).Error; err != nil {
			return fmt.Errorf("failed to record transfer: %w", err)
		}

		if err := tx.Model(&model.Wallet{}).
			Where("user_id = ?", transfer.SenderUserID).
			UpdateColumn("balance", gorm.Expr("balance - ?", transfer.Amount)).Error; err != nil {
			return fmt.Errorf("failed to debit sender: %w", err)
		}

		if err := creditWallet(tx, transfer.RecipientUserID, transfer.Amount); err != nil {
			return fmt.Errorf("failed to credit recipient: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("wallet transfer applied",
		zap.String("reference", transfer.Reference),
		zap.String("sender_user_id", transfer.SenderUserID.String()),
		zap.String("recipient_user_id", transfer.RecipientUserID.String()),
		zap.String("amount", transfer.Amount.String()))
	return nil
}

// creditWallet upserts the wallet and applies an atomic balance increment.
// Shared by transfer and settlement transactions; must run inside tx.
func creditWallet(tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal) error {
	wallet := model.Wallet{
		UserID:  userID,
		Balance: decimal.Zero,
	}
	if err := tx.Where("user_id = ?", userID).FirstOrCreate(&wallet).Error; err != nil {
		return err
	}

	return tx.Model(&model.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
}
