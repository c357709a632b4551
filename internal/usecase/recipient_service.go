package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	"github.com/osikani/marketplace-payments/internal/domain/provider"
	"github.com/osikani/marketplace-payments/internal/domain/repository"
	pkgErrors "github.com/osikani/marketplace-payments/pkg/errors"
)

// RecipientService manages gateway transfer recipients and their local
// mirror records.
type RecipientService struct {
	recipientRepo repository.RecipientRepository
	gateway       provider.PaymentGateway
	logger        *zap.Logger
}

// NewRecipientService creates a new recipient service instance
func NewRecipientService(recipientRepo repository.RecipientRepository, gateway provider.PaymentGateway, logger *zap.Logger) *RecipientService {
	return &RecipientService{
		recipientRepo: recipientRepo,
		gateway:       gateway,
		logger:        logger,
	}
}

// CreateRecipient registers a payout destination with the gateway and
// mirrors the recipient code locally so transfers can resolve it.
func (s *RecipientService) CreateRecipient(ctx context.Context, userID uuid.UUID, req *dto.CreateRecipientRequest) (*model.TransferRecipient, error) {
	recipientType := provider.RecipientTypeNuban
	if req.Type == model.PaymentMethodMobileMoney {
		recipientType = provider.RecipientTypeMobileMoney
	}

	created, err := s.gateway.CreateTransferRecipient(ctx, &provider.CreateRecipientRequest{
		Type:          recipientType,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		Currency:      "GHS",
	})
	if err != nil {
		return nil, err
	}

	recipient := &model.TransferRecipient{
		UserID:        userID,
		RecipientCode: created.RecipientCode,
		Name:          created.Name,
		AccountNumber: created.AccountNumber,
		BankCode:      created.BankCode,
		BankName:      created.BankName,
		Type:          req.Type,
		Currency:      created.Currency,
	}
	if err := s.recipientRepo.Create(ctx, recipient); err != nil {
		return nil, pkgErrors.Wrap(err, "failed to store transfer recipient")
	}

	s.logger.Info("transfer recipient created",
		zap.String("user_id", userID.String()),
		zap.String("recipient_code", created.RecipientCode))

	return recipient, nil
}

// ListRecipients returns the recipients registered with the gateway.
func (s *RecipientService) ListRecipients(ctx context.Context) ([]provider.Recipient, error) {
	return s.gateway.ListTransferRecipients(ctx)
}

// UpdateRecipient renames a recipient at the gateway and mirrors the
// change locally.
func (s *RecipientService) UpdateRecipient(ctx context.Context, recipientCode, name string) (*provider.Recipient, error) {
	updated, err := s.gateway.UpdateTransferRecipient(ctx, recipientCode, name)
	if err != nil {
		return nil, err
	}
	if err := s.recipientRepo.UpdateName(ctx, recipientCode, name); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListBanks returns the gateway's supported banks.
func (s *RecipientService) ListBanks(ctx context.Context) ([]provider.Bank, error) {
	return s.gateway.ListBanks(ctx)
}
