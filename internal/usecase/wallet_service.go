package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	"github.com/osikani/marketplace-payments/internal/domain/provider"
	"github.com/osikani/marketplace-payments/internal/domain/repository"
	"github.com/osikani/marketplace-payments/internal/queue"
	pkgErrors "github.com/osikani/marketplace-payments/pkg/errors"
)

// WalletService handles wallet balances, top-ups and the two-phase
// wallet-to-wallet transfer flow.
type WalletService struct {
	walletRepo    repository.WalletRepository
	paymentRepo   repository.PaymentRepository
	userRepo      repository.UserRepository
	recipientRepo repository.RecipientRepository
	gateway       provider.PaymentGateway
	queue         queue.Queue
	logger        *zap.Logger
}

// NewWalletService creates a new wallet service instance
func NewWalletService(
	walletRepo repository.WalletRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	recipientRepo repository.RecipientRepository,
	gateway provider.PaymentGateway,
	q queue.Queue,
	logger *zap.Logger,
) *WalletService {
	return &WalletService{
		walletRepo:    walletRepo,
		paymentRepo:   paymentRepo,
		userRepo:      userRepo,
		recipientRepo: recipientRepo,
		gateway:       gateway,
		queue:         q,
		logger:        logger,
	}
}

// GetBalance returns the caller's wallet balance.
func (s *WalletService) GetBalance(ctx context.Context, userID uuid.UUID) (*dto.BalanceResponse, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		Message: "Wallet balance retrieved",
		Balance: wallet.Balance,
	}, nil
}

// CreateWallet provisions a zero-balance wallet for the caller. Calling it
// again returns the existing wallet unchanged.
func (s *WalletService) CreateWallet(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	return s.walletRepo.CreateForUser(ctx, userID)
}

// Topup records a pending payment and queues the gateway charge that will
// credit the wallet once the webhook confirms it.
func (s *WalletService) Topup(ctx context.Context, userID uuid.UUID, email string, req *dto.TopupRequest) (*dto.TopupResponse, error) {
	payment := &model.Payment{
		UserID:        userID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        model.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, pkgErrors.Wrap(err, "failed to create top-up payment")
	}

	job, err := s.queue.Enqueue(ctx, queue.JobInitializePayment, queue.InitializePaymentPayload{
		PaymentID:     payment.ID,
		Email:         email,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		DisplayName:   model.DisplayNameWalletTopup,
	})
	if err != nil {
		return nil, pkgErrors.Wrap(err, "failed to queue top-up initialization")
	}

	s.logger.Info("wallet top-up queued",
		zap.String("payment_id", payment.ID.String()),
		zap.String("job_id", job.ID))

	return &dto.TopupResponse{
		Message: "Top-up initialization queued",
		JobID:   job.ID,
	}, nil
}

// InitiateTransfer validates a wallet-to-wallet transfer and queues the
// gateway initiate call. No wallet is touched here; both the debit and the
// credit happen in FinalizeTransfer, after the gateway accepted the
// transfer.
func (s *WalletService) InitiateTransfer(ctx context.Context, userID uuid.UUID, req *dto.TransferRequest) (*dto.TransferResponse, error) {
	recipientUser, err := s.userRepo.GetByEmail(ctx, req.RecipientEmail)
	if err != nil {
		return nil, err
	}
	if recipientUser.ID == userID {
		return nil, pkgErrors.NewAppError(pkgErrors.ErrInvalidArgument,
			"cannot transfer to your own wallet", nil)
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Balance.LessThan(req.Amount) {
		return nil, domainErrors.NewInsufficientFundsError(req.Amount, wallet.Balance)
	}

	recipient, err := s.recipientRepo.GetByUserID(ctx, recipientUser.ID)
	if err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	job, err := s.queue.Enqueue(ctx, queue.JobInitiateTransfer, queue.InitiateTransferPayload{
		SenderUserID:    userID,
		RecipientUserID: recipientUser.ID,
		Amount:          req.Amount,
		RecipientCode:   recipient.RecipientCode,
		Reason:          req.Reason,
		Reference:       reference,
	})
	if err != nil {
		return nil, pkgErrors.Wrap(err, "failed to queue transfer initiation")
	}

	s.logger.Info("transfer initiation queued",
		zap.String("job_id", job.ID),
		zap.String("reference", reference))

	return &dto.TransferResponse{
		Message:   "Transfer initiation queued",
		JobID:     job.ID,
		Reference: reference,
	}, nil
}

// FinalizeTransfer completes a queued transfer. The initiate job must have
// finished; the sender's balance is re-checked under a row lock inside
// ApplyTransfer, so a balance spent since initiation fails here with no
// mutation. The transfer reference is recorded on first application, so a
// replayed finalize returns ErrAlreadySettled before reaching the gateway.
func (s *WalletService) FinalizeTransfer(ctx context.Context, userID uuid.UUID, req *dto.FinalizeTransferRequest) (*dto.TransferResponse, error) {
	job, err := s.queue.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if job.Type != queue.JobInitiateTransfer {
		return nil, domainErrors.ErrJobNotFound
	}
	if job.State != queue.JobStateCompleted {
		return nil, domainErrors.ErrJobNotCompleted
	}

	var payload queue.InitiateTransferPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return nil, pkgErrors.Wrap(err, "failed to decode transfer job payload")
	}
	if payload.SenderUserID != userID {
		return nil, pkgErrors.NewAppError(pkgErrors.ErrForbidden,
			"transfer belongs to another user", nil)
	}

	if _, err := s.walletRepo.GetTransferByReference(ctx, payload.Reference); err == nil {
		return nil, domainErrors.ErrAlreadySettled
	} else if !errors.Is(err, domainErrors.ErrTransferNotFound) {
		return nil, err
	}

	result, err := s.gateway.FinalizeTransfer(ctx, req.TransferCode, req.OTP)
	if err != nil {
		return nil, err
	}

	transfer := &model.WalletTransfer{
		Reference:       payload.Reference,
		SenderUserID:    payload.SenderUserID,
		RecipientUserID: payload.RecipientUserID,
		Amount:          payload.Amount,
		TransferCode:    result.TransferCode,
	}
	if err := s.walletRepo.ApplyTransfer(ctx, transfer); err != nil {
		return nil, err
	}

	s.logger.Info("transfer finalized",
		zap.String("job_id", job.ID),
		zap.String("transfer_code", result.TransferCode),
		zap.String("status", result.Status))

	return &dto.TransferResponse{
		Message:   "Transfer completed",
		JobID:     job.ID,
		Reference: payload.Reference,
	}, nil
}
