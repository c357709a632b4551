package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	"github.com/osikani/marketplace-payments/internal/domain/provider"
	"github.com/osikani/marketplace-payments/internal/queue"
)

type walletFixture struct {
	walletRepo    *MockWalletRepository
	paymentRepo   *MockPaymentRepository
	userRepo      *MockUserRepository
	recipientRepo *MockRecipientRepository
	gateway       *MockPaymentGateway
	queue         *MockQueue
	service       *WalletService
}

func newWalletFixture() *walletFixture {
	f := &walletFixture{
		walletRepo:    new(MockWalletRepository),
		paymentRepo:   new(MockPaymentRepository),
		userRepo:      new(MockUserRepository),
		recipientRepo: new(MockRecipientRepository),
		gateway:       new(MockPaymentGateway),
		queue:         new(MockQueue),
	}
	f.service = NewWalletService(
		f.walletRepo, f.paymentRepo, f.userRepo, f.recipientRepo,
		f.gateway, f.queue, zap.NewNop())
	return f
}

func TestTopup_QueuesInitializationWithTopupDisplayName(t *testing.T) {
	f := newWalletFixture()

	userID := uuid.New()
	f.paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.queue.On("Enqueue", mock.Anything, queue.JobInitializePayment, mock.MatchedBy(func(p interface{}) bool {
		payload, ok := p.(queue.InitializePaymentPayload)
		return ok && payload.DisplayName == model.DisplayNameWalletTopup
	})).Return(&queue.Job{ID: "job-1", State: queue.JobStateQueued}, nil)

	resp, err := f.service.Topup(context.Background(), userID, "user@example.com", &dto.TopupRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: model.PaymentMethodMobileMoney,
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", resp.JobID)
}

func TestInitiateTransfer_InsufficientFundsQueuesNothing(t *testing.T) {
	f := newWalletFixture()

	senderID := uuid.New()
	recipient := &model.User{ID: uuid.New(), Email: "friend@example.com"}

	f.userRepo.On("GetByEmail", mock.Anything, "friend@example.com").Return(recipient, nil)
	f.walletRepo.On("GetByUserID", mock.Anything, senderID).
		Return(&model.Wallet{UserID: senderID, Balance: decimal.NewFromInt(10)}, nil)

	_, err := f.service.InitiateTransfer(context.Background(), senderID, &dto.TransferRequest{
		RecipientEmail: "friend@example.com",
		Amount:         decimal.NewFromInt(50),
	})

	var insufficient *domainErrors.InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Requested.Equal(decimal.NewFromInt(50)))
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(10)))

	f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestInitiateTransfer_RejectsSelfTransfer(t *testing.T) {
	f := newWalletFixture()

	senderID := uuid.New()
	f.userRepo.On("GetByEmail", mock.Anything, "me@example.com").
		Return(&model.User{ID: senderID, Email: "me@example.com"}, nil)

	_, err := f.service.InitiateTransfer(context.Background(), senderID, &dto.TransferRequest{
		RecipientEmail: "me@example.com",
		Amount:         decimal.NewFromInt(5),
	})
	assert.Error(t, err)
	f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
}

func TestInitiateTransfer_QueuesJobWithoutTouchingWallets(t *testing.T) {
	f := newWalletFixture()

	senderID := uuid.New()
	recipientUser := &model.User{ID: uuid.New(), Email: "friend@example.com"}

	f.userRepo.On("GetByEmail", mock.Anything, "friend@example.com").Return(recipientUser, nil)
	f.walletRepo.On("GetByUserID", mock.Anything, senderID).
		Return(&model.Wallet{UserID: senderID, Balance: decimal.NewFromInt(500)}, nil)
	f.recipientRepo.On("GetByUserID", mock.Anything, recipientUser.ID).
		Return(&model.TransferRecipient{RecipientCode: "RCP_abc"}, nil)

	var queued queue.InitiateTransferPayload
	f.queue.On("Enqueue", mock.Anything, queue.JobInitiateTransfer, mock.Anything).
		Run(func(args mock.Arguments) {
			queued = args.Get(2).(queue.InitiateTransferPayload)
		}).
		Return(&queue.Job{ID: "job-2", State: queue.JobStateQueued}, nil)

	resp, err := f.service.InitiateTransfer(context.Background(), senderID, &dto.TransferRequest{
		RecipientEmail: "friend@example.com",
		Amount:         decimal.NewFromInt(200),
		Reason:         "rent",
	})
	require.NoError(t, err)
	assert.Equal(t, "job-2", resp.JobID)
	assert.NotEmpty(t, resp.Reference)

	assert.Equal(t, senderID, queued.SenderUserID)
	assert.Equal(t, recipientUser.ID, queued.RecipientUserID)
	assert.Equal(t, "RCP_abc", queued.RecipientCode)

	// Initiation must not move money.
	f.walletRepo.AssertNotCalled(t, "ApplyTransfer", mock.Anything, mock.Anything)
}

func transferJob(t *testing.T, payload queue.InitiateTransferPayload, state queue.JobState) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &queue.Job{
		ID:      "job-3",
		Type:    queue.JobInitiateTransfer,
		State:   state,
		Payload: raw,
	}
}

func TestFinalizeTransfer_RequiresCompletedJob(t *testing.T) {
	f := newWalletFixture()

	senderID := uuid.New()
	payload := queue.InitiateTransferPayload{
		SenderUserID:    senderID,
		RecipientUserID: uuid.New(),
		Amount:          decimal.NewFromInt(200),
	}
	f.queue.On("GetJob", mock.Anything, "job-3").
		Return(transferJob(t, payload, queue.JobStateActive), nil)

	_, err := f.service.FinalizeTransfer(context.Background(), senderID, &dto.FinalizeTransferRequest{
		JobID:        "job-3",
		TransferCode: "TRF_x",
	})
	assert.ErrorIs(t, err, domainErrors.ErrJobNotCompleted)

	f.gateway.AssertNotCalled(t, "FinalizeTransfer", mock.Anything, mock.Anything, mock.Anything)
	f.walletRepo.AssertNotCalled(t, "ApplyTransfer", mock.Anything, mock.Anything)
}

func TestFinalizeTransfer_RejectsForeignJob(t *testing.T) {
	f := newWalletFixture()

	payload := queue.InitiateTransferPayload{
		SenderUserID:    uuid.New(),
		RecipientUserID: uuid.New(),
		Amount:          decimal.NewFromInt(200),
	}
	f.queue.On("GetJob", mock.Anything, "job-3").
		Return(transferJob(t, payload, queue.JobStateCompleted), nil)

	_, err := f.service.FinalizeTransfer(context.Background(), uuid.New(), &dto.FinalizeTransferRequest{
		JobID:        "job-3",
		TransferCode: "TRF_x",
	})
	assert.Error(t, err)
	f.gateway.AssertNotCalled(t, "FinalizeTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizeTransfer_SettlesWalletsAfterGatewayConfirms(t *testing.T) {
	f := newWalletFixture()

	senderID := uuid.New()
	recipientID := uuid.New()
	payload := queue.InitiateTransferPayload{
		SenderUserID:    senderID,
		RecipientUserID: recipientID,
		Amount:          decimal.NewFromInt(200),
		Reference:       "xfer-ref",
	}

	f.queue.On("GetJob", mock.Anything, "job-3").
		Return(transferJob(t, payload, queue.JobStateCompleted), nil)
	f.walletRepo.On("GetTransferByReference", mock.Anything, "xfer-ref").
		Return(nil, domainErrors.ErrTransferNotFound)
	f.gateway.On("FinalizeTransfer", mock.Anything, "TRF_x", "123456").
		Return(&provider.TransferResult{TransferCode: "TRF_x", Status: "success"}, nil)
	f.walletRepo.On("ApplyTransfer", mock.Anything,
		mock.MatchedBy(func(tr *model.WalletTransfer) bool {
			return tr.Reference == "xfer-ref" &&
				tr.SenderUserID == senderID &&
				tr.RecipientUserID == recipientID &&
				tr.TransferCode == "TRF_x" &&
				tr.Amount.Equal(decimal.NewFromInt(200))
		})).Return(nil)

	resp, err := f.service.FinalizeTransfer(context.Background(), senderID, &dto.FinalizeTransferRequest{
		JobID:        "job-3",
		TransferCode: "TRF_x",
		OTP:          "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "xfer-ref", resp.Reference)

	f.walletRepo.AssertExpectations(t)
}

func TestFinalizeTransfer_ReplayedFinalizeMovesNothing(t *testing.T) {
	f := newWalletFixture()

	senderID := uuid.New()
	payload := queue.InitiateTransferPayload{
		SenderUserID:    senderID,
		RecipientUserID: uuid.New(),
		Amount:          decimal.NewFromInt(200),
		Reference:       "xfer-ref",
	}

	f.queue.On("GetJob", mock.Anything, "job-3").
		Return(transferJob(t, payload, queue.JobStateCompleted), nil)
	f.walletRepo.On("GetTransferByReference", mock.Anything, "xfer-ref").
		Return(&model.WalletTransfer{Reference: "xfer-ref", SenderUserID: senderID}, nil)

	_, err := f.service.FinalizeTransfer(context.Background(), senderID, &dto.FinalizeTransferRequest{
		JobID:        "job-3",
		TransferCode: "TRF_x",
	})
	assert.ErrorIs(t, err, domainErrors.ErrAlreadySettled)

	f.gateway.AssertNotCalled(t, "FinalizeTransfer", mock.Anything, mock.Anything, mock.Anything)
	f.walletRepo.AssertNotCalled(t, "ApplyTransfer", mock.Anything, mock.Anything)
}

func TestFinalizeTransfer_GatewayFailureLeavesWalletsAlone(t *testing.T) {
	f := newWalletFixture()

	senderID := uuid.New()
	payload := queue.InitiateTransferPayload{
		SenderUserID:    senderID,
		RecipientUserID: uuid.New(),
		Amount:          decimal.NewFromInt(200),
	}

	f.queue.On("GetJob", mock.Anything, "job-3").
		Return(transferJob(t, payload, queue.JobStateCompleted), nil)
	f.walletRepo.On("GetTransferByReference", mock.Anything, mock.Anything).
		Return(nil, domainErrors.ErrTransferNotFound)
	f.gateway.On("FinalizeTransfer", mock.Anything, "TRF_x", "").
		Return(nil, assert.AnError)

	_, err := f.service.FinalizeTransfer(context.Background(), senderID, &dto.FinalizeTransferRequest{
		JobID:        "job-3",
		TransferCode: "TRF_x",
	})
	assert.Error(t, err)
	f.walletRepo.AssertNotCalled(t, "ApplyTransfer", mock.Anything, mock.Anything)
}
