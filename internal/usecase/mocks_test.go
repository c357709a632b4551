package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	"github.com/osikani/marketplace-payments/internal/domain/provider"
	"github.com/osikani/marketplace-payments/internal/domain/repository"
	"github.com/osikani/marketplace-payments/internal/queue"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetConsumerByUserID(ctx context.Context, userID uuid.UUID) (*model.Consumer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockUserRepository) GetConsumerByReferralCode(ctx context.Context, code string) (*model.Consumer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithPayment(ctx context.Context, order *model.Order, payment *model.Payment, enqueue repository.EnqueueFunc) (string, error) {
	args := m.Called(ctx, order, payment, enqueue)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByConsumer(ctx context.Context, consumerID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, consumerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SetInitReference(ctx context.Context, paymentID uuid.UUID, reference string) error {
	args := m.Called(ctx, paymentID, reference)
	return args.Error(0)
}

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CreateForUser(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetTransferByReference(ctx context.Context, reference string) (*model.WalletTransfer, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WalletTransfer), args.Error(1)
}

func (m *MockWalletRepository) ApplyTransfer(ctx context.Context, transfer *model.WalletTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) ApplyOrderSettlement(ctx context.Context, plan dto.OrderSettlementPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockSettlementRepository) ApplyTopupSettlement(ctx context.Context, plan dto.TopupSettlementPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

type MockRecipientRepository struct {
	mock.Mock
}

func (m *MockRecipientRepository) Create(ctx context.Context, recipient *model.TransferRecipient) error {
	args := m.Called(ctx, recipient)
	return args.Error(0)
}

func (m *MockRecipientRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.TransferRecipient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransferRecipient), args.Error(1)
}

func (m *MockRecipientRepository) UpdateName(ctx context.Context, recipientCode, name string) error {
	args := m.Called(ctx, recipientCode, name)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) InitializeCharge(ctx context.Context, req *provider.InitializeChargeRequest) (*provider.InitializeChargeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.InitializeChargeResponse), args.Error(1)
}

func (m *MockPaymentGateway) VerifyCharge(ctx context.Context, reference string) (*provider.VerifyChargeResponse, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.VerifyChargeResponse), args.Error(1)
}

func (m *MockPaymentGateway) CreateTransferRecipient(ctx context.Context, req *provider.CreateRecipientRequest) (*provider.Recipient, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Recipient), args.Error(1)
}

func (m *MockPaymentGateway) ListTransferRecipients(ctx context.Context) ([]provider.Recipient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Recipient), args.Error(1)
}

func (m *MockPaymentGateway) UpdateTransferRecipient(ctx context.Context, recipientCode, name string) (*provider.Recipient, error) {
	args := m.Called(ctx, recipientCode, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Recipient), args.Error(1)
}

func (m *MockPaymentGateway) InitiateTransfer(ctx context.Context, req *provider.InitiateTransferRequest) (*provider.TransferResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.TransferResult), args.Error(1)
}

func (m *MockPaymentGateway) FinalizeTransfer(ctx context.Context, transferCode, otp string) (*provider.TransferResult, error) {
	args := m.Called(ctx, transferCode, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.TransferResult), args.Error(1)
}

func (m *MockPaymentGateway) ListBanks(ctx context.Context) ([]provider.Bank, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Bank), args.Error(1)
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, jobType string, payload interface{}) (*queue.Job, error) {
	args := m.Called(ctx, jobType, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Job), args.Error(1)
}

func (m *MockQueue) Dequeue(ctx context.Context) (*queue.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Job), args.Error(1)
}

func (m *MockQueue) Complete(ctx context.Context, id string, returnValue interface{}) error {
	args := m.Called(ctx, id, returnValue)
	return args.Error(0)
}

func (m *MockQueue) Fail(ctx context.Context, id string, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

func (m *MockQueue) GetJob(ctx context.Context, id string) (*queue.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Job), args.Error(1)
}

func (m *MockQueue) ReclaimExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
