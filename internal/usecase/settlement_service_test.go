package usecase

import (
	"context"
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
)

type settlementFixture struct {
	gateway        *MockPaymentGateway
	paymentRepo    *MockPaymentRepository
	orderRepo      *MockOrderRepository
	userRepo       *MockUserRepository
	productRepo    *MockProductRepository
	settlementRepo *MockSettlementRepository
	service        *SettlementService
}

func newSettlementFixture() *settlementFixture {
	f := &settlementFixture{
		gateway:        new(MockPaymentGateway),
		paymentRepo:    new(MockPaymentRepository),
		orderRepo:      new(MockOrderRepository),
		userRepo:       new(MockUserRepository),
		productRepo:    new(MockProductRepository),
		settlementRepo: new(MockSettlementRepository),
	}
	f.service = NewSettlementService(
		f.gateway, f.paymentRepo, f.orderRepo, f.userRepo,
		f.productRepo, f.settlementRepo, zap.NewNop())
	return f
}

func orderPaymentEvent(reference string) *dto.WebhookEvent {
	return &dto.WebhookEvent{
		Event: dto.EventChargeSuccess,
		Data: dto.WebhookEventData{
			Reference: reference,
			Status:    "success",
			Metadata: dto.WebhookMetadata{
				CustomFields: []dto.WebhookCustomField{
					{DisplayName: model.DisplayNameOrderPayment},
				},
			},
		},
	}
}

func verifiedCharge(reference string) *provider.VerifyChargeResponse {
	return &provider.VerifyChargeResponse{Reference: reference, Status: "success"}
}

// vendorCatalog builds products for two vendors: X sells productA and
// productB, Y sells productC.
func vendorCatalog(vendorX, vendorY uuid.UUID, productA, productB, productC uuid.UUID) []model.Product {
	shopX := &model.Shop{ID: uuid.New(), Vendor: &model.Vendor{ID: uuid.New(), UserID: vendorX}}
	shopY := &model.Shop{ID: uuid.New(), Vendor: &model.Vendor{ID: uuid.New(), UserID: vendorY}}
	return []model.Product{
		{ID: productA, Shop: shopX},
		{ID: productB, Shop: shopX},
		{ID: productC, Shop: shopY},
	}
}

func TestHandleChargeSuccess_OrderSettlementWithCommission(t *testing.T) {
	f := newSettlementFixture()

	referrerUserID := uuid.New()
	referrer := &model.Consumer{ID: uuid.New(), UserID: referrerUserID}
	code := "FRIEND-20"

	vendorX, vendorY := uuid.New(), uuid.New()
	productA, productB, productC := uuid.New(), uuid.New(), uuid.New()

	orderID := uuid.New()
	payment := &model.Payment{ID: uuid.New(), OrderID: &orderID, Amount: decimal.NewFromInt(1000)}
	order := &model.Order{
		ID:           orderID,
		TotalPrice:   decimal.NewFromInt(1000),
		ReferralCode: &code,
		Items: []model.OrderItem{
			{ProductID: productA, Quantity: 2, Price: decimal.NewFromInt(10)},
			{ProductID: productB, Quantity: 1, Price: decimal.NewFromInt(30)},
			{ProductID: productC, Quantity: 1, Price: decimal.NewFromInt(5)},
		},
	}

	f.gateway.On("VerifyCharge", mock.Anything, "ref-1").Return(verifiedCharge("ref-1"), nil)
	f.paymentRepo.On("GetByReference", mock.Anything, "ref-1").Return(payment, nil)
	f.orderRepo.On("GetByID", mock.Anything, orderID).Return(order, nil)
	f.userRepo.On("GetConsumerByReferralCode", mock.Anything, code).Return(referrer, nil)
	f.productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return(vendorCatalog(vendorX, vendorY, productA, productB, productC), nil)

	var applied dto.OrderSettlementPlan
	f.settlementRepo.On("ApplyOrderSettlement", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			applied = args.Get(1).(dto.OrderSettlementPlan)
		}).
		Return(nil)

	err := f.service.HandleChargeSuccess(context.Background(), orderPaymentEvent("ref-1"))
	require.NoError(t, err)

	require.NotNil(t, applied.Commission)
	assert.Equal(t, referrer.ID, applied.Commission.ConsumerID)
	assert.Equal(t, referrerUserID, applied.Commission.ConsumerUserID)
	// 2% of 1000
	assert.True(t, applied.Commission.Amount.Equal(decimal.NewFromInt(20)),
		"commission was %s", applied.Commission.Amount)

	// Vendor X: 2*10 + 1*30 = 50, vendor Y: 1*5 = 5
	require.Len(t, applied.VendorCredits, 2)
	assert.Equal(t, vendorX, applied.VendorCredits[0].VendorUserID)
	assert.True(t, applied.VendorCredits[0].Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, vendorY, applied.VendorCredits[1].VendorUserID)
	assert.True(t, applied.VendorCredits[1].Amount.Equal(decimal.NewFromInt(5)))

	f.settlementRepo.AssertExpectations(t)
}

func TestHandleChargeSuccess_UnknownReferralCodeSkipsCommission(t *testing.T) {
	f := newSettlementFixture()

	code := "NOBODY"
	vendorX := uuid.New()
	productA := uuid.New()

	orderID := uuid.New()
	payment := &model.Payment{ID: uuid.New(), OrderID: &orderID}
	order := &model.Order{
		ID:           orderID,
		TotalPrice:   decimal.NewFromInt(100),
		ReferralCode: &code,
		Items: []model.OrderItem{
			{ProductID: productA, Quantity: 1, Price: decimal.NewFromInt(100)},
		},
	}

	f.gateway.On("VerifyCharge", mock.Anything, "ref-2").Return(verifiedCharge("ref-2"), nil)
	f.paymentRepo.On("GetByReference", mock.Anything, "ref-2").Return(payment, nil)
	f.orderRepo.On("GetByID", mock.Anything, orderID).Return(order, nil)
	f.userRepo.On("GetConsumerByReferralCode", mock.Anything, code).
		Return(nil, domainErrors.ErrUserNotFound)

	shop := &model.Shop{ID: uuid.New(), Vendor: &model.Vendor{ID: uuid.New(), UserID: vendorX}}
	f.productRepo.On("GetByIDs", mock.Anything, mock.Anything).
		Return([]model.Product{{ID: productA, Shop: shop}}, nil)

	var applied dto.OrderSettlementPlan
	f.settlementRepo.On("ApplyOrderSettlement", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			applied = args.Get(1).(dto.OrderSettlementPlan)
		}).
		Return(nil)

	err := f.service.HandleChargeSuccess(context.Background(), orderPaymentEvent("ref-2"))
	require.NoError(t, err)

	assert.Nil(t, applied.Commission)
	require.Len(t, applied.VendorCredits, 1)
}

func TestHandleChargeSuccess_UnverifiedChargeNeverSettles(t *testing.T) {
	f := newSettlementFixture()

	f.gateway.On("VerifyCharge", mock.Anything, "ref-3").
		Return(&provider.VerifyChargeResponse{Reference: "ref-3", Status: "failed"}, nil)

	err := f.service.HandleChargeSuccess(context.Background(), orderPaymentEvent("ref-3"))
	assert.ErrorIs(t, err, domainErrors.ErrPaymentNotVerified)

	f.paymentRepo.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
	f.settlementRepo.AssertNotCalled(t, "ApplyOrderSettlement", mock.Anything, mock.Anything)
}

func TestHandleChargeSuccess_ReplaySurfacesAlreadySettled(t *testing.T) {
	f := newSettlementFixture()

	orderID := uuid.New()
	payment := &model.Payment{ID: uuid.New(), OrderID: &orderID}
	order := &model.Order{ID: orderID, TotalPrice: decimal.NewFromInt(10)}

	f.gateway.On("VerifyCharge", mock.Anything, "ref-4").Return(verifiedCharge("ref-4"), nil)
	f.paymentRepo.On("GetByReference", mock.Anything, "ref-4").Return(payment, nil)
	f.orderRepo.On("GetByID", mock.Anything, orderID).Return(order, nil)
	f.productRepo.On("GetByIDs", mock.Anything, mock.Anything).Return([]model.Product{}, nil)
	f.settlementRepo.On("ApplyOrderSettlement", mock.Anything, mock.Anything).
		Return(domainErrors.ErrAlreadySettled)

	err := f.service.HandleChargeSuccess(context.Background(), orderPaymentEvent("ref-4"))
	assert.ErrorIs(t, err, domainErrors.ErrAlreadySettled)
}

func TestHandleChargeSuccess_TopupRoutedByDisplayName(t *testing.T) {
	f := newSettlementFixture()

	userID := uuid.New()
	payment := &model.Payment{ID: uuid.New(), UserID: userID, Amount: decimal.NewFromInt(250)}

	event := orderPaymentEvent("ref-5")
	event.Data.Metadata.CustomFields[0].DisplayName = model.DisplayNameWalletTopup

	f.gateway.On("VerifyCharge", mock.Anything, "ref-5").Return(verifiedCharge("ref-5"), nil)
	f.paymentRepo.On("GetByReference", mock.Anything, "ref-5").Return(payment, nil)
	f.settlementRepo.On("ApplyTopupSettlement", mock.Anything, dto.TopupSettlementPlan{
		PaymentID: payment.ID,
		UserID:    userID,
		Amount:    payment.Amount,
	}).Return(nil)

	err := f.service.HandleChargeSuccess(context.Background(), event)
	require.NoError(t, err)

	f.orderRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.settlementRepo.AssertExpectations(t)
}

func TestBuildVendorCredits_UnknownProductFails(t *testing.T) {
	items := []model.OrderItem{
		{ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(10)},
	}

	_, err := BuildVendorCredits(items, nil)
	assert.Error(t, err)
}

func TestBuildVendorCredits_AccumulatesPerVendor(t *testing.T) {
	vendorUserID := uuid.New()
	shop := &model.Shop{ID: uuid.New(), Vendor: &model.Vendor{ID: uuid.New(), UserID: vendorUserID}}
	productA, productB := uuid.New(), uuid.New()

	credits, err := BuildVendorCredits(
		[]model.OrderItem{
			{ProductID: productA, Quantity: 3, Price: decimal.NewFromFloat(2.50)},
			{ProductID: productB, Quantity: 1, Price: decimal.NewFromFloat(12.99)},
		},
		[]model.Product{
			{ID: productA, Shop: shop},
			{ID: productB, Shop: shop},
		},
	)
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, vendorUserID, credits[0].VendorUserID)
	assert.True(t, credits[0].Amount.Equal(decimal.NewFromFloat(20.49)),
		"accumulated %s", credits[0].Amount)
}
