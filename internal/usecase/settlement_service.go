package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	"github.com/osikani/marketplace-payments/internal/domain/provider"
	"github.com/osikani/marketplace-payments/internal/domain/repository"
)

// referralCommissionPercent is the referring consumer's cut of a settled
// order's total.
var referralCommissionPercent = decimal.NewFromInt(2)

// SettlementService turns verified gateway confirmations into atomic
// settlement transactions.
type SettlementService struct {
	gateway        provider.PaymentGateway
	paymentRepo    repository.PaymentRepository
	orderRepo      repository.OrderRepository
	userRepo       repository.UserRepository
	productRepo    repository.ProductRepository
	settlementRepo repository.SettlementRepository
	logger         *zap.Logger
}

// NewSettlementService creates a new settlement service instance
func NewSettlementService(
	gateway provider.PaymentGateway,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	settlementRepo repository.SettlementRepository,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		gateway:        gateway,
		paymentRepo:    paymentRepo,
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		productRepo:    productRepo,
		settlementRepo: settlementRepo,
		logger:         logger,
	}
}

// HandleChargeSuccess settles a charge.success event. The charge is
// re-verified against the gateway before anything is written; the event
// body alone is never proof of payment. Replays surface as
// ErrAlreadySettled, which callers treat as success.
func (s *SettlementService) HandleChargeSuccess(ctx context.Context, event *dto.WebhookEvent) error {
	verification, err := s.gateway.VerifyCharge(ctx, event.Data.Reference)
	if err != nil {
		return err
	}
	if !verification.Success() {
		return domainErrors.ErrPaymentNotVerified
	}

	payment, err := s.paymentRepo.GetByReference(ctx, event.Data.Reference)
	if err != nil {
		return err
	}

	switch event.DisplayName() {
	case model.DisplayNameWalletTopup:
		return s.settleTopup(ctx, payment)
	case model.DisplayNameOrderPayment:
		return s.settleOrder(ctx, payment)
	default:
		// Anything that is not a top-up settles as an order payment.
		return s.settleOrder(ctx, payment)
	}
}

func (s *SettlementService) settleTopup(ctx context.Context, payment *model.Payment) error {
	return s.settlementRepo.ApplyTopupSettlement(ctx, dto.TopupSettlementPlan{
		PaymentID: payment.ID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
	})
}

func (s *SettlementService) settleOrder(ctx context.Context, payment *model.Payment) error {
	if payment.OrderID == nil {
		return domainErrors.ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(ctx, *payment.OrderID)
	if err != nil {
		return err
	}

	plan, err := s.buildOrderPlan(ctx, order, payment)
	if err != nil {
		return err
	}

	return s.settlementRepo.ApplyOrderSettlement(ctx, *plan)
}

// buildOrderPlan computes every credit a confirmed order produces. It
// only reads; the settlement repository applies the plan transactionally.
func (s *SettlementService) buildOrderPlan(ctx context.Context, order *model.Order, payment *model.Payment) (*dto.OrderSettlementPlan, error) {
	plan := &dto.OrderSettlementPlan{
		PaymentID: payment.ID,
		OrderID:   order.ID,
	}

	if order.ReferralCode != nil && *order.ReferralCode != "" {
		consumer, err := s.userRepo.GetConsumerByReferralCode(ctx, *order.ReferralCode)
		switch {
		case err == nil:
			plan.Commission = &dto.CommissionCredit{
				ConsumerID:     consumer.ID,
				ConsumerUserID: consumer.UserID,
				Amount: order.TotalPrice.
					Mul(referralCommissionPercent).
					Div(decimal.NewFromInt(100)),
			}
		case errors.Is(err, domainErrors.ErrUserNotFound):
			// Unknown referral codes are skipped, the rest of the
			// settlement proceeds.
			s.logger.Warn("referral code did not resolve, skipping commission",
				zap.String("order_id", order.ID.String()),
				zap.String("referral_code", *order.ReferralCode))
		default:
			return nil, err
		}
	}

	productIDs := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	credits, err := BuildVendorCredits(order.Items, products)
	if err != nil {
		return nil, err
	}
	plan.VendorCredits = credits

	return plan, nil
}

// BuildVendorCredits folds order line items into one credit per vendor.
// Each item contributes price times quantity to the wallet of the user who
// owns the product's shop. Credits come back in first-appearance order.
func BuildVendorCredits(items []model.OrderItem, products []model.Product) ([]dto.VendorCredit, error) {
	byProduct := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byProduct[products[i].ID] = &products[i]
	}

	amounts := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0)
	for _, item := range items {
		product, ok := byProduct[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("order references unknown product %s", item.ProductID)
		}
		if product.Shop == nil || product.Shop.Vendor == nil {
			return nil, fmt.Errorf("product %s has no vendor attribution", item.ProductID)
		}
		vendorUserID := product.Shop.Vendor.UserID

		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if existing, ok := amounts[vendorUserID]; ok {
			amounts[vendorUserID] = existing.Add(lineTotal)
		} else {
			amounts[vendorUserID] = lineTotal
			order = append(order, vendorUserID)
		}
	}

	credits := make([]dto.VendorCredit, 0, len(order))
	for _, vendorUserID := range order {
		credits = append(credits, dto.VendorCredit{
			VendorUserID: vendorUserID,
			Amount:       amounts[vendorUserID],
		})
	}
	return credits, nil
}
