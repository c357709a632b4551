package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	"github.com/osikani/marketplace-payments/internal/domain/model"
	"github.com/osikani/marketplace-payments/internal/domain/repository"
	"github.com/osikani/marketplace-payments/internal/queue"
	pkgErrors "github.com/osikani/marketplace-payments/pkg/errors"
)

// OrderService handles order placement and job status lookups.
type OrderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	queue     queue.Queue
	logger    *zap.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, q queue.Queue, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		queue:     q,
		logger:    logger,
	}
}

// PlaceOrder creates the order, its pending payment and the
// payment-initialization job as one unit. The gateway is never called
// here; the response carries a job id the client polls for the
// authorization URL.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, email string, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	consumer, err := s.userRepo.GetConsumerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ConsumerID:    consumer.ID,
		TotalPrice:    req.TotalAmount,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		Contact:       req.Contact,
		DeliveryOption: &model.DeliveryOption{
			Type:     req.DeliveryType,
			Fee:      req.DeliveryFee,
			Unit:     req.UnitOfDelivery,
			Duration: req.DeliveryDuration,
		},
	}
	if req.ReferralCode != "" {
		order.ReferralCode = &req.ReferralCode
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	payment := &model.Payment{
		UserID:        userID,
		Amount:        req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		Status:        model.PaymentStatusPending,
	}

	jobID, err := s.orderRepo.CreateWithPayment(ctx, order, payment, func(ctx context.Context, paymentID uuid.UUID) (string, error) {
		job, err := s.queue.Enqueue(ctx, queue.JobInitializePayment, queue.InitializePaymentPayload{
			PaymentID:     paymentID,
			Email:         email,
			Amount:        req.TotalAmount,
			PaymentMethod: req.PaymentMethod,
			DisplayName:   model.DisplayNameOrderPayment,
		})
		if err != nil {
			return "", err
		}
		return job.ID, nil
	})
	if err != nil {
		return nil, pkgErrors.Wrap(err, "failed to place order")
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("job_id", jobID))

	return &dto.PlaceOrderResponse{
		Message:       "Order created, payment initialization queued",
		OrderID:       order.ID,
		PaymentStatus: model.PaymentStatusPending,
		JobID:         jobID,
	}, nil
}

// CheckJobStatus returns the current state of a background job, including
// its return value once the worker finished.
func (s *OrderService) CheckJobStatus(ctx context.Context, jobID string) (*queue.Job, error) {
	return s.queue.GetJob(ctx, jobID)
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	consumer, err := s.userRepo.GetConsumerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.ListByConsumer(ctx, consumer.ID)
}
