package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/model"
	"github.com/osikani/marketplace-payments/internal/domain/provider"
	"github.com/osikani/marketplace-payments/internal/domain/repository"
	"github.com/osikani/marketplace-payments/internal/queue"
)

const reclaimInterval = 30 * time.Second

// Worker is the long-running consumer of payment jobs. One job at a time
// per instance; horizontal scaling happens by running more instances
// against the same queue. Retries are a queue-level policy (lease expiry
// redelivery), never worker logic.
type Worker struct {
	queue       queue.Queue
	gateway     provider.PaymentGateway
	paymentRepo repository.PaymentRepository
	logger      *zap.Logger
}

// NewWorker creates a settlement worker.
func NewWorker(q queue.Queue, gateway provider.PaymentGateway, paymentRepo repository.PaymentRepository, logger *zap.Logger) *Worker {
	return &Worker{
		queue:       q,
		gateway:     gateway,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Run consumes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("settlement worker started")

	reclaimTicker := time.NewTicker(reclaimInterval)
	defer reclaimTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("settlement worker stopping")
			return ctx.Err()
		case <-reclaimTicker.C:
			if n, err := w.queue.ReclaimExpired(ctx); err != nil {
				w.logger.Error("lease reclaim failed", zap.Error(err))
			} else if n > 0 {
				w.logger.Info("requeued expired jobs", zap.Int("count", n))
			}
		default:
		}

		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("dequeue failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		w.Process(ctx, job)
	}
}

// Process executes one job and stores its outcome on the job record.
func (w *Worker) Process(ctx context.Context, job *queue.Job) {
	w.logger.Info("processing job",
		zap.String("job_id", job.ID),
		zap.String("job_type", job.Type))

	var err error
	switch job.Type {
	case queue.JobInitializePayment:
		err = w.processInitializePayment(ctx, job)
	case queue.JobInitiateTransfer:
		err = w.processInitiateTransfer(ctx, job)
	default:
		err = fmt.Errorf("unknown job type %q", job.Type)
	}

	if err != nil {
		w.logger.Error("job failed",
			zap.String("job_id", job.ID),
			zap.String("job_type", job.Type),
			zap.Error(err))
		if failErr := w.queue.Fail(ctx, job.ID, err.Error()); failErr != nil {
			w.logger.Error("failed to mark job failed",
				zap.String("job_id", job.ID),
				zap.Error(failErr))
		}
	}
}

func (w *Worker) processInitializePayment(ctx context.Context, job *queue.Job) error {
	var payload queue.InitializePaymentPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}

	resp, err := w.gateway.InitializeCharge(ctx, &provider.InitializeChargeRequest{
		Email:       payload.Email,
		Amount:      payload.Amount,
		Channel:     ChannelForPaymentMethod(payload.PaymentMethod),
		DisplayName: payload.DisplayName,
	})
	if err != nil {
		return err
	}

	// The reference lands on the payment row before the job is marked
	// completed, so a client that sees state=completed can rely on the
	// payment being correlatable by the webhook.
	if err := w.paymentRepo.SetInitReference(ctx, payload.PaymentID, resp.Reference); err != nil {
		return fmt.Errorf("failed to record init reference: %w", err)
	}

	result := queue.InitializePaymentResult{
		Message:          "Payment initialized successfully",
		AuthorizationURL: resp.AuthorizationURL,
		AccessCode:       resp.AccessCode,
		Reference:        resp.Reference,
		Status:           resp.Status,
	}
	if err := w.queue.Complete(ctx, job.ID, result); err != nil {
		return fmt.Errorf("failed to store job result: %w", err)
	}

	w.logger.Info("payment initialization completed",
		zap.String("job_id", job.ID),
		zap.String("reference", resp.Reference))
	return nil
}

func (w *Worker) processInitiateTransfer(ctx context.Context, job *queue.Job) error {
	var payload queue.InitiateTransferPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}

	resp, err := w.gateway.InitiateTransfer(ctx, &provider.InitiateTransferRequest{
		Amount:    payload.Amount,
		Recipient: payload.RecipientCode,
		Reason:    payload.Reason,
	})
	if err != nil {
		return err
	}

	result := queue.InitiateTransferResult{
		Message:      "Transfer initiated successfully",
		TransferCode: resp.TransferCode,
		Amount:       resp.Amount.String(),
		Currency:     resp.Currency,
		Status:       resp.Status,
	}
	if err := w.queue.Complete(ctx, job.ID, result); err != nil {
		return fmt.Errorf("failed to store job result: %w", err)
	}

	w.logger.Info("transfer initiation completed",
		zap.String("job_id", job.ID),
		zap.String("transfer_code", resp.TransferCode))
	return nil
}

// ChannelForPaymentMethod maps the internal payment method vocabulary to
// the gateway's channel vocabulary. Cash on delivery has no real gateway
// flow and is sent as mobile money, matching how the platform has always
// charged it.
func ChannelForPaymentMethod(method model.PaymentMethod) provider.Channel {
	switch method {
	case model.PaymentMethodBankTransfer:
		return provider.ChannelBankTransfer
	case model.PaymentMethodCreditCard, model.PaymentMethodDebitCard:
		return provider.ChannelCard
	case model.PaymentMethodMobileMoney:
		return provider.ChannelMobileMoney
	case model.PaymentMethodCashOnDelivery:
		return provider.ChannelMobileMoney
	default:
		return provider.ChannelMobileMoney
	}
}
