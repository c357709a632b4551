package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
)

const signatureHeader = "X-Paystack-Signature"

// ChargeSettler settles verified charge confirmations.
type ChargeSettler interface {
	HandleChargeSuccess(ctx context.Context, event *dto.WebhookEvent) error
}

// WebhookHandler ingests gateway webhook events. The endpoint is public;
// authenticity comes from the HMAC signature over the raw body, and the
// charge itself is re-verified against the gateway before settlement.
type WebhookHandler struct {
	settlement ChargeSettler
	secretKey  string
	logger     *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler instance
func NewWebhookHandler(settlement ChargeSettler, secretKey string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		settlement: settlement,
		secretKey:  secretKey,
		logger:     logger,
	}
}

// Handle processes a gateway webhook delivery.
func (h *WebhookHandler) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Failed to read request body",
		})
	}

	if !h.verifySignature(body, c.Request().Header.Get(signatureHeader)) {
		h.logger.Warn("Webhook signature verification failed")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid signature",
		})
	}

	var event dto.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Warn("Failed to parse webhook payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid webhook payload",
		})
	}

	h.logger.Info("Processing webhook event",
		zap.String("event", event.Event),
		zap.String("reference", event.Data.Reference))

	switch event.Event {
	case dto.EventChargeSuccess:
		return h.handleChargeSuccess(c, &event)
	case dto.EventTransferSuccess, dto.EventTransferReversed, dto.EventPaymentRequestSuccess:
		// Reversals are acknowledged like successes so the gateway stops
		// retrying; the reversal itself is settled gateway-side.
		h.logger.Info("Acknowledging gateway event",
			zap.String("event", event.Event),
			zap.String("reference", event.Data.Reference))
		return c.JSON(http.StatusOK, echo.Map{"message": "success"})
	case dto.EventTransferFailed:
		h.logger.Warn("Transfer failed at gateway",
			zap.String("reference", event.Data.Reference))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Transfer failed",
		})
	default:
		h.logger.Info("Ignoring webhook event",
			zap.String("event", event.Event))
		return c.JSON(http.StatusOK, echo.Map{"message": "success"})
	}
}

func (h *WebhookHandler) handleChargeSuccess(c echo.Context, event *dto.WebhookEvent) error {
	err := h.settlement.HandleChargeSuccess(c.Request().Context(), event)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "success"})
	case errors.Is(err, domainErrors.ErrAlreadySettled):
		// Replays are acknowledged so the gateway stops retrying.
		return c.JSON(http.StatusOK, echo.Map{"message": "Already processed"})
	case errors.Is(err, domainErrors.ErrPaymentNotVerified):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Payment not verified"})
	case errors.Is(err, domainErrors.ErrPaymentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	case errors.Is(err, domainErrors.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	default:
		h.logger.Error("Failed to settle charge",
			zap.String("reference", event.Data.Reference),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to process webhook event",
		})
	}
}

// verifySignature checks the HMAC-SHA512 hex digest of the raw body
// against the signature header in constant time.
func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(h.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
