package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
)

const webhookSecret = "sk_test_secret"

type MockChargeSettler struct {
	mock.Mock
}

func (m *MockChargeSettler) HandleChargeSuccess(ctx context.Context, event *dto.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func sign(body string) string {
	mac := hmac.New(sha512.New, []byte(webhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func deliver(t *testing.T, settler *MockChargeSettler, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewWebhookHandler(settler, webhookSecret, zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhooks/paystack", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(signatureHeader, signature)
	}
	rec := httptest.NewRecorder()

	err := handler.Handle(e.NewContext(req, rec))
	assert.NoError(t, err)
	return rec
}

const chargeSuccessBody = `{
	"event": "charge.success",
	"data": {
		"reference": "ref-xyz",
		"amount": 15050,
		"status": "success",
		"metadata": {"custom_fields": [{"display_name": "ORDER_PAYMENT"}]}
	}
}`

func TestWebhook_ValidSignatureSettles(t *testing.T) {
	settler := new(MockChargeSettler)
	settler.On("HandleChargeSuccess", mock.Anything, mock.MatchedBy(func(e *dto.WebhookEvent) bool {
		return e.Data.Reference == "ref-xyz" && e.DisplayName() == "ORDER_PAYMENT"
	})).Return(nil)

	rec := deliver(t, settler, chargeSuccessBody, sign(chargeSuccessBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "success")
	settler.AssertExpectations(t)
}

func TestWebhook_InvalidSignatureRejected(t *testing.T) {
	settler := new(MockChargeSettler)

	rec := deliver(t, settler, chargeSuccessBody, "deadbeef")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid signature")
	settler.AssertNotCalled(t, "HandleChargeSuccess", mock.Anything, mock.Anything)
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	settler := new(MockChargeSettler)

	rec := deliver(t, settler, chargeSuccessBody, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	settler.AssertNotCalled(t, "HandleChargeSuccess", mock.Anything, mock.Anything)
}

func TestWebhook_SignatureOverDifferentBodyRejected(t *testing.T) {
	settler := new(MockChargeSettler)

	rec := deliver(t, settler, chargeSuccessBody, sign(`{"event":"charge.success"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	settler.AssertNotCalled(t, "HandleChargeSuccess", mock.Anything, mock.Anything)
}

func TestWebhook_ReplayAcknowledgedAsProcessed(t *testing.T) {
	settler := new(MockChargeSettler)
	settler.On("HandleChargeSuccess", mock.Anything, mock.Anything).
		Return(domainErrors.ErrAlreadySettled)

	rec := deliver(t, settler, chargeSuccessBody, sign(chargeSuccessBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Already processed")
}

func TestWebhook_UnverifiedCharge(t *testing.T) {
	settler := new(MockChargeSettler)
	settler.On("HandleChargeSuccess", mock.Anything, mock.Anything).
		Return(domainErrors.ErrPaymentNotVerified)

	rec := deliver(t, settler, chargeSuccessBody, sign(chargeSuccessBody))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment not verified")
}

func TestWebhook_UnknownPaymentIs404(t *testing.T) {
	settler := new(MockChargeSettler)
	settler.On("HandleChargeSuccess", mock.Anything, mock.Anything).
		Return(domainErrors.ErrPaymentNotFound)

	rec := deliver(t, settler, chargeSuccessBody, sign(chargeSuccessBody))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhook_TransferFailedEvent(t *testing.T) {
	settler := new(MockChargeSettler)

	body := `{"event": "transfer.failed", "data": {"reference": "xfer-1"}}`
	rec := deliver(t, settler, body, sign(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	settler.AssertNotCalled(t, "HandleChargeSuccess", mock.Anything, mock.Anything)
}

func TestWebhook_TransferReversedAcknowledged(t *testing.T) {
	settler := new(MockChargeSettler)

	body := `{"event": "transfer.reversed", "data": {"reference": "xfer-1"}}`
	rec := deliver(t, settler, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	settler.AssertNotCalled(t, "HandleChargeSuccess", mock.Anything, mock.Anything)
}

func TestWebhook_PaymentRequestSuccessAcknowledged(t *testing.T) {
	settler := new(MockChargeSettler)

	body := `{"event": "paymentrequest.success", "data": {"reference": "preq-1"}}`
	rec := deliver(t, settler, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	settler.AssertNotCalled(t, "HandleChargeSuccess", mock.Anything, mock.Anything)
}

func TestWebhook_UnhandledEventAcknowledged(t *testing.T) {
	settler := new(MockChargeSettler)

	body := `{"event": "subscription.create", "data": {}}`
	rec := deliver(t, settler, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	settler.AssertNotCalled(t, "HandleChargeSuccess", mock.Anything, mock.Anything)
}
