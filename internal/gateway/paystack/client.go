package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/config"
	"github.com/osikani/marketplace-payments/internal/domain/provider"
	"github.com/osikani/marketplace-payments/pkg/errors"
)

const defaultBaseURL = "https://api.paystack.co"

// minorUnitFactor converts major currency units to the gateway's minor
// unit (pesewas/kobo).
var minorUnitFactor = decimal.NewFromInt(100)

// Client implements provider.PaymentGateway against the Paystack REST API.
// It holds no state beyond credentials and transport configuration.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ provider.PaymentGateway = (*Client)(nil)

// NewClient creates a gateway client from config.
func NewClient(cfg *config.PaystackConfig, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   baseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// do executes one request against the gateway and unmarshals the data
// portion of the envelope into out. A transport failure, a non-2xx status
// or status=false in the envelope all surface as BAD_GATEWAY.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.NewAppError(errors.ErrInternal, "failed to encode gateway request", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.NewAppError(errors.ErrInternal, "failed to build gateway request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("gateway request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return errors.NewAppError(errors.ErrBadGateway, "payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewAppError(errors.ErrBadGateway, "failed to read gateway response", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return errors.NewAppError(errors.ErrBadGateway, "malformed gateway response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		c.logger.Warn("gateway reported failure",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("gateway_message", env.Message))
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("gateway returned status %d", resp.StatusCode)
		}
		return errors.NewAppError(errors.ErrBadGateway, msg, nil)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.NewAppError(errors.ErrBadGateway, "malformed gateway response data", err)
		}
	}

	return nil
}

// InitializeCharge starts a charge and returns the authorization URL plus
// the correlation reference.
func (c *Client) InitializeCharge(ctx context.Context, req *provider.InitializeChargeRequest) (*provider.InitializeChargeResponse, error) {
	payload := map[string]interface{}{
		"email":   req.Email,
		"amount":  req.Amount.Mul(minorUnitFactor).IntPart(),
		"channel": req.Channel,
		"metadata": map[string]interface{}{
			"custom_fields": []map[string]string{
				{"display_name": req.DisplayName},
			},
		},
	}

	var out provider.InitializeChargeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyCharge re-checks a charge with the gateway.
func (c *Client) VerifyCharge(ctx context.Context, reference string) (*provider.VerifyChargeResponse, error) {
	var raw rawTransaction
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &raw); err != nil {
		return nil, err
	}

	return &provider.VerifyChargeResponse{
		Reference: raw.Reference,
		Amount:    decimal.NewFromInt(raw.Amount).Div(minorUnitFactor),
		Status:    raw.Status,
		PaidAt:    raw.PaidAt,
		Channel:   raw.Channel,
	}, nil
}

// CreateTransferRecipient registers a payout destination.
func (c *Client) CreateTransferRecipient(ctx context.Context, req *provider.CreateRecipientRequest) (*provider.Recipient, error) {
	currency := req.Currency
	if currency == "" {
		currency = "GHS"
	}
	payload := map[string]interface{}{
		"type":           req.Type,
		"name":           req.Name,
		"account_number": req.AccountNumber,
		"bank_code":      req.BankCode,
		"currency":       currency,
	}

	var raw rawRecipient
	if err := c.do(ctx, http.MethodPost, "/transferrecipient", payload, &raw); err != nil {
		return nil, err
	}
	return toRecipient(&raw), nil
}

// ListTransferRecipients returns all registered recipients.
func (c *Client) ListTransferRecipients(ctx context.Context) ([]provider.Recipient, error) {
	var raw []rawRecipient
	if err := c.do(ctx, http.MethodGet, "/transferrecipient", nil, &raw); err != nil {
		return nil, err
	}

	recipients := make([]provider.Recipient, 0, len(raw))
	for i := range raw {
		recipients = append(recipients, *toRecipient(&raw[i]))
	}
	return recipients, nil
}

// UpdateTransferRecipient renames a recipient.
func (c *Client) UpdateTransferRecipient(ctx context.Context, recipientCode, name string) (*provider.Recipient, error) {
	payload := map[string]string{"name": name}

	var raw rawRecipient
	if err := c.do(ctx, http.MethodPut, "/transferrecipient/"+recipientCode, payload, &raw); err != nil {
		return nil, err
	}
	return toRecipient(&raw), nil
}

// InitiateTransfer moves platform balance to a recipient.
func (c *Client) InitiateTransfer(ctx context.Context, req *provider.InitiateTransferRequest) (*provider.TransferResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = "GHS"
	}
	reason := req.Reason
	if reason == "" {
		reason = "Wallet payout"
	}
	payload := map[string]interface{}{
		"source":    "balance",
		"amount":    req.Amount.Mul(minorUnitFactor).IntPart(),
		"recipient": req.Recipient,
		"reason":    reason,
		"currency":  currency,
	}

	return c.transferCall(ctx, "/transfer", payload)
}

// FinalizeTransfer completes a transfer, supplying the OTP when the
// gateway demanded one.
func (c *Client) FinalizeTransfer(ctx context.Context, transferCode, otp string) (*provider.TransferResult, error) {
	payload := map[string]string{
		"transfer_code": transferCode,
	}
	if otp != "" {
		payload["otp"] = otp
	}

	return c.transferCall(ctx, "/transfer/finalize_transfer", payload)
}

func (c *Client) transferCall(ctx context.Context, path string, payload interface{}) (*provider.TransferResult, error) {
	var raw rawTransfer
	if err := c.do(ctx, http.MethodPost, path, payload, &raw); err != nil {
		return nil, err
	}

	return &provider.TransferResult{
		TransferCode: raw.TransferCode,
		Amount:       decimal.NewFromInt(raw.Amount).Div(minorUnitFactor),
		Currency:     raw.Currency,
		Status:       raw.Status,
		Reason:       raw.Reason,
	}, nil
}

// ListBanks returns the gateway's supported banks.
func (c *Client) ListBanks(ctx context.Context) ([]provider.Bank, error) {
	var out []provider.Bank
	if err := c.do(ctx, http.MethodGet, "/bank", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toRecipient(raw *rawRecipient) *provider.Recipient {
	return &provider.Recipient{
		RecipientCode: raw.RecipientCode,
		Name:          raw.Name,
		Currency:      raw.Currency,
		AccountNumber: raw.Details.AccountNumber,
		BankName:      raw.Details.BankName,
		BankCode:      raw.Details.BankCode,
	}
}
