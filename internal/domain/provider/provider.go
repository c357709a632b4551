package provider

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentGateway is the boundary to the external payment processor. All
// amounts are in major currency units; implementations convert to the
// gateway's minor unit on the wire.
type PaymentGateway interface {
	// InitializeCharge starts a charge and returns the authorization URL
	// plus the correlation reference.
	InitializeCharge(ctx context.Context, req *InitializeChargeRequest) (*InitializeChargeResponse, error)

	// VerifyCharge independently re-checks a charge. Webhook settlement
	// must call this; the webhook body is never trusted as proof.
	VerifyCharge(ctx context.Context, reference string) (*VerifyChargeResponse, error)

	// CreateTransferRecipient registers a payout destination.
	CreateTransferRecipient(ctx context.Context, req *CreateRecipientRequest) (*Recipient, error)

	// ListTransferRecipients returns all registered recipients.
	ListTransferRecipients(ctx context.Context) ([]Recipient, error)

	// UpdateTransferRecipient renames a recipient.
	UpdateTransferRecipient(ctx context.Context, recipientCode, name string) (*Recipient, error)

	// InitiateTransfer moves platform balance to a recipient. Some
	// transfers complete immediately, others return a transfer code that
	// FinalizeTransfer must settle.
	InitiateTransfer(ctx context.Context, req *InitiateTransferRequest) (*TransferResult, error)

	// FinalizeTransfer completes a transfer, supplying the OTP when the
	// gateway demanded one.
	FinalizeTransfer(ctx context.Context, transferCode, otp string) (*TransferResult, error)

	// ListBanks returns the gateway's supported banks.
	ListBanks(ctx context.Context) ([]Bank, error)
}

// Channel is the gateway's payment channel vocabulary.
type Channel string

const (
	ChannelCard         Channel = "card"
	ChannelBankTransfer Channel = "bank_transfer"
	ChannelMobileMoney  Channel = "mobile_money"
)

// RecipientType is the gateway's recipient type vocabulary.
type RecipientType string

const (
	RecipientTypeNuban       RecipientType = "nuban"
	RecipientTypeMobileMoney RecipientType = "mobile_money"
)

// InitializeChargeRequest starts a charge.
type InitializeChargeRequest struct {
	Email       string
	Amount      decimal.Decimal
	Channel     Channel
	DisplayName string
}

// InitializeChargeResponse is the charge initialization result.
type InitializeChargeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
	Status           string `json:"status"`
}

// VerifyChargeResponse is the verification result.
type VerifyChargeResponse struct {
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	PaidAt    string          `json:"paid_at"`
	Channel   string          `json:"channel"`
}

// Success reports whether the gateway confirmed the charge.
func (r *VerifyChargeResponse) Success() bool {
	return r.Status == "success"
}

// CreateRecipientRequest registers a transfer destination.
type CreateRecipientRequest struct {
	Type          RecipientType
	Name          string
	AccountNumber string
	BankCode      string
	Currency      string
}

// Recipient is a gateway transfer destination.
type Recipient struct {
	RecipientCode string `json:"recipient_code"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	BankCode      string `json:"bank_code"`
}

// InitiateTransferRequest moves platform balance to a recipient.
type InitiateTransferRequest struct {
	Amount    decimal.Decimal
	Recipient string
	Reason    string
	Currency  string
}

// TransferResult is the outcome of initiating or finalizing a transfer.
type TransferResult struct {
	TransferCode string          `json:"transfer_code"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
	Reason       string          `json:"reason"`
}

// Bank is one entry of the gateway's bank list.
type Bank struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
}
