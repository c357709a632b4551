package dto

import (
	"github.com/shopspring/decimal"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// TopupRequest starts a gateway charge that credits the caller's wallet on
// webhook confirmation.
type TopupRequest struct {
	Amount        decimal.Decimal     `json:"amount" validate:"required"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,oneof=credit_card debit_card mobile_money bank_transfer"`
}

// TopupResponse carries the job handle for the queued initialization.
type TopupResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// TransferRequest initiates a wallet-to-wallet payout.
type TransferRequest struct {
	RecipientEmail string          `json:"recipient_email" validate:"required,email"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Reason         string          `json:"reason,omitempty"`
}

// TransferResponse carries the job handle plus the transfer reference.
type TransferResponse struct {
	Message   string `json:"message"`
	JobID     string `json:"job_id"`
	Reference string `json:"reference"`
}

// FinalizeTransferRequest completes a transfer once its initiate job has
// finished. OTP is only needed for gateways that demand a confirmation
// step.
type FinalizeTransferRequest struct {
	JobID        string `json:"job_id" validate:"required"`
	TransferCode string `json:"transfer_code" validate:"required"`
	OTP          string `json:"otp,omitempty"`
}

// BalanceResponse reports a wallet balance.
type BalanceResponse struct {
	Message string          `json:"message"`
	Balance decimal.Decimal `json:"balance"`
}
