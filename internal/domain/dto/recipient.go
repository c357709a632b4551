package dto

import "github.com/osikani/marketplace-payments/internal/domain/model"

// CreateRecipientRequest registers a payout destination with the gateway
// and mirrors it locally.
type CreateRecipientRequest struct {
	AccountNumber string              `json:"account_number" validate:"required"`
	BankCode      string              `json:"bank_code" validate:"required"`
	Name          string              `json:"name" validate:"required"`
	Type          model.PaymentMethod `json:"type" validate:"required,oneof=bank_transfer mobile_money"`
}

// UpdateRecipientRequest renames an existing recipient.
type UpdateRecipientRequest struct {
	Name string `json:"name" validate:"required"`
}
