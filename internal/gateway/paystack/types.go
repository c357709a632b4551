package paystack

import "encoding/json"

// envelope is the common response wrapper of the gateway API.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Wire-level shapes with minor-unit amounts; converted to provider types
// at the client surface.

type rawTransaction struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	PaidAt    string `json:"paid_at"`
	Channel   string `json:"channel"`
}

type rawRecipient struct {
	RecipientCode string `json:"recipient_code"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	Details       struct {
		AccountNumber string `json:"account_number"`
		BankName      string `json:"bank_name"`
		BankCode      string `json:"bank_code"`
	} `json:"details"`
}

type rawTransfer struct {
	TransferCode string `json:"transfer_code"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
}
