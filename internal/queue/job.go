package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// Job types consumed by the settlement worker.
const (
	JobInitializePayment = "initialize-payment"
	JobInitiateTransfer  = "initiate-transfer"
)

// JobState is the lifecycle state of a job.
type JobState string

const (
	JobStateQueued    JobState = "queued"
	JobStateActive    JobState = "active"
	JobStateCompleted JobState = "completed"
	JobStateFailed    JobState = "failed"
)

// Job is a durable unit of asynchronous work. The queue owns its
// lifecycle; the worker is the only writer of ReturnValue and of state
// transitions past queued.
type Job struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	State       JobState        `json:"state"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	ReturnValue json.RawMessage `json:"return_value,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InitializePaymentPayload carries everything the worker needs to start a
// gateway charge and report the reference back onto the payment row.
type InitializePaymentPayload struct {
	PaymentID     uuid.UUID           `json:"payment_id"`
	Email         string              `json:"email"`
	Amount        decimal.Decimal     `json:"amount"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	DisplayName   string              `json:"display_name"`
}

// InitiateTransferPayload carries a queued outbound transfer. The sender
// and recipient user ids ride along so the finalize step can settle the
// wallets without a second lookup.
type InitiateTransferPayload struct {
	SenderUserID    uuid.UUID       `json:"sender_user_id"`
	RecipientUserID uuid.UUID       `json:"recipient_user_id"`
	Amount          decimal.Decimal `json:"amount"`
	RecipientCode   string          `json:"recipient_code"`
	Reason          string          `json:"reason"`
	Reference       string          `json:"reference"`
}

// InitializePaymentResult is stored as the job return value on success.
type InitializePaymentResult struct {
	Message          string `json:"message"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
	Status           string `json:"status"`
}

// InitiateTransferResult is stored as the job return value on success.
type InitiateTransferResult struct {
	Message      string `json:"message"`
	TransferCode string `json:"transfer_code"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}
