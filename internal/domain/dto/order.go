package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osikani/marketplace-payments/internal/domain/model"
)

// OrderItemRequest is one line item of a placement request.
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price" validate:"required"`
}

// PlaceOrderRequest is the order placement payload.
type PlaceOrderRequest struct {
	Address          string              `json:"address" validate:"required"`
	Contact          string              `json:"contact" validate:"required"`
	TotalAmount      decimal.Decimal     `json:"total_amount" validate:"required"`
	PaymentMethod    model.PaymentMethod `json:"payment_method" validate:"required,oneof=credit_card debit_card mobile_money bank_transfer cash_on_delivery"`
	ReferralCode     string              `json:"referral_code,omitempty"`
	Items            []OrderItemRequest  `json:"items" validate:"required,min=1,dive"`
	DeliveryType     string              `json:"delivery_type" validate:"required,oneof=standard express other"`
	DeliveryFee      decimal.Decimal     `json:"delivery_fee"`
	UnitOfDelivery   string              `json:"unit_of_delivery" validate:"omitempty,oneof=days hours"`
	DeliveryDuration int                 `json:"delivery_duration"`
}

// PlaceOrderResponse is returned before the gateway round trip completes;
// clients poll the job to learn the authorization URL.
type PlaceOrderResponse struct {
	Message       string              `json:"message"`
	OrderID       uuid.UUID           `json:"order_id"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	JobID         string              `json:"job_id"`
}
