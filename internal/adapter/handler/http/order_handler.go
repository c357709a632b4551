package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	"github.com/osikani/marketplace-payments/internal/middleware/auth"
	"github.com/osikani/marketplace-payments/internal/usecase"
)

// OrderHandler handles order placement and listing.
type OrderHandler struct {
	usecase *usecase.OrderService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler instance
func NewOrderHandler(usecase *usecase.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// PlaceOrder creates an order and queues its payment initialization.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err // RequireAuth already returns the JSON error response
	}

	var req dto.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.usecase.PlaceOrder(c.Request().Context(), user.UserID, user.Email, &req)
	if err != nil {
		h.logger.Error("Failed to place order",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// ListOrders returns the caller's orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	orders, err := h.usecase.ListOrders(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, orders)
}
