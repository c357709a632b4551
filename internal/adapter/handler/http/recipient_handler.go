package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	"github.com/osikani/marketplace-payments/internal/middleware/auth"
	"github.com/osikani/marketplace-payments/internal/usecase"
)

// RecipientHandler handles transfer recipient and bank list endpoints.
type RecipientHandler struct {
	usecase *usecase.RecipientService
	logger  *zap.Logger
}

// NewRecipientHandler creates a new RecipientHandler instance
func NewRecipientHandler(usecase *usecase.RecipientService, logger *zap.Logger) *RecipientHandler {
	return &RecipientHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// CreateRecipient registers a payout destination for the caller.
func (h *RecipientHandler) CreateRecipient(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.CreateRecipientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	recipient, err := h.usecase.CreateRecipient(c.Request().Context(), user.UserID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, recipient)
}

// ListRecipients returns the registered recipients.
func (h *RecipientHandler) ListRecipients(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	recipients, err := h.usecase.ListRecipients(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, recipients)
}

// UpdateRecipient renames a recipient.
func (h *RecipientHandler) UpdateRecipient(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	var req dto.UpdateRecipientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	recipient, err := h.usecase.UpdateRecipient(c.Request().Context(), c.Param("code"), req.Name)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, recipient)
}

// ListBanks returns the gateway's supported banks.
func (h *RecipientHandler) ListBanks(c echo.Context) error {
	banks, err := h.usecase.ListBanks(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, banks)
}
