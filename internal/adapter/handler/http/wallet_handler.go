package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/domain/dto"
	"github.com/osikani/marketplace-payments/internal/middleware/auth"
	"github.com/osikani/marketplace-payments/internal/usecase"
)

// WalletHandler handles wallet balance, top-up and transfer endpoints.
type WalletHandler struct {
	usecase *usecase.WalletService
	logger  *zap.Logger
}

// NewWalletHandler creates a new WalletHandler instance
func NewWalletHandler(usecase *usecase.WalletService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// GetBalance returns the caller's wallet balance.
func (h *WalletHandler) GetBalance(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	resp, err := h.usecase.GetBalance(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// CreateWallet provisions a wallet for the caller.
func (h *WalletHandler) CreateWallet(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	wallet, err := h.usecase.CreateWallet(c.Request().Context(), user.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, wallet)
}

// Topup queues a gateway charge that credits the caller's wallet once the
// webhook confirms it.
func (h *WalletHandler) Topup(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.TopupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !req.Amount.IsPositive() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Amount must be positive"})
	}

	resp, err := h.usecase.Topup(c.Request().Context(), user.UserID, user.Email, &req)
	if err != nil {
		h.logger.Error("Failed to queue wallet top-up",
			zap.String("user_id", user.UserID.String()),
			zap.Error(err))
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusAccepted, resp)
}

// InitiateTransfer queues a wallet-to-wallet transfer.
func (h *WalletHandler) InitiateTransfer(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if !req.Amount.IsPositive() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Amount must be positive"})
	}

	resp, err := h.usecase.InitiateTransfer(c.Request().Context(), user.UserID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusAccepted, resp)
}

// FinalizeTransfer completes a queued transfer and settles both wallets.
func (h *WalletHandler) FinalizeTransfer(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req dto.FinalizeTransferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.usecase.FinalizeTransfer(c.Request().Context(), user.UserID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, resp)
}
