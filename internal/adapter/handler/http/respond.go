package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
	pkgErrors "github.com/osikani/marketplace-payments/pkg/errors"
)

// respondError translates domain and application errors into JSON error
// responses. Unrecognized errors become 500s and are logged.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	var insufficient *domainErrors.InsufficientFundsError
	var appErr *pkgErrors.AppError

	switch {
	case errors.Is(err, domainErrors.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	case errors.Is(err, domainErrors.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	case errors.Is(err, domainErrors.ErrPaymentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
	case errors.Is(err, domainErrors.ErrWalletNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Wallet not found"})
	case errors.Is(err, domainErrors.ErrRecipientNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Transfer recipient not found"})
	case errors.Is(err, domainErrors.ErrJobNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Job not found"})
	case errors.Is(err, domainErrors.ErrJobNotCompleted):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Transfer job has not completed"})
	case errors.Is(err, domainErrors.ErrAlreadySettled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "Already processed"})
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": insufficient.Error()})
	case errors.As(err, &appErr):
		return c.JSON(pkgErrors.ToHTTPStatus(appErr.Code()), echo.Map{
			"error": appErr.Error(),
			"code":  appErr.Code(),
		})
	default:
		pkgErrors.LogError(logger, err, "request failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}
