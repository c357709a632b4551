package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/middleware/auth"
	"github.com/osikani/marketplace-payments/internal/usecase"
)

// JobHandler exposes background job status polling. Clients poll here for
// the authorization URL after placing an order or starting a top-up.
type JobHandler struct {
	usecase *usecase.OrderService
	logger  *zap.Logger
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(usecase *usecase.OrderService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// GetJob returns a job's state, return value and error message.
func (h *JobHandler) GetJob(c echo.Context) error {
	if _, err := auth.RequireAuth(c); err != nil {
		return err
	}

	job, err := h.usecase.CheckJobStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, job)
}
