package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/osikani/marketplace-payments/internal/adapter/handler/http"
	"github.com/osikani/marketplace-payments/internal/config"
	"github.com/osikani/marketplace-payments/internal/domain/provider"
	"github.com/osikani/marketplace-payments/internal/infrastructure/database"
	"github.com/osikani/marketplace-payments/internal/middleware/auth"
	"github.com/osikani/marketplace-payments/internal/queue"
	"github.com/osikani/marketplace-payments/internal/usecase"
	"github.com/osikani/marketplace-payments/pkg/logger"
)

// requestValidator adapts go-playground/validator to echo's Validator
// interface.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	echo    *echo.Echo
	repos   *database.Repositories
	gateway provider.PaymentGateway
	queue   queue.Queue
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories, gateway provider.PaymentGateway, q queue.Queue) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:  cfg,
		logger:  log,
		echo:    e,
		repos:   repos,
		gateway: gateway,
		queue:   q,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Usecases
	orderUsecase := usecase.NewOrderService(s.repos.Order, s.repos.User, s.queue, s.logger)
	settlementUsecase := usecase.NewSettlementService(
		s.gateway, s.repos.Payment, s.repos.Order, s.repos.User,
		s.repos.Product, s.repos.Settlement, s.logger)
	walletUsecase := usecase.NewWalletService(
		s.repos.Wallet, s.repos.Payment, s.repos.User, s.repos.Recipient,
		s.gateway, s.queue, s.logger)
	recipientUsecase := usecase.NewRecipientService(s.repos.Recipient, s.gateway, s.logger)

	// Handlers
	orderHandler := handlers.NewOrderHandler(orderUsecase, s.logger)
	jobHandler := handlers.NewJobHandler(orderUsecase, s.logger)
	walletHandler := handlers.NewWalletHandler(walletUsecase, s.logger)
	recipientHandler := handlers.NewRecipientHandler(recipientUsecase, s.logger)
	webhookHandler := handlers.NewWebhookHandler(settlementUsecase, s.config.Service.Paystack.SecretKey, s.logger)

	// Webhook ingest is public; authenticity comes from the HMAC
	// signature, not a bearer token.
	s.echo.POST("/payments/webhooks/paystack", webhookHandler.Handle)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/payments/webhooks",
		},
	}

	v1 := s.echo.Group("/api/v1")

	// Bank list is public for recipient registration forms.
	v1.GET("/banks", recipientHandler.ListBanks)

	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	protected.POST("/orders", orderHandler.PlaceOrder)
	protected.GET("/orders", orderHandler.ListOrders)
	protected.GET("/jobs/:id", jobHandler.GetJob)

	wallets := protected.Group("/wallets")
	wallets.POST("", walletHandler.CreateWallet)
	wallets.GET("/balance", walletHandler.GetBalance)
	wallets.POST("/topup", walletHandler.Topup)
	wallets.POST("/transfers", walletHandler.InitiateTransfer)
	wallets.POST("/transfers/finalize", walletHandler.FinalizeTransfer)

	recipients := protected.Group("/recipients")
	recipients.POST("", recipientHandler.CreateRecipient)
	recipients.GET("", recipientHandler.ListRecipients)
	recipients.PUT("/:code", recipientHandler.UpdateRecipient)
}
