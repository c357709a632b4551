package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/osikani/marketplace-payments/internal/adapter/repository"
	domainRepo "github.com/osikani/marketplace-payments/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	User       domainRepo.UserRepository
	Order      domainRepo.OrderRepository
	Payment    domainRepo.PaymentRepository
	Product    domainRepo.ProductRepository
	Wallet     domainRepo.WalletRepository
	Recipient  domainRepo.RecipientRepository
	Settlement domainRepo.SettlementRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		User:       repository.NewUserRepository(db, logger),
		Order:      repository.NewOrderRepository(db, logger),
		Payment:    repository.NewPaymentRepository(db, logger),
		Product:    repository.NewProductRepository(db, logger),
		Wallet:     repository.NewWalletRepository(db, logger),
		Recipient:  repository.NewRecipientRepository(db, logger),
		Settlement: repository.NewSettlementRepository(db, logger),
	}
}
