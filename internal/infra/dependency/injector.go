// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pluto-finance/ledger/config"
	"github.com/pluto-finance/ledger/internal/application/usecase/account"
	"github.com/pluto-finance/ledger/internal/application/usecase/transaction"
	"github.com/pluto-finance/ledger/internal/infra/server/router"
	"github.com/pluto-finance/ledger/internal/integration/entrypoint/controller"
	"github.com/pluto-finance/ledger/internal/integration/entrypoint/middleware"
	"github.com/pluto-finance/ledger/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories over one store so watchers see every write
	store := persistence.NewStore(db)
	accountRepo := persistence.NewAccountRepository(store)
	transactionRepo := persistence.NewTransactionRepository(store)

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)

	// Create transaction use cases
	monthViewUseCase := transaction.NewMonthViewUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		},
	)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		createAccountUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
	)

	transactionController := controller.NewTransactionController(
		monthViewUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		transactionRepo,
		accountRepo,
	)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(redisClient, 10000, 1*time.Minute)
	} else {
		rateLimiter = middleware.NewRateLimiter(redisClient)
	}

	r := router.NewRouter(healthController, accountController, transactionController, rateLimiter)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}
}
