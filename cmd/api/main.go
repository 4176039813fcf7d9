package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	accountUseCase "github.com/MrEisbear/Silk/internal/domain/usecase/account"
	authUseCase "github.com/MrEisbear/Silk/internal/domain/usecase/auth"
	giftcodeUseCase "github.com/MrEisbear/Silk/internal/domain/usecase/giftcode"
	jobUseCase "github.com/MrEisbear/Silk/internal/domain/usecase/job"
	ledgerUseCase "github.com/MrEisbear/Silk/internal/domain/usecase/ledger"
	paytokenUseCase "github.com/MrEisbear/Silk/internal/domain/usecase/paytoken"
	pinUseCase "github.com/MrEisbear/Silk/internal/domain/usecase/pin"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"

	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/handler"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/routes"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/database"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/logger"
	timeProvider "github.com/MrEisbear/Silk/internal/infrastructure/adapter/time"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/webhook"
	"github.com/MrEisbear/Silk/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Apply the configured amount limits before any validation runs
	applyAmountLimits(cfg, appLogger)

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations and seed data
	if err := dbManager.Migrate(context.Background()); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Unit of work (transaction manager)
	uow := dbManager.CreateUnitOfWork()

	// Initialize use cases
	authService := authUseCase.NewService(uow, tp, appLogger, authUseCase.Config{
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	})
	accountService := accountUseCase.NewService(uow, tp, appLogger, accountUseCase.Config{
		NumberPrefix: cfg.Account.NumberPrefix,
	})
	pinService := pinUseCase.NewService(uow, tp, appLogger, pinUseCase.Config{
		LockoutThreshold: cfg.Pin.LockoutThreshold,
		LockoutDuration:  cfg.Pin.LockoutDuration,
	})
	ledgerService := ledgerUseCase.NewService(uow, tp, appLogger, ledgerUseCase.Config{
		TaxRates:           parseTaxRates(cfg.Ledger.TaxRates, appLogger),
		TaxSinkAccountUUID: cfg.Ledger.TaxSinkAccountUUID,
		SalaryCooldown:     cfg.Ledger.SalaryCooldown,
	})
	giftCodeService := giftcodeUseCase.NewService(uow, tp, appLogger, giftcodeUseCase.Config{
		TTL: cfg.GiftCode.TTL,
	})
	jobService := jobUseCase.NewService(uow, tp, appLogger, jobUseCase.Config{
		SalaryCooldown: cfg.Ledger.SalaryCooldown,
	})
	tokenService := paytokenUseCase.NewService(
		uow,
		tp,
		appLogger,
		pinService,
		ledgerService,
		webhook.NewHTTPNotifier(appLogger),
		paytokenUseCase.Config{
			TTL:                 cfg.PayToken.TTL,
			WebhookMaxLength:    cfg.PayToken.WebhookMaxLength,
			WebhookAllowedHosts: cfg.PayToken.WebhookAllowedHosts,
		},
	)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, appLogger),
		Account:  handler.NewAccountHandler(accountService, pinService, appLogger),
		Ledger:   handler.NewLedgerHandler(ledgerService, appLogger),
		GiftCode: handler.NewGiftCodeHandler(giftCodeService, appLogger),
		PayToken: handler.NewPayTokenHandler(tokenService, appLogger),
		Job:      handler.NewJobHandler(jobService, appLogger),
	}, authService, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// applyAmountLimits pushes the configured movement ceiling and fraction-digit
// limit into the amount validators. An unparsable ceiling keeps the default.
func applyAmountLimits(cfg *config.Config, appLogger coreport.Logger) {
	ceiling := decimal.Zero
	if cfg.Ledger.MaxAmount != "" {
		parsed, err := decimal.NewFromString(cfg.Ledger.MaxAmount)
		if err != nil {
			appLogger.Warn("Ignoring invalid ledger.maxAmount", map[string]any{
				"value": cfg.Ledger.MaxAmount,
			})
		} else {
			ceiling = parsed
		}
	}
	entity.SetAmountLimits(ceiling, cfg.Ledger.FractionDigits)
}

// parseTaxRates converts configured rate strings into decimals, skipping
// entries that do not parse
func parseTaxRates(raw map[string]string, appLogger coreport.Logger) map[string]decimal.Decimal {
	rates := make(map[string]decimal.Decimal, len(raw))
	for category, value := range raw {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			appLogger.Warn("Skipping invalid tax rate", map[string]any{
				"category": category,
				"value":    value,
			})
			continue
		}
		rates[category] = rate
	}
	return rates
}
