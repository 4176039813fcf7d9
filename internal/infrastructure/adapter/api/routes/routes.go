package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/handler"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/api/middleware"
)

// Handlers bundles every HTTP handler the router needs
type Handlers struct {
	Auth     *handler.AuthHandler
	Account  *handler.AccountHandler
	Ledger   *handler.LedgerHandler
	GiftCode *handler.GiftCodeHandler
	PayToken *handler.PayTokenHandler
	Job      *handler.JobHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	handlers Handlers,
	authService usecase.AuthUseCase,
	logger coreport.Logger,
) {
	// Public routes
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", handlers.Auth.Register)
		authRoutes.POST("/login", handlers.Auth.Login)
	}

	// Authenticated routes
	authenticated := router.Group("/")
	authenticated.Use(middleware.RequireAuth(authService, logger))
	{
		authenticated.GET("/me", handlers.Auth.Me)

		accountRoutes := authenticated.Group("/accounts")
		{
			accountRoutes.POST("", handlers.Account.Create)
			accountRoutes.GET("", handlers.Account.List)
			accountRoutes.GET("/:uuid", handlers.Account.Get)
			accountRoutes.PUT("/:uuid/frozen", handlers.Account.SetFrozen)
			accountRoutes.GET("/:uuid/transactions", handlers.Account.ListTransactions)
			accountRoutes.POST("/:uuid/pin", handlers.Account.SetPin)
			accountRoutes.GET("/:uuid/pin", handlers.Account.PinStatus)
		}

		authenticated.GET("/lookup/:reference", handlers.Account.Lookup)
		authenticated.GET("/transactions/:uuid", handlers.Account.GetTransaction)

		authenticated.POST("/transfers", handlers.Ledger.Transfer)
		authenticated.POST("/payments", handlers.Ledger.Pay)
		authenticated.POST("/salary/claim", handlers.Ledger.ClaimSalary)
		authenticated.GET("/jobs/summary", handlers.Job.Summary)

		giftCodeRoutes := authenticated.Group("/giftcodes")
		{
			giftCodeRoutes.POST("", handlers.GiftCode.Issue)
			giftCodeRoutes.POST("/redeem", handlers.GiftCode.Redeem)
		}

		tokenRoutes := authenticated.Group("/tokens")
		{
			tokenRoutes.POST("", handlers.PayToken.Issue)
			tokenRoutes.GET("/:token", handlers.PayToken.Status)
			tokenRoutes.POST("/:token/consume", handlers.PayToken.Consume)
			tokenRoutes.POST("/:token/cancel", handlers.PayToken.Cancel)
		}

		// Administrative routes
		adminRoutes := authenticated.Group("/admin")
		adminRoutes.Use(middleware.RequirePrivileged())
		{
			adminRoutes.POST("/adjustments", handlers.Ledger.AdminAdjust)
			adminRoutes.POST("/giftcodes", handlers.GiftCode.IssueSystem)
			adminRoutes.POST("/jobs", handlers.Job.Create)
			adminRoutes.PUT("/users/:id/jobs/:jobId", handlers.Job.Assign)
			adminRoutes.DELETE("/users/:id/jobs/:jobId", handlers.Job.Unassign)
			adminRoutes.PUT("/users/:id/ban", handlers.Auth.SetBanned)
			adminRoutes.DELETE("/users/:id", handlers.Auth.DeleteUser)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
