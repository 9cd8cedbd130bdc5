package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salespoint-api/internal/config"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/internal/presentation/http/handler"
	"github.com/sangkips/salespoint-api/internal/presentation/http/middleware"
	"github.com/sangkips/salespoint-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Category    *handler.CategoryHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Shift       *handler.ShiftHandler
	Transaction *handler.TransactionHandler
	Report      *handler.ReportHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/me", h.Auth.UpdateProfile)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	// Catalog
	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)

	// Members
	registerCustomerRoutes(protected, h)

	// Shifts
	registerShiftRoutes(protected, h)

	// Transactions
	registerTransactionRoutes(protected, h, deps)

	// Reports (admin/manager)
	registerReportRoutes(protected, h)

	// Users (admin)
	registerUserRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		// Cashiers need reads for the register
		products.GET("", h.Product.List)
		products.GET("/alerts/low-stock", h.Product.LowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)

		manage := products.Group("")
		manage.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleManager))
		{
			manage.POST("", h.Product.Create)
			manage.PUT("/:id", h.Product.Update)
			manage.PATCH("/:id/stock", h.Product.AdjustStock)
			manage.DELETE("/:id", h.Product.Delete)
		}
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)

		manage := categories.Group("")
		manage.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleManager))
		{
			manage.POST("", h.Category.Create)
			manage.PUT("/:id", h.Category.Update)
			manage.DELETE("/:id", h.Category.Delete)
		}
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		// Cashiers register and look up members at the register
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/phone/:phone", h.Customer.GetByPhone)
		customers.GET("/code/:code", h.Customer.GetByCode)
		customers.GET("/:id", h.Customer.Get)
		customers.GET("/:id/transactions", h.Customer.Transactions)

		manage := customers.Group("")
		manage.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleManager))
		{
			manage.PUT("/:id", h.Customer.Update)
			manage.DELETE("/:id", h.Customer.Delete)
		}
	}
}

func registerShiftRoutes(protected *gin.RouterGroup, h *Handlers) {
	shifts := protected.Group("/shifts")
	{
		shifts.POST("/open", h.Shift.Open)
		shifts.GET("/current", h.Shift.Current)
		shifts.GET("", h.Shift.List)
		shifts.GET("/:id", h.Shift.Get)
		shifts.PUT("/:id/close", h.Shift.Close)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		// Checkout uses idempotency middleware so terminal retries cannot
		// post the same sale twice
		transactions.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Transaction.Checkout)
		transactions.POST("/verify-receipt", h.Transaction.VerifyReceipt)
		transactions.GET("/invoice/:invoice_no", h.Transaction.GetByInvoice)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.GET("/:id/receipt", h.Transaction.ReceiptPDF)
		transactions.PUT("/:id/void",
			middleware.RequireRole(enum.RoleAdmin, enum.RoleManager),
			h.Transaction.Void)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/transactions/report")
	reports.Use(middleware.RequireRole(enum.RoleAdmin, enum.RoleManager))
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/monthly", h.Report.Monthly)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(enum.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.PATCH("/:id/toggle-status", h.User.ToggleStatus)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/receipt", h.Printer.PrintReceipt)
	}
}
