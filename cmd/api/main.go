package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salespoint-api/internal/application/service"
	"github.com/sangkips/salespoint-api/internal/config"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/infrastructure/cache"
	"github.com/sangkips/salespoint-api/internal/infrastructure/database"
	"github.com/sangkips/salespoint-api/internal/infrastructure/repository"
	"github.com/sangkips/salespoint-api/internal/presentation/http/handler"
	"github.com/sangkips/salespoint-api/internal/presentation/http/routes"
	"github.com/sangkips/salespoint-api/pkg/email"
	"github.com/sangkips/salespoint-api/pkg/pricing"
	"github.com/sangkips/salespoint-api/pkg/printer"
	"github.com/sangkips/salespoint-api/pkg/receipt"
	"github.com/sangkips/salespoint-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Connect to Redis for report caching (optional)
	reportCache, err := cache.New(context.Background(), &cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis, report caching disabled: %v", err)
		reportCache = nil
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Pricing rules applied at checkout
	calculator := pricing.Calculator{
		MemberDiscountPercent: cfg.POS.MemberDiscountPercent,
		TaxPercent:            cfg.POS.TaxPercent,
		PointsThreshold:       cfg.POS.PointsThreshold,
	}

	// Receipt QR signing
	renderer := receipt.NewRenderer(cfg.Receipt.SigningSecret)

	// Store identity printed on every receipt
	header := entity.ReceiptHeader{
		StoreName: cfg.Printer.StoreName,
		Address:   cfg.Printer.StoreAddress,
		Phone:     cfg.Printer.StorePhone,
		TaxID:     cfg.Printer.StoreTaxID,
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	customerService := service.NewCustomerService(customerRepo, transactionRepo)
	shiftService := service.NewShiftService(shiftRepo)
	transactionService := service.NewTransactionService(
		transactionRepo,
		productRepo,
		customerRepo,
		shiftRepo,
		calculator,
		renderer,
		emailService,
		reportCache,
		header,
	)
	reportService := service.NewReportService(transactionRepo, reportCache)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, transactionService, renderer, cfg.Printer.Type, header)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Category:    handler.NewCategoryHandler(categoryService),
		Product:     handler.NewProductHandler(productService),
		Customer:    handler.NewCustomerHandler(customerService),
		Shift:       handler.NewShiftHandler(shiftService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Report:      handler.NewReportHandler(reportService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
