package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/config"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},

		// POS entities
		&entity.Customer{},
		&entity.Shift{},
		&entity.Transaction{},
		&entity.TransactionItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the initial admin user if configured via
// environment variables and no users exist yet.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminName := viper.GetString("ADMIN_NAME")

	if adminUsername != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("username = ?", adminUsername).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrator"
				}
				if adminEmail == "" {
					adminEmail = adminUsername + "@localhost"
				}
				adminUser := entity.User{
					ID:       uuid.New(),
					Username: adminUsername,
					FullName: adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     enum.RoleAdmin,
					IsActive: true,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminUsername)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminUsername)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
