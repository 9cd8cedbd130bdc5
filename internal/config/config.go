package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	POS       POSConfig
	Printer   PrinterConfig
	Email     EmailConfig
	Receipt   ReceiptConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// POSConfig carries the pricing rules applied at checkout.
type POSConfig struct {
	MemberDiscountPercent int64
	TaxPercent            int64
	PointsThreshold       int64
}

// PrinterConfig selects the receipt printer backend and the store identity
// printed on every receipt.
type PrinterConfig struct {
	Type         string
	USBPath      string
	Address      string
	StoreName    string
	StoreAddress string
	StorePhone   string
	StoreTaxID   string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// ReceiptConfig holds the secret used to sign QR payloads on receipts.
type ReceiptConfig struct {
	SigningSecret string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "salespoint-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "salespoint")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("POS_MEMBER_DISCOUNT_PERCENT", 5)
	viper.SetDefault("POS_TAX_PERCENT", 10)
	viper.SetDefault("POS_POINTS_THRESHOLD", 10000)
	viper.SetDefault("PRINTER_TYPE", "null")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("STORE_NAME", "SalesPoint Store")
	viper.SetDefault("STORE_ADDRESS", "")
	viper.SetDefault("STORE_PHONE", "")
	viper.SetDefault("STORE_TAX_ID", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_FROM_NAME", "SalesPoint")
	viper.SetDefault("EMAIL_FROM_ADDRESS", "")
	viper.SetDefault("RECEIPT_SIGNING_SECRET", "change-this-secret-in-production")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Enabled:  viper.GetBool("REDIS_ENABLED"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		POS: POSConfig{
			MemberDiscountPercent: viper.GetInt64("POS_MEMBER_DISCOUNT_PERCENT"),
			TaxPercent:            viper.GetInt64("POS_TAX_PERCENT"),
			PointsThreshold:       viper.GetInt64("POS_POINTS_THRESHOLD"),
		},
		Printer: PrinterConfig{
			Type:         viper.GetString("PRINTER_TYPE"),
			USBPath:      viper.GetString("PRINTER_USB_PATH"),
			Address:      viper.GetString("PRINTER_ADDRESS"),
			StoreName:    viper.GetString("STORE_NAME"),
			StoreAddress: viper.GetString("STORE_ADDRESS"),
			StorePhone:   viper.GetString("STORE_PHONE"),
			StoreTaxID:   viper.GetString("STORE_TAX_ID"),
		},
		Email: EmailConfig{
			SMTPHost:     viper.GetString("SMTP_HOST"),
			SMTPPort:     viper.GetInt("SMTP_PORT"),
			SMTPUsername: viper.GetString("SMTP_USERNAME"),
			SMTPPassword: viper.GetString("SMTP_PASSWORD"),
			FromName:     viper.GetString("EMAIL_FROM_NAME"),
			FromEmail:    viper.GetString("EMAIL_FROM_ADDRESS"),
		},
		Receipt: ReceiptConfig{
			SigningSecret: viper.GetString("RECEIPT_SIGNING_SECRET"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
