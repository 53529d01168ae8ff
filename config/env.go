package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv                string
	Port                  string
	APIBaseURL            string
	JWTSecret             string
	CartStorage           string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSSLMode             string
	UploadDir             string
	ShippingDebounce      time.Duration
	ShippingFallbackPrice float64
	FreeShippingThreshold float64
	MinPostcodeLength     int
	NotificationTTL       time.Duration
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	debounceMs, _ := strconv.Atoi(getEnv("SHIPPING_DEBOUNCE_MS", "500"))
	if debounceMs <= 0 {
		debounceMs = 500
	}
	fallbackPrice, _ := strconv.ParseFloat(getEnv("SHIPPING_FALLBACK_PRICE", "5"), 64)
	freeThreshold, _ := strconv.ParseFloat(getEnv("FREE_SHIPPING_THRESHOLD", "50"), 64)
	minPostcode, _ := strconv.Atoi(getEnv("MIN_POSTCODE_LENGTH", "3"))
	notifyMs, _ := strconv.Atoi(getEnv("NOTIFICATION_TTL_MS", "3000"))
	if notifyMs <= 0 {
		notifyMs = 3000
	}

	AppConfig = &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		Port:                  getEnv("APP_PORT", getEnv("PORT", "8082")),
		APIBaseURL:            getEnv("API_BASE_URL", "http://localhost:5000/api"),
		JWTSecret:             getEnv("JWT_SECRET", "secret"),
		CartStorage:           getEnv("CART_STORAGE", "redis"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "postgres"),
		DBPassword:            getEnv("DB_PASSWORD", "postgres"),
		DBName:                getEnv("DB_NAME", "perfume_store"),
		DBSSLMode:             getEnv("DB_SSLMODE", "disable"),
		UploadDir:             getEnv("UPLOAD_DIR", "./uploads"),
		ShippingDebounce:      time.Duration(debounceMs) * time.Millisecond,
		ShippingFallbackPrice: fallbackPrice,
		FreeShippingThreshold: freeThreshold,
		MinPostcodeLength:     minPostcode,
		NotificationTTL:       time.Duration(notifyMs) * time.Millisecond,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Upstream API: %s", AppConfig.APIBaseURL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
