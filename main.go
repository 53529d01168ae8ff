package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"perfume-store/config"
	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/repositories"
	"perfume-store/routes"
	"perfume-store/services"
	"perfume-store/upstream"
)

func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.InitRedis()
	defer config.CloseRedis()

	cartStorage, sessionStorage := buildStorage()
	defer config.CloseDB()

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	api := upstream.NewClient(config.AppConfig.APIBaseURL)
	notifier := services.NewNotificationCenter(config.AppConfig.NotificationTTL)
	sessions := services.NewSessionService(sessionStorage)
	carts := services.NewCartManager(cartStorage)
	checkouts := services.NewCheckoutManager(api, api, services.QuoteSettings{
		Debounce:              config.AppConfig.ShippingDebounce,
		FallbackShippingPrice: config.AppConfig.ShippingFallbackPrice,
		FreeShippingThreshold: config.AppConfig.FreeShippingThreshold,
		MinPostcodeLength:     config.AppConfig.MinPostcodeLength,
	})

	email, err := models.NewEmailService()
	if err != nil {
		log.Printf("Email service disabled: %v", err)
		email = nil
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SessionMiddleware())
	routes.SetupRoutes(router, routes.Deps{
		API:       api,
		Carts:     carts,
		Checkouts: checkouts,
		Sessions:  sessions,
		Notifier:  notifier,
		Email:     email,
	})

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStorage picks the cart/session adapters from CART_STORAGE. Redis is
// the default; Postgres is available for deployments without Redis; memory
// is the degraded mode when neither backend is reachable.
func buildStorage() (repositories.CartStorage, repositories.SessionStorage) {
	switch config.AppConfig.CartStorage {
	case "postgres":
		config.ConnectDB()
		log.Println("Using Postgres cart storage")
		if config.RedisClient != nil {
			return repositories.NewPostgresCartRepository(config.DB), repositories.NewRedisSessionRepository(config.RedisClient)
		}
		return repositories.NewPostgresCartRepository(config.DB), repositories.NewMemorySessionRepository()
	case "memory":
		log.Println("Using in-memory cart storage")
		return repositories.NewMemoryCartRepository(), repositories.NewMemorySessionRepository()
	default:
		if config.RedisClient == nil {
			log.Println("Redis unavailable, falling back to in-memory cart storage")
			return repositories.NewMemoryCartRepository(), repositories.NewMemorySessionRepository()
		}
		log.Println("Using Redis cart storage")
		return repositories.NewRedisCartRepository(config.RedisClient), repositories.NewRedisSessionRepository(config.RedisClient)
	}
}
