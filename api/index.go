package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"perfume-store/config"
	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/repositories"
	"perfume-store/routes"
	"perfume-store/services"
	"perfume-store/upstream"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		config.InitRedis()

		var cartStorage repositories.CartStorage
		var sessionStorage repositories.SessionStorage
		if config.RedisClient != nil {
			cartStorage = repositories.NewRedisCartRepository(config.RedisClient)
			sessionStorage = repositories.NewRedisSessionRepository(config.RedisClient)
		} else {
			cartStorage = repositories.NewMemoryCartRepository()
			sessionStorage = repositories.NewMemorySessionRepository()
		}

		apiClient := upstream.NewClient(config.AppConfig.APIBaseURL)
		email, err := models.NewEmailService()
		if err != nil {
			log.Printf("Email service disabled: %v", err)
			email = nil
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())
		router.Use(middleware.SessionMiddleware())

		routes.SetupRoutes(router, routes.Deps{
			API:       apiClient,
			Carts:     services.NewCartManager(cartStorage),
			Checkouts: services.NewCheckoutManager(apiClient, apiClient, services.QuoteSettings{
				Debounce:              config.AppConfig.ShippingDebounce,
				FallbackShippingPrice: config.AppConfig.ShippingFallbackPrice,
				FreeShippingThreshold: config.AppConfig.FreeShippingThreshold,
				MinPostcodeLength:     config.AppConfig.MinPostcodeLength,
			}),
			Sessions: services.NewSessionService(sessionStorage),
			Notifier: services.NewNotificationCenter(config.AppConfig.NotificationTTL),
			Email:    email,
		})
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
