package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"perfume-store/controllers"
	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

// Deps bundles the shared services the controllers are built from.
type Deps struct {
	API       *upstream.Client
	Carts     *services.CartManager
	Checkouts *services.CheckoutManager
	Sessions  *services.SessionService
	Notifier  *services.NotificationCenter
	Email     *models.EmailService
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	productCtrl := &controllers.ProductController{API: deps.API, Carts: deps.Carts}
	cartCtrl := &controllers.CartController{API: deps.API, Carts: deps.Carts, Notifier: deps.Notifier}
	checkoutCtrl := &controllers.CheckoutController{
		API:       deps.API,
		Carts:     deps.Carts,
		Checkouts: deps.Checkouts,
		Sessions:  deps.Sessions,
		Notifier:  deps.Notifier,
		Email:     deps.Email,
	}
	authCtrl := &controllers.AuthController{API: deps.API, Sessions: deps.Sessions, Notifier: deps.Notifier}
	orderCtrl := &controllers.OrderController{API: deps.API, Sessions: deps.Sessions, Notifier: deps.Notifier}
	wishlistCtrl := &controllers.WishlistController{API: deps.API, Sessions: deps.Sessions, Notifier: deps.Notifier}
	notifyCtrl := &controllers.NotificationController{Notifier: deps.Notifier}
	contactCtrl := &controllers.ContactController{Email: deps.Email, Notifier: deps.Notifier}
	adminCtrl := &controllers.AdminController{API: deps.API, Sessions: deps.Sessions, Notifier: deps.Notifier}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.GET("/products", productCtrl.ListProducts)
	router.GET("/products/:id", productCtrl.GetProduct)

	router.GET("/cart", cartCtrl.GetCart)
	router.POST("/cart/items", cartCtrl.AddItem)
	router.POST("/cart/discovery-set", cartCtrl.AddDiscoverySet)
	router.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
	router.DELETE("/cart", cartCtrl.ClearCart)

	router.GET("/checkout/quote", checkoutCtrl.GetQuote)
	router.POST("/checkout/coupon", checkoutCtrl.ApplyCoupon)
	router.DELETE("/checkout/coupon", checkoutCtrl.RemoveCoupon)
	router.PATCH("/checkout/shipping", checkoutCtrl.UpdateShipping)
	router.POST("/checkout/pay", checkoutCtrl.Pay)
	router.DELETE("/checkout", checkoutCtrl.LeaveCheckout)

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.POST("/auth/logout", authCtrl.Logout)
	router.GET("/auth/session", authCtrl.GetSession)

	router.GET("/notifications", notifyCtrl.ListNotifications)
	router.DELETE("/notifications/:id", notifyCtrl.DismissNotification)

	router.POST("/contact", contactCtrl.SendMessage)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(deps.Sessions, deps.Notifier))
	{
		auth.GET("/orders", orderCtrl.ListOrders)
		auth.GET("/orders/:id", orderCtrl.GetOrder)
		auth.GET("/wishlist", wishlistCtrl.ListWishlist)
		auth.POST("/wishlist/:productId", wishlistCtrl.ToggleWishlist)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Sessions, deps.Notifier), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", adminCtrl.GetDashboard)

		admin.POST("/products", adminCtrl.CreateProduct)
		admin.PATCH("/products/:id", adminCtrl.UpdateProduct)
		admin.DELETE("/products/:id", adminCtrl.DeleteProduct)
		admin.POST("/products/:id/restock", adminCtrl.RestockProduct)
		admin.POST("/products/image", adminCtrl.UploadProductImage)

		admin.GET("/orders", adminCtrl.ListAllOrders)
		admin.PATCH("/orders/:id/status", adminCtrl.UpdateOrderStatus)
	}
}
