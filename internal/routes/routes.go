package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vendora_back_end/internal/handlers"
	pa "vendora_back_end/internal/handlers/payement"
	"vendora_back_end/internal/handlers/seller"
	"vendora_back_end/internal/handlers/user"
	"vendora_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// CORS — origines du front séparées par des virgules
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(origins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// --- Public ---
	api.POST("/auth/register", middleware.RegisterRateLimit(), user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/:provider", handlers.BeginAuth)
	api.GET("/auth/:provider/callback", handlers.CallbackAuth)

	api.GET("/search", handlers.SearchListings)
	api.GET("/categories", handlers.GetCategories)
	api.GET("/categories/:id/listings", handlers.GetListingsByCategory)
	api.GET("/listings/:id", handlers.GetListingByID)
	api.GET("/shops/:slug", seller.GetShopBySlug)

	api.GET("/places/autocomplete", handlers.PlacesAutocomplete)
	api.GET("/places/details", handlers.PlacesDetails)

	// Stripe appelle ce webhook sans JWT, la signature fait foi
	api.POST("/payment/webhook", pa.StripeWebhook)

	// --- Authentifié ---
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/me", user.Me)

		auth.GET("/cart", user.GetCart)
		auth.POST("/cart/add", user.AddToCart)
		auth.PUT("/cart/quantity", user.UpdateCartQuantity)
		auth.DELETE("/cart/clear", user.ClearCart)
		auth.DELETE("/cart/:productId", user.RemoveFromCart)
		auth.GET("/cart/ws", user.CartWebSocket)

		auth.GET("/addresses", user.ListMyAddresses)
		auth.POST("/addresses", user.CreateAddress)
		auth.PUT("/addresses/:id", user.UpdateAddress)
		auth.DELETE("/addresses/:id", user.DeleteAddress)

		auth.GET("/orders", user.GetMyOrders)
		auth.GET("/orders/:id", user.GetOrderByID)

		// Tunnel de commande : adresse → devis → sélection → coupon → paiement
		auth.GET("/checkout/session", pa.GetCheckoutSession)
		auth.PUT("/checkout/address", pa.SetCheckoutAddress)
		auth.POST("/checkout/rates", pa.RequestShippingRates)
		auth.POST("/checkout/select", pa.SelectShippingRate)
		auth.POST("/checkout/coupon", pa.VerifyCoupon)
		auth.DELETE("/checkout/coupon", pa.RemoveCoupon)
		auth.POST("/checkout/commit", pa.Checkout)

		// Ouverture de boutique (pas encore vendeur)
		auth.POST("/shops", seller.CreateShop)
	}

	// --- Vendeur ---
	vendor := api.Group("/seller")
	vendor.Use(middleware.AuthRequired(), middleware.RequireVendor())
	{
		vendor.GET("/shop", seller.GetMyShop)
		vendor.PUT("/shop", seller.UpdateMyShop)

		vendor.GET("/listings", seller.GetMyListings)
		vendor.POST("/listings", seller.CreateListing)
		vendor.PUT("/listings/:id", seller.UpdateListing)
		vendor.DELETE("/listings/:id", seller.DeleteListing)
		vendor.POST("/listings/:id/images", seller.UploadListingImage)

		vendor.GET("/dashboard", seller.GetDashboardStats)
		vendor.GET("/orders", seller.GetShopOrders)
		vendor.PUT("/orders/:id/status", seller.UpdateOrderStatus)
	}

	// --- Admin ---
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin())
	{
		admin.POST("/coupons", pa.CreateCoupon)
		admin.GET("/coupons", pa.GetAllCoupons)
		admin.PUT("/coupons/:id", pa.UpdateCoupon)
		admin.DELETE("/coupons/:id", pa.DeleteCoupon)
	}
}
