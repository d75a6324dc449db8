package routes

import (
	"net/http"
	"time"

	supplierRepo "festivo/database/repository/supplier"
	"festivo/handlers"
	"festivo/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers and shared dependencies the routes
// need.
type HandlerBundle struct {
	SupplierRepo supplierRepo.SupplierRepository

	Supplier     *handlers.SupplierHandler
	Calendar     *handlers.CalendarHandler
	Webhook      *handlers.WebhookHandler
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
}

// RegisterSupplierRoutes registers supplier account, policy and block endpoints.
func RegisterSupplierRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/suppliers")
	{
		api.POST("/register", hb.Supplier.RegisterSupplierHandler)
		api.POST("/login", hb.Supplier.AuthenticateSupplierHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthSupplierMiddleware(hb.SupplierRepo))
		protected.DELETE("/revoke", hb.Supplier.RevokeAuthTokenHandler)
		protected.GET("/policy", hb.Supplier.GetPolicyHandler)
		protected.PUT("/policy", hb.Supplier.UpdatePolicyHandler)
		protected.GET("/blocks", hb.Supplier.ListBlocksHandler)
		protected.POST("/blocks", hb.Supplier.AddManualBlockHandler)
		protected.DELETE("/blocks/:blockID", hb.Supplier.RemoveManualBlockHandler)
	}
}

// RegisterCalendarRoutes sets up the calendar connection lifecycle endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		// The OAuth callback and the webhook are called by the provider,
		// not by an authenticated supplier.
		api.GET("/callback/:provider", hb.Calendar.CallbackHandler)
		api.POST("/webhook/google", hb.Webhook.GoogleNotificationHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthSupplierMiddleware(hb.SupplierRepo))
		protected.GET("/connect/:provider", hb.Calendar.ConnectURLHandler)
		protected.DELETE("/disconnect/:provider", hb.Calendar.DisconnectHandler)
		protected.POST("/sync/:provider", hb.Calendar.TriggerSyncHandler)
		protected.GET("/sync/:provider/status", hb.Calendar.GetSyncStatusHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints consumed by the booking
// subsystem.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.POST("/availability/:supplierID", hb.Availability.CheckAvailabilityHandler)
		api.POST("/resolve-replacement", hb.Booking.ResolveReplacementHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Festivo"})
	})
}

// RegisterRoutes wires every route group onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSupplierRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
