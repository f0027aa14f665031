package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/config"
	"github.com/sangkips/shopflow/internal/domain/enum"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/internal/presentation/http/handler"
	"github.com/sangkips/shopflow/internal/presentation/http/middleware"
	"github.com/sangkips/shopflow/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Customer  *handler.CustomerHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	AuthService     *service.AuthService
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
	Log             *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	rateLimiter := deps.RateLimiter

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", rateLimiter.Middleware(), h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.AuthService))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Session
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	// Dashboard
	protected.GET("/dashboard", middleware.RequireCapability(enum.CapabilityDashboard), h.Dashboard.GetStats)

	registerProductRoutes(protected, h)
	registerCartRoutes(protected, h, deps)
	registerCustomerRoutes(protected, h)
	registerInvoiceRoutes(protected, h)
	registerSettingsRoutes(protected, h)

	// Reports
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireCapability(enum.CapabilityReports))
	{
		reports.GET("/sales.xlsx", h.Dashboard.SalesReport)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("/search", middleware.RequireCapability(enum.CapabilityBilling), h.Product.Search)
		products.GET("", middleware.RequireCapability(enum.CapabilityInventory), h.Product.List)
		products.GET("/:id", middleware.RequireCapability(enum.CapabilityInventory), h.Product.Get)
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cart := protected.Group("/cart")
	cart.Use(middleware.RequireCapability(enum.CapabilityBilling))
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.POST("/scan", h.Cart.Scan)
		cart.PATCH("/items/:cartId/quantity", h.Cart.UpdateQuantity)
		cart.PATCH("/items/:cartId/discount", h.Cart.UpdateDiscount)
		cart.DELETE("/items/:cartId", h.Cart.RemoveItem)
		cart.PUT("/customer", h.Cart.SelectCustomer)
		cart.PUT("/payment-mode", h.Cart.SetPaymentMode)
		cart.POST("/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  deps.Log,
		}), h.Cart.Checkout)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequireCapability(enum.CapabilityCustomers))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequireCapability(enum.CapabilityBilling))
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/share", h.Invoice.Share)
		invoices.POST("/:id/email", h.Invoice.Email)
		invoices.POST("/:id/print", h.Printer.PrintInvoice)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("")
	settings.Use(middleware.RequireCapability(enum.CapabilitySettings))
	{
		settings.GET("/settings", h.Settings.GetSettings)
		settings.PUT("/settings", h.Settings.UpdateSettings)
		settings.GET("/backup", h.Settings.Backup)
		settings.POST("/restore", h.Settings.Restore)
		settings.GET("/printer/status", h.Printer.GetStatus)
		settings.POST("/printer/test", h.Printer.TestPrint)
	}
}
