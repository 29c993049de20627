package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/config"
	domainRepo "github.com/sangkips/shop-pos/internal/domain/repository"
	"github.com/sangkips/shop-pos/internal/presentation/http/handler"
	"github.com/sangkips/shop-pos/internal/presentation/http/middleware"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Cart        *handler.CartHandler
	Checkout    *handler.CheckoutHandler
	Transaction *handler.TransactionHandler
	Report      *handler.ReportHandler
	Settings    *handler.SettingsHandler
	Backup      *handler.BackupHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *logrus.Logger
	Sessions        middleware.SessionValidator
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"time":    time.Now().UTC().Format(time.RFC3339),
		}
		if deps.RateLimiter != nil {
			body["rate_limited_clients"] = deps.RateLimiter.ActiveClients()
		}
		c.JSON(http.StatusOK, body)
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		// Cashier routes are always open
		registerCashierRoutes(v1, h, deps)

		// Back-office routes need a manager session once a PIN is set
		manager := v1.Group("")
		manager.Use(middleware.ManagerAuth(deps.Sessions))
		registerManagerRoutes(manager, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.GET("/status", h.Auth.Status)
	}
}

func registerCashierRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/categories", h.Product.Categories)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:id", h.Product.Get)
	}

	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.GET("/totals", h.Cart.Totals)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.PUT("/discount", h.Cart.SetDiscount)
		cart.PUT("/payment", h.Cart.SetPayment)
	}

	// A retried checkout with the same Idempotency-Key replays the first sale
	v1.POST("/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		Log:  deps.Log,
	}), h.Checkout.Checkout)

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.GET("/:id/receipt", h.Transaction.Receipt)
		transactions.POST("/:id/print", h.Transaction.Print)
	}

	v1.GET("/reports/summary", h.Report.Summary)

	v1.GET("/settings", h.Settings.GetSettings)

	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}

func registerManagerRoutes(manager *gin.RouterGroup, h *Handlers) {
	products := manager.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("/export", h.Product.ExportProducts)
		products.POST("/import", h.Product.ImportProducts)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/stock", h.Product.AdjustStock)
	}

	manager.GET("/reports/export", h.Report.Export)

	settings := manager.Group("/settings")
	{
		settings.PUT("", h.Settings.UpdateSettings)
		settings.PUT("/pin", h.Settings.SetPIN)
	}

	backup := manager.Group("/backup")
	{
		backup.GET("", h.Backup.Export)
		backup.POST("/import", h.Backup.Import)
	}
}
