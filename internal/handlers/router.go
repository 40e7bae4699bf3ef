package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gestorpro/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	WebDir         string // built UI; skipped when missing
}

// NewRouter mounts every route on a new engine.
func NewRouter(a *API, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
	}

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "online"}) })
	r.POST("/login", a.Login)
	if a.AllowRegistration {
		r.POST("/register", a.Register)
	}

	// Reachable on the login and lock screens: the license check must not
	// cover these.
	r.GET("/api/system/status", a.GetSystemStatus)
	r.POST("/api/system/quit", a.QuitApp)
	r.POST("/api/admin/login", a.AdminLogin)

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(a.Tokens), middleware.RequireAdmin())
	{
		admin.GET("/settings", a.GetSettings)
		admin.PATCH("/settings", a.MergeSettings)
		admin.POST("/settings/expiration", a.SetExpiration)
	}

	api := r.Group("/api")
	api.Use(middleware.CheckLicense(a.Store, a.Now, a.Log))
	api.Use(middleware.AuthMiddleware(a.Tokens), middleware.RequireUser())
	{
		api.GET("/me", a.Me)
		api.GET("/tables/:name", a.GetTable)

		api.GET("/products", a.GetProducts)
		api.GET("/products/low-stock", a.GetLowStock)
		api.GET("/products/:id", a.GetProduct)
		api.POST("/products", a.AddProduct)
		api.PUT("/products/:id", a.UpdateProduct)
		api.DELETE("/products/:id", a.DeleteProduct)

		api.GET("/sales", a.GetSales)
		api.GET("/sales/:id", a.GetSale)
		api.POST("/sales", a.ProcessSale)
		api.GET("/receivables", a.GetReceivables)
		api.POST("/receivables/:id/settle", a.SettleReceivable)

		api.GET("/quotes", a.GetQuotes)
		api.GET("/quotes/:id", a.GetQuote)
		api.POST("/quotes", a.AddQuote)
		api.PUT("/quotes/:id", a.UpdateQuote)
		api.DELETE("/quotes/:id", a.DeleteQuote)

		api.GET("/customers", a.GetCustomers)
		api.GET("/customers/:id", a.GetCustomer)
		api.POST("/customers", a.AddCustomer)
		api.PUT("/customers/:id", a.UpdateCustomer)
		api.DELETE("/customers/:id", a.DeleteCustomer)

		api.GET("/reports/summary", a.GetSummary)
		api.GET("/reports/sales", a.GetSalesReport)
		api.GET("/reports/valuation", a.GetStockValuation)

		api.POST("/system/open-folder", a.OpenDataFolder)
	}

	// Serve the built UI; unknown paths fall back to index.html for the
	// client-side router.
	index := filepath.Join(opts.WebDir, "index.html")
	if opts.WebDir != "" {
		if _, err := os.Stat(index); err == nil {
			r.Static("/assets", filepath.Join(opts.WebDir, "assets"))
			r.NoRoute(func(c *gin.Context) {
				c.File(index)
			})
		}
	}
	return r
}
