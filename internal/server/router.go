// Package server assembles the gin router.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"vividexpense-be/internal/controllers"
	"vividexpense-be/internal/jwt"
	"vividexpense-be/internal/metrics"
	"vividexpense-be/internal/middleware"
	"vividexpense-be/internal/service"
)

// RateLimits configures the per-IP limiters.
type RateLimits struct {
	RPS       float64
	Burst     int
	AuthRPS   float64
	AuthBurst int
}

// Deps are the components the router wires into handlers.
type Deps struct {
	AuthService    service.AuthService
	ExpenseService service.ExpenseService
	ReportService  service.ReportService
	JWTService     *jwt.JWTService
	Metrics        *metrics.Metrics // optional
	Logger         *slog.Logger
	RateLimits     RateLimits
}

// NewRouter builds the HTTP routes. Background work started for the router
// (rate limiter cleanup) stops when ctx is cancelled.
func NewRouter(ctx context.Context, deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	authController := controllers.NewAuthController(deps.AuthService)
	expenseController := controllers.NewExpenseController(deps.ExpenseService)
	reportController := controllers.NewReportController(deps.ReportService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(deps.RateLimits.RPS), deps.RateLimits.Burst)
	authRateLimiter := middleware.NewRateLimiter(ctx, rate.Limit(deps.RateLimits.AuthRPS), deps.RateLimits.AuthBurst)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "VividExpense API",
			"api":     "/api",
		})
	})

	api := router.Group("/api")
	{
		// Health check endpoint (no rate limiting)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.GET("/register", authController.UsageHint)
			auth.GET("/login", authController.UsageHint)
			auth.GET("/me", middleware.AuthMiddleware(deps.JWTService), authController.Me)
		}

		// Protected routes - require JWT authentication
		expenses := api.Group("/expenses")
		expenses.Use(generalRateLimiter.LimitMiddleware(), middleware.AuthMiddleware(deps.JWTService))
		{
			expenses.POST("", expenseController.CreateExpense)
			expenses.GET("", expenseController.ListExpenses)
			expenses.GET("/summary/monthly", reportController.MonthlySummary)
			expenses.GET("/summary/qrcode", reportController.DashboardQRCode)
			expenses.GET("/export/:format", reportController.Export)
			expenses.GET("/:id", expenseController.GetExpense)
			expenses.PUT("/:id", expenseController.UpdateExpense)
			expenses.DELETE("/:id", expenseController.DeleteExpense)
		}
	}

	return router
}
