package handler

import (
	"merchant-pulse/config"
	"merchant-pulse/internal/adapter/http/middleware"
	redisStore "merchant-pulse/internal/adapter/storage/redis"
	"merchant-pulse/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies. Only feed control messages carry one.
const maxBodyBytes = 64 << 10

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	DashboardSvc   ports.DashboardService
	ExportSvc      ports.ExportService
	FeedSvc        ports.FeedService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimits     config.RateLimitConfig
	HealthCheckers []ports.HealthChecker
	OpenAPISpec    []byte // nil = /swagger/spec answers 404
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	docs := NewDocsHandler(deps.OpenAPISpec)
	swagger := r.Group("/swagger")
	{
		swagger.GET("", docs.UI)
		swagger.GET("/spec", docs.Spec)
	}

	rules := middleware.RateLimitRules(deps.RateLimits)
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	dashboardHandler := NewDashboardHandler(deps.DashboardSvc)
	merchantHandler := NewMerchantHandler(deps.DashboardSvc)
	exportHandler := NewExportHandler(deps.ExportSvc)
	feedHandler := NewFeedHandler(deps.FeedSvc, deps.Logger)

	v1 := r.Group("/api/v1")
	v1.GET("/dashboard", dashboardHandler.GetTransactionData)

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", dashboardHandler.ListTransactions)
		transactions.GET("/:id", dashboardHandler.GetTransaction)
	}

	merchants := v1.Group("/merchants")
	{
		merchants.GET("", merchantHandler.ListMerchants)
		merchants.GET("/:id", merchantHandler.GetMerchant)
		merchants.GET("/:id/stats", merchantHandler.GetMerchantStats)
	}

	export := v1.Group("/export", rl(middleware.GroupExport))
	{
		export.GET("/transactions", exportHandler.ExportTransactions)
		export.GET("/merchants", exportHandler.ExportMerchants)
	}

	feed := v1.Group("/feed")
	{
		feed.GET("", rl(middleware.GroupFeed), feedHandler.Stream)
		feed.POST("/:id/control", feedHandler.Control)
		feed.DELETE("/:id", feedHandler.Close)
	}
	v1.GET("/updates", feedHandler.Updates)

	return r
}
