package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/shared/middleware"
	"shop-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupClientRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/refresh", c.AuthHandler.Refresh)
	}
}

// ========================================
// CLIENT ROUTES
// ========================================
func setupClientRoutes(v1 *gin.RouterGroup, c *container.Container) {
	client := v1.Group("")
	client.Use(middleware.AuthMiddleware(c.JWTManager))

	client.GET("/me", c.AuthHandler.Me)

	products := client.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:id", c.ProductHandler.Show)
	}

	orders := client.Group("/orders")
	{
		orders.GET("", c.OrderClientHandler.List)
		orders.POST("", c.OrderClientHandler.Create)
		orders.GET("/:id", c.OrderClientHandler.Show)
		orders.PUT("/:id", c.OrderClientHandler.Update)
		orders.POST("/:id/discount", c.OrderClientHandler.ApplyDiscount)
		orders.DELETE("/:id/discount", c.OrderClientHandler.RemoveDiscount)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())

	admin.GET("/dashboard", c.DashboardHandler.Show)

	categories := admin.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.POST("", c.CategoryHandler.Create)
		categories.GET("/:id", c.CategoryHandler.Show)
		categories.PUT("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}

	products := admin.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.POST("", c.ProductHandler.Create)
		products.GET("/:id", c.ProductHandler.Show)
		products.PUT("/:id", c.ProductHandler.Update)
		products.DELETE("/:id", c.ProductHandler.Delete)
	}

	images := admin.Group("/images")
	{
		images.GET("", c.ImageHandler.List)
		images.POST("", c.ImageHandler.Upload)
		images.GET("/:id", c.ImageHandler.Show)
		images.PUT("/:id", c.ImageHandler.Update)
		images.DELETE("/:id", c.ImageHandler.Delete)
	}

	users := admin.Group("/users")
	{
		users.GET("", c.UserHandler.List)
		users.POST("", c.UserHandler.Create)
		users.GET("/:id", c.UserHandler.Show)
		users.PUT("/:id", c.UserHandler.Update)
		users.DELETE("/:id", c.UserHandler.Delete)
	}

	coupons := admin.Group("/coupons")
	{
		coupons.GET("", c.CouponHandler.List)
		coupons.POST("", c.CouponHandler.Create)
		coupons.GET("/:id", c.CouponHandler.Show)
		coupons.PUT("/:id", c.CouponHandler.Update)
		coupons.DELETE("/:id", c.CouponHandler.Delete)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("", c.OrderAdminHandler.List)
		orders.GET("/export", c.OrderAdminHandler.Export)
		orders.POST("", c.OrderAdminHandler.Create)
		orders.GET("/:id", c.OrderAdminHandler.Show)
		orders.PUT("/:id", c.OrderAdminHandler.Update)
		orders.DELETE("/:id", c.OrderAdminHandler.Delete)
		orders.POST("/:id/discount", c.OrderAdminHandler.ApplyDiscount)
		orders.DELETE("/:id/discount", c.OrderAdminHandler.RemoveDiscount)
	}
}

// ========================================
// HEALTH CHECK
// ========================================

// healthCheckHandler reports 503 only when postgres is down. Redis and MinIO
// failures degrade the status but the API keeps serving.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		services := gin.H{}

		check := func(name string, fn func(context.Context) error) bool {
			if err := fn(ctx); err != nil {
				services[name] = "error: " + err.Error()
				status = "degraded"
				return false
			}
			services[name] = "ok"
			return true
		}

		dbOK := check("database", appCtx.DB.HealthCheck)
		check("redis", appCtx.Redis.HealthCheck)
		check("storage", appCtx.Storage.HealthCheck)

		body := gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		}
		if stats, err := appCtx.DB.Stats(); err == nil {
			body["pool"] = stats
		}

		statusCode := http.StatusOK
		if !dbOK {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, body)
	}
}
