package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/pkg/logger"
	"pricewatch/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	pricingHandler *PricingHandler,
	analyticsHandler *AnalyticsHandler,
	userHandler *UserHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("pricing-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "pricing-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Публичные эндпоинты (без аутентификации)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Защищенные эндпоинты (требуют аутентификации)
		protected := auth.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.GET("/me", authHandler.Me)
			protected.POST("/logout", authHandler.Logout)
		}
	}

	api := router.Group("/api")
	api.Use(authMiddleware.Authenticate())
	{
		// Справочник конкурентов: чтение для всех авторизованных,
		// изменение для admin и sales_manager, удаление только admin
		competitors := api.Group("/competitors")
		{
			competitors.GET("", catalogHandler.ListCompetitors)
			competitors.GET("/:id", catalogHandler.GetCompetitor)
			competitors.POST("", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleSalesManager), catalogHandler.CreateCompetitor)
			competitors.PUT("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleSalesManager), catalogHandler.UpdateCompetitor)
			competitors.DELETE("/:id", authMiddleware.RequireRole(entity.RoleAdmin), catalogHandler.DeleteCompetitor)
		}

		// Справочник товаров: те же правила, что для конкурентов
		products := api.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:id", catalogHandler.GetProduct)
			products.POST("", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleSalesManager), catalogHandler.CreateProduct)
			products.PUT("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleSalesManager), catalogHandler.UpdateProduct)
			products.DELETE("/:id", authMiddleware.RequireRole(entity.RoleAdmin), catalogHandler.DeleteProduct)
		}

		// Цены конкурентов: наблюдения принимаются от любого
		// авторизованного пользователя, удаление - admin и sales_manager
		pricing := api.Group("/competitor-pricing")
		{
			pricing.GET("", pricingHandler.List)
			pricing.POST("", pricingHandler.Submit)
			pricing.DELETE("/:id", authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleSalesManager), pricingHandler.Delete)
		}

		api.GET("/price-history/:id", pricingHandler.History)

		analytics := api.Group("/analytics")
		{
			analytics.GET("/kpi", analyticsHandler.KPI)
			analytics.GET("/price-trends", analyticsHandler.PriceTrends)
			analytics.GET("/top-competitors", analyticsHandler.TopCompetitors)
		}

		// Управление пользователями - только для администраторов
		users := api.Group("/users")
		users.Use(authMiddleware.RequireRole(entity.RoleAdmin))
		{
			users.GET("", userHandler.List)
			users.PUT("/:id/role", userHandler.UpdateRole)
		}
	}

	return router
}
