package api

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kuedapur/backend-go/internal/api/handlers"
	"github.com/kuedapur/backend-go/internal/api/middleware"
	"github.com/kuedapur/backend-go/internal/service"
	"github.com/rs/zerolog/log"
)

// idphone accepts Indonesian phone numbers in local (08xx) or international
// (+62/62) form, with optional spaces and dashes.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,19}$`)

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("idphone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	}
}

type Services struct {
	Costing       *service.CostingService
	Snapshots     *service.SnapshotService
	Inventory     *service.InventoryService
	Customers     *service.CustomerService
	Orders        *service.OrderService
	Notifications *service.NotificationService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	registerValidations()

	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	if services.Inventory != nil {
		ingredientHandler := handlers.NewIngredientHandler(services.Inventory)
		ingredientGroup := apiGroup.Group("/ingredients")
		{
			ingredientGroup.GET("", ingredientHandler.List)
			ingredientGroup.POST("", ingredientHandler.Create)
			ingredientGroup.GET("/:id", ingredientHandler.Get)
			ingredientGroup.PUT("/:id", ingredientHandler.Update)
			ingredientGroup.DELETE("/:id", ingredientHandler.Delete)
			ingredientGroup.POST("/:id/purchases", ingredientHandler.RecordPurchase)
			ingredientGroup.GET("/:id/transactions", ingredientHandler.ListTransactions)
			ingredientGroup.GET("/:id/planning", ingredientHandler.Planning)
		}

		inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
		inventoryGroup := apiGroup.Group("/inventory")
		{
			inventoryGroup.GET("/dashboard", inventoryHandler.Dashboard)
			inventoryGroup.GET("/reorders", inventoryHandler.ReorderSuggestions)
			inventoryGroup.POST("/scan", inventoryHandler.Scan)
			inventoryGroup.GET("/alerts", inventoryHandler.ListAlerts)
			inventoryGroup.POST("/alerts/:id/acknowledge", inventoryHandler.AcknowledgeAlert)
		}
	}

	if services.Costing != nil {
		recipeHandler := handlers.NewRecipeHandler(services.Costing, services.Snapshots)
		recipeGroup := apiGroup.Group("/recipes")
		{
			recipeGroup.GET("", recipeHandler.List)
			recipeGroup.POST("", recipeHandler.Create)
			recipeGroup.GET("/:id", recipeHandler.Get)
			recipeGroup.PUT("/:id", recipeHandler.Update)
			recipeGroup.DELETE("/:id", recipeHandler.Delete)
			recipeGroup.POST("/:id/hpp", recipeHandler.CalculateHpp)
			recipeGroup.POST("/:id/price", recipeHandler.RecommendPrice)
			recipeGroup.GET("/:id/snapshots", recipeHandler.ListSnapshots)
			recipeGroup.POST("/:id/snapshots", recipeHandler.CreateSnapshot)
		}
	}

	if services.Snapshots != nil {
		snapshotHandler := handlers.NewSnapshotHandler(services.Snapshots)
		snapshotGroup := apiGroup.Group("/snapshots")
		{
			snapshotGroup.POST("/run", snapshotHandler.Run)
		}

		alertGroup := apiGroup.Group("/hpp-alerts")
		{
			alertGroup.GET("", snapshotHandler.ListAlerts)
			alertGroup.POST("/:id/read", snapshotHandler.MarkAlertRead)
			alertGroup.POST("/:id/dismiss", snapshotHandler.DismissAlert)
		}
	}

	if services.Customers != nil {
		customerHandler := handlers.NewCustomerHandler(services.Customers)
		customerGroup := apiGroup.Group("/customers")
		{
			customerGroup.GET("", customerHandler.List)
			customerGroup.POST("", customerHandler.Create)
			customerGroup.GET("/at-risk", customerHandler.AtRisk)
			customerGroup.GET("/:id", customerHandler.Get)
			customerGroup.PUT("/:id", customerHandler.Update)
			customerGroup.GET("/:id/insights", customerHandler.Insights)
		}
	}

	if services.Orders != nil {
		orderHandler := handlers.NewOrderHandler(services.Orders)
		orderGroup := apiGroup.Group("/orders")
		{
			orderGroup.GET("", orderHandler.List)
			orderGroup.POST("", orderHandler.Create)
			orderGroup.GET("/:id", orderHandler.Get)
			orderGroup.PUT("/:id", orderHandler.Update)
			orderGroup.PATCH("/:id/status", orderHandler.UpdateStatus)
			orderGroup.DELETE("/:id", orderHandler.Delete)
			orderGroup.GET("/:id/whatsapp/:template", orderHandler.WhatsAppMessage)
		}

		whatsappHandler := handlers.NewWhatsAppHandler()
		whatsappGroup := apiGroup.Group("/whatsapp")
		{
			whatsappGroup.GET("/templates", whatsappHandler.ListTemplates)
			whatsappGroup.POST("/render", whatsappHandler.Render)
		}
	}

	if services.Notifications != nil {
		notificationHandler := handlers.NewNotificationHandler(services.Notifications)
		notificationGroup := apiGroup.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.List)
			notificationGroup.POST("/:id/read", notificationHandler.MarkRead)
			notificationGroup.POST("/:id/dismiss", notificationHandler.Dismiss)
		}
	}

	return router
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
