package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/config"
	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/database"
	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/handlers"
	"github.com/VenuriN/Online-Cake-ordering-management-system-sub000/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureAddonIndexes(db); err != nil {
		log.Printf("addon index warning: %v", err)
	}
	if err := database.EnsureFinanceIndexes(db); err != nil {
		log.Printf("finance index warning: %v", err)
	}

	r := gin.Default()

	auth := r.Group("/auth")
	if config.AppEnv.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.AppEnv.RedisAddr,
			Password: config.AppEnv.RedisPassword,
		})
		auth.Use(middleware.RateLimit(rdb, config.AppEnv.RateLimitMax, config.AppEnv.RateLimitWindow))
		log.Println("auth rate limiting enabled via", config.AppEnv.RedisAddr)
	}
	{
		auth.POST("/register", handlers.Register(db))
		auth.POST("/login", handlers.Login(
			db,
			config.AppEnv.JWTSecret,
			config.AppEnv.AccessTokenTTL,
			config.AppEnv.RefreshTokenTTL,
		))
		auth.POST("/refresh", handlers.Refresh(
			db,
			config.AppEnv.JWTSecret,
			config.AppEnv.AccessTokenTTL,
			config.AppEnv.RefreshTokenTTL,
		))
		auth.POST("/logout", handlers.Logout(db))
		auth.GET("/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))
		auth.PUT("/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.UpdateMe(db))
	}

	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/orders/options", handlers.GetOrderOptions(db))
	r.POST("/orders/calculate-price", handlers.CalculatePrice())

	orders := r.Group("/orders")
	orders.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		orders.POST("", handlers.CreateOrder(db))
		orders.GET("/my-orders", handlers.GetMyOrders(db))
		orders.GET("/:orderId", handlers.GetOrder(db))
		orders.PUT("/:orderId/cancel", handlers.CancelOrder(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"success": true})
		})

		admin.GET("/orders", handlers.AdminListOrders(db))
		admin.PUT("/orders/:orderId/status", handlers.AdminUpdateOrderStatus(db))
		admin.PUT("/orders/:orderId/assign", handlers.AdminAssignCourier(db))
		admin.PUT("/orders/:orderId/payment", handlers.AdminMarkOrderPaid(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/addons", handlers.GetAllAddons(db))
		admin.POST("/addons", handlers.CreateAddon(db))
		admin.PUT("/addons/:id", handlers.UpdateAddon(db))
		admin.DELETE("/addons/:id", handlers.DeleteAddon(db))

		admin.GET("/inventory", handlers.GetInventory(db))
		admin.POST("/inventory", handlers.CreateInventoryItem(db))
		admin.PUT("/inventory/:id", handlers.UpdateInventoryItem(db))
		admin.DELETE("/inventory/:id", handlers.DeleteInventoryItem(db))

		admin.GET("/finance", handlers.GetFinanceRecords(db))
		admin.GET("/finance/summary", handlers.GetFinanceSummary(db))
		admin.POST("/finance", handlers.CreateFinanceRecord(db))
		admin.DELETE("/finance/:recordId", handlers.DeleteFinanceRecord(db))

		admin.GET("/couriers", handlers.GetAllCouriers(db))
		admin.POST("/couriers", handlers.CreateCourier(db))
		admin.PUT("/couriers/:id", handlers.UpdateCourier(db))
		admin.DELETE("/couriers/:id", handlers.DeleteCourier(db))
	}

	courier := r.Group("/courier/api")
	courier.Use(middleware.CourierAuth(config.AppEnv.JWTSecret))
	{
		courier.GET("/orders", handlers.CourierListOrders(db))
		courier.PUT("/orders/:orderId/status", handlers.CourierUpdateOrderStatus(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
