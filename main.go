package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/controllers"
	"github.com/delgado-brothers/delgado-foods-api/middleware"
	"github.com/delgado-brothers/delgado-foods-api/models"
	"github.com/delgado-brothers/delgado-foods-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Delgado Foods API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.ContactMessage{},
		&models.NewsFlash{},
		&models.WeeklyDeal{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed the first back-office admin when configured
	if err := seedAdminUser(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize services
	if _, err := services.InitImageService(cfg); err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}
	services.InitMailerService(cfg)

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the API route tree
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoints
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Public storefront
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)
		v1.GET("/categories", controllers.ListCategories)
		v1.GET("/newsflashes", controllers.ListNewsFlashes)
		v1.GET("/deals", controllers.ListActiveDeals)
		v1.POST("/contact", controllers.CreateContactMessage)
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)

		// Checkout accepts both guests and logged-in customers
		v1.POST("/orders", middleware.AllowValidToken(cfg), controllers.CreateOrder)

		// Authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/admin/login", controllers.AdminLogin)
			auth.POST("/forgot-password", controllers.ForgotPassword)
			auth.POST("/reset-password", controllers.ResetPassword)
		}

		// Customer account area
		account := v1.Group("")
		account.Use(middleware.EnsureValidToken(cfg))
		{
			account.GET("/users/me", controllers.GetMyProfile)
			account.PUT("/users/me", controllers.UpdateMyProfile)
			account.GET("/orders/mine", controllers.ListMyOrders)
			account.GET("/notifications", controllers.ListMyNotifications)
			account.PATCH("/notifications/:id/read", controllers.MarkNotificationRead)
		}

		// Back office
		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg), middleware.RequireAdmin())
		{
			admin.GET("/orders", controllers.ListOrders)
			admin.GET("/orders/:id", controllers.GetOrder)
			admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
			admin.DELETE("/orders/:id", controllers.DeleteOrder)

			admin.POST("/products", controllers.CreateProduct)
			admin.PUT("/products/:id", controllers.UpdateProduct)
			admin.DELETE("/products/:id", controllers.DeleteProduct)

			admin.POST("/categories", controllers.CreateCategory)
			admin.PUT("/categories/:id", controllers.UpdateCategory)
			admin.DELETE("/categories/:id", controllers.DeleteCategory)

			admin.POST("/notifications", controllers.CreateNotification)

			admin.GET("/messages", controllers.ListContactMessages)
			admin.PATCH("/messages/:id/read", controllers.MarkContactMessageRead)
			admin.DELETE("/messages/:id", controllers.DeleteContactMessage)

			admin.POST("/newsflashes", controllers.CreateNewsFlash)
			admin.PUT("/newsflashes/:id", controllers.UpdateNewsFlash)
			admin.DELETE("/newsflashes/:id", controllers.DeleteNewsFlash)

			admin.GET("/deals", controllers.ListDeals)
			admin.POST("/deals", controllers.CreateDeal)
			admin.PUT("/deals/:id", controllers.UpdateDeal)
			admin.DELETE("/deals/:id", controllers.DeleteDeal)

			admin.POST("/uploads", controllers.UploadImage)

			admin.GET("/reports", controllers.GetReports)
		}
	}

	return router
}

// seedAdminUser creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the admin table is empty
func seedAdminUser(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.AdminUser{
		Name:  "Administrator",
		Email: cfg.AdminEmail,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded initial admin account %s", admin.Email)
	return nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Delgado Foods API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
