// main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/healthplus/clinic-api/config"
	"github.com/healthplus/clinic-api/endpoint"
	"github.com/healthplus/clinic-api/middleware"
	"github.com/healthplus/clinic-api/model"
	"github.com/healthplus/clinic-api/notification"
	"github.com/healthplus/clinic-api/util"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	secret := os.Getenv("JWTSECRET")
	if secret == "" {
		log.Fatal("JWTSECRET is required")
	}
	util.SetJWTSecret(secret)

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Appointment{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Redis only backs the rate limiter; the API stays up without it.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
	}

	mailer := notification.NewMailer(cfg)

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.NotifierMiddleware(mailer))

	limiter := middleware.RateLimiter(middleware.RateLimitConfig{})

	api := router.Group("/api")
	{
		api.GET("/health", endpoint.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/register", limiter, endpoint.Register)
			auth.POST("/login", limiter, endpoint.Login)
			auth.GET("/me", middleware.RequireAuth(), endpoint.CurrentUser)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("", endpoint.ListAppointments)
			appointments.POST("", endpoint.CreateAppointment)
			appointments.GET("/:id", endpoint.GetAppointment)
			appointments.PATCH("/:id", endpoint.UpdateAppointmentStatus)
			appointments.DELETE("/:id", endpoint.DeleteAppointment)
		}
	}

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
