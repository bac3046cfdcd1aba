package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mbokatech/hall-management-backend/config"
	"github.com/mbokatech/hall-management-backend/database"
	"github.com/mbokatech/hall-management-backend/internal/auditlog"
	"github.com/mbokatech/hall-management-backend/internal/auth"
	"github.com/mbokatech/hall-management-backend/internal/hall"
	"github.com/mbokatech/hall-management-backend/internal/hostapp"
	"github.com/mbokatech/hall-management-backend/internal/media"
	"github.com/mbokatech/hall-management-backend/internal/notification"
	"github.com/mbokatech/hall-management-backend/internal/pricing"
	"github.com/mbokatech/hall-management-backend/routes"
	"github.com/mbokatech/hall-management-backend/utils"
)

// @title Hall Management API
// @version 1.0
// @description REST backend for the hall booking marketplace.
// @BasePath /api
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Redis init failed, continuing without cache: %v", err)
	}

	// Init Kafka
	utils.InitializeKafka(cfg)

	// Init SMTP sender
	utils.InitMailer(cfg)

	// 🔥 Init Firebase - SINGLE INITIALIZATION POINT
	log.Println("🔄 Initializing Firebase...")
	if err := utils.InitFirebase(cfg); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (provider login and uploads will be disabled)")
	} else {
		log.Println("✅ Firebase initialized successfully")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auditlog.AuditLog{},
		&hall.Hall{},
		&hall.HallUserRole{},
		&pricing.HallProduct{},
		&pricing.HallProductRate{},
		&pricing.HallAddon{},
		&pricing.HallBlockedDate{},
		&media.Media{},
		&media.MediaTagType{},
		&media.MediaTag{},
		&hostapp.HostApplication{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed super admin
	if err := auth.SeedSuperAdminUser(auth.NewRepository(db)); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed Super Admin: %v", err))
	}

	// Start the notification consumer
	go notification.StartApplicationEventConsumer(context.Background(), cfg)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "Cache-Control", "Pragma", "Expires"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		panic(fmt.Sprintf("❌ Server failed to start: %v", err))
	}
}
