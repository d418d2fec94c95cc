package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"carbontrack/internal/auth"
	"carbontrack/internal/config"
	"carbontrack/internal/crypto"
	"carbontrack/internal/database"
	"carbontrack/internal/email"
	"carbontrack/internal/handlers"
	"carbontrack/internal/localstate"
	"carbontrack/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger.Initialize(logger.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed reference data:", err)
	}

	state, err := localstate.Open(cfg.StatePath)
	if err != nil {
		log.Fatal("Failed to open local state:", err)
	}

	key, err := crypto.GetOrCreateKey(state)
	if err != nil {
		log.Fatal("Failed to load encryption key:", err)
	}

	cipher, err := crypto.NewCipher(key)
	if err != nil {
		log.Fatal("Failed to initialize field cipher:", err)
	}

	emailService := email.NewService(cfg)
	if emailService.IsEnabled() {
		logger.Info("Email service enabled with Mailgun")
	} else {
		logger.Info("Email service disabled - Mailgun not configured")
	}

	manager := auth.NewManager(db, cipher, state, emailService)
	manager.Init()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	handlers.SetupRoutes(r, db, manager, cfg)

	logger.Info("Server starting", "port", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
