package main

import (
	"log"
	"net/http"

	_ "cfptracker/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cfptracker/internal/auth"
	"cfptracker/internal/cache"
	"cfptracker/internal/config"
	"cfptracker/internal/db"
	"cfptracker/internal/handler"
	"cfptracker/internal/model"
	"cfptracker/internal/repository"
	"cfptracker/internal/router"
	"cfptracker/internal/service"
	"cfptracker/internal/slack"
)

// @title CFP Tracker API
// @version 1.0
// @description Tracks Call for Papers listings and posts Slack digests for selected ones.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Create-if-absent schema for both tables.
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.CFP{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	cfpRepo := repository.NewCFPRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	cfpService := service.NewCFPService(cfpRepo, cacheClient)
	notifyService := service.NewNotifyService(cfpRepo, slack.New(cfg.SlackBotToken), cfg.SlackChannelID, cfg.SlackTimeout)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	cfpHandler := handler.NewCFPHandler(cfpService, authService)
	notifyHandler := handler.NewNotifyHandler(notifyService, authService)
	seedHandler := handler.NewSeedHandler(authService, cfpService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		cfpHandler,
		notifyHandler,
		seedHandler,
	)

	if cfg.SlackChannelID == "" {
		log.Println("SLACK_CHANNEL_ID not set; notifications require an explicit channel override")
	}

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
