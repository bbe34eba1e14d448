package main

import (
	"net/http"

	_ "notehub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"notehub/internal/access"
	"notehub/internal/auth"
	"notehub/internal/cache"
	"notehub/internal/config"
	"notehub/internal/db"
	"notehub/internal/handler"
	"notehub/internal/logger"
	"notehub/internal/model"
	"notehub/internal/repository"
	"notehub/internal/router"
	"notehub/internal/service"
)

// @title Notehub API
// @version 1.0
// @description Multi-user note-taking API with per-user ownership scoping and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log := logger.New()
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Note{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	resolver := access.NewResolver(noteRepo)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	noteService := service.NewNoteService(resolver, noteRepo, cacheClient)
	userService := service.NewUserService(userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	userHandler := handler.NewUserHandler(userService)

	router.Register(e, cfg, authHandler, noteHandler, userHandler)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
