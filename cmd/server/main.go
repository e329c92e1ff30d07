package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/openkanban/kanban/internal/auth"
	"github.com/openkanban/kanban/internal/config"
	"github.com/openkanban/kanban/internal/database"
	"github.com/openkanban/kanban/internal/handlers"
	"github.com/openkanban/kanban/internal/logging"
	"github.com/openkanban/kanban/internal/repository"
	"github.com/openkanban/kanban/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Setup(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	db := database.GetDB()

	// Initialize repositories and services
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	boardService := services.NewBoardService(boardRepo, columnRepo, taskRepo)
	columnService := services.NewColumnService(boardRepo, columnRepo, taskRepo)
	taskService := services.NewTaskService(columnRepo, taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	boardHandler := handlers.NewBoardHandler(boardService)
	columnHandler := handlers.NewColumnHandler(columnService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.Default())

	handlers.RegisterRoutes(r, tokens, authHandler, boardHandler, columnHandler, taskHandler)

	// Start server
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
