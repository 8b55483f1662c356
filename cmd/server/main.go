package main

import (
	"os"
	"time"

	"github.com/OratorMurambiwa/MedStroke/internal/auth"
	"github.com/OratorMurambiwa/MedStroke/internal/config"
	"github.com/OratorMurambiwa/MedStroke/internal/database"
	"github.com/OratorMurambiwa/MedStroke/internal/handlers"
	"github.com/OratorMurambiwa/MedStroke/internal/middleware"
	"github.com/OratorMurambiwa/MedStroke/internal/planner"
	"github.com/OratorMurambiwa/MedStroke/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := database.InitDB(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	sessions := session.NewMemoryStore()
	authSvc := auth.NewService(database.DB, sessions, logger)

	var gen planner.TextGenerator
	if cfg.OpenAIAPIKey != "" {
		gen = planner.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.GeneratorTimeout)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not configured, treatment plan generation disabled")
	}
	plannerSvc := planner.NewService(gen, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterRoutes(r, handlers.Deps{
		DB:               database.DB,
		Sessions:         sessions,
		Auth:             authSvc,
		Planner:          plannerSvc,
		SessionMaxAge:    cfg.SessionMaxAge,
		GeneratorTimeout: cfg.GeneratorTimeout,
	})

	logger.Info().Str("port", cfg.ListenPort).Msg("server starting")
	if err := r.Run(":" + cfg.ListenPort); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
