package main

import (
	"context"
	"strings"

	api "mailsort-backend/cmd/api"
	authdomain "mailsort-backend/internal/auth/domain"
	authRepo "mailsort-backend/internal/auth/repository"
	authUsecase "mailsort-backend/internal/auth/usecase"
	emaildomain "mailsort-backend/internal/email/domain"
	emailRepo "mailsort-backend/internal/email/repository"
	emailUsecase "mailsort-backend/internal/email/usecase"
	"mailsort-backend/pkg/ai"
	"mailsort-backend/pkg/config"
	"mailsort-backend/pkg/database"
	"mailsort-backend/pkg/gmail"
	"mailsort-backend/pkg/imap"
	"mailsort-backend/pkg/logger"
	"mailsort-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&authdomain.User{},
		&emaildomain.Email{},
		&emaildomain.Category{},
		&emaildomain.Classification{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	userRepository := authRepo.NewUserRepository(db)
	emailRepository := emailRepo.NewEmailRepository(db)
	categoryRepository := emailRepo.NewCategoryRepository(db)
	classificationRepository := emailRepo.NewClassificationRepository(db)

	mailSource, err := newMailSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.MailProvider).Msg("failed to initialize mail source")
	}
	provider := ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.EmbeddingModel)

	// Both upstreams rate-limit per caller; one shared pacer per upstream
	// covers sync and backfill alike.
	mailPacer := ratelimit.New(cfg.MailSourceRPS)
	embedPacer := ratelimit.New(cfg.EmbeddingRPS)

	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(
		emailRepository, categoryRepository, classificationRepository,
		mailSource, provider,
		mailPacer, embedPacer,
		cfg, log,
	)
	categoryUsecaseInstance := emailUsecase.NewCategoryUsecase(categoryRepository)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(log))
	api.SetupRoutes(r, authUsecaseInstance, emailUsecaseInstance, categoryUsecaseInstance)

	log.Info().Str("port", cfg.Port).Str("provider", cfg.MailProvider).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newMailSource(cfg *config.Config) (emaildomain.MailSource, error) {
	if strings.EqualFold(cfg.MailProvider, "imap") {
		return imap.NewService(cfg.IMAPHost, cfg.IMAPPort, cfg.IMAPUsername, cfg.IMAPPassword), nil
	}
	return gmail.NewService(
		context.Background(),
		cfg.GoogleClientID, cfg.GoogleClientSecret,
		cfg.GmailAccessToken, cfg.GmailRefreshToken,
	)
}
