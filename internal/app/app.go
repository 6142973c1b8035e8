package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/config"
	"github.com/proposalhub/submission-service/internal/delivery/httpd"
	"github.com/proposalhub/submission-service/internal/repository"
	"github.com/proposalhub/submission-service/internal/service"
	"github.com/proposalhub/submission-service/internal/service/integration"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	db        *sql.DB
	publisher integration.EventPublisher
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	minioRepo, err := repository.NewMinIORepository(
		cfg.MinIO.Endpoint,
		cfg.MinIO.AccessKey,
		cfg.MinIO.SecretKey,
		cfg.Storage.BucketName,
		cfg.Storage.Region,
		cfg.MinIO.UseSSL,
		cfg.MinIO.Timeout,
		log,
	)
	if err != nil {
		return nil, err
	}

	var storageRepo repository.StorageRepository = minioRepo
	submissionRepo := repository.NewSubmissionRepository(db, log)
	studentRepo := repository.NewStudentRepository(db, log)
	reportRepo := repository.NewReportRepository(db, log)

	hashService := service.NewHashService(cfg.Hash.Algorithm)
	duplicateService := service.NewDuplicateService(submissionRepo, log)
	reportService := service.NewReportService(reportRepo, submissionRepo, log)
	fallbackChecker := service.NewFallbackChecker(submissionRepo, log)

	authService := service.NewAuthService(studentRepo, log, service.AuthConfig{
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})

	nlpClient := integration.NewNLPClient(
		cfg.NLP.BaseURL,
		cfg.NLP.Timeout,
		cfg.NLP.RetryCount,
		cfg.NLP.RetryDelay,
		log,
	)

	// Event publishing is optional; a broker that is down must not keep
	// uploads from working.
	var publisher integration.EventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = integration.NewRabbitMQPublisher(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.RoutingKey,
			cfg.RabbitMQ.Queue,
			log,
		)
		if err != nil {
			log.Error().Err(err).Msg("RabbitMQ unavailable; continuing without event publishing")
			publisher = nil
		}
	}

	uploadService := service.NewUploadService(
		submissionRepo,
		storageRepo,
		hashService,
		duplicateService,
		reportService,
		nlpClient,
		publisher,
		log,
		service.UploadConfig{
			MaxUploadSize: cfg.Server.MaxUploadSize,
			BucketName:    cfg.Storage.BucketName,
		},
	)

	downloadService := service.NewDownloadService(submissionRepo, storageRepo, log)
	deleteService := service.NewDeleteService(submissionRepo, storageRepo, log)

	handler := httpd.NewHandler(
		uploadService,
		downloadService,
		deleteService,
		duplicateService,
		fallbackChecker,
		authService,
		reportService,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		db:        db,
		publisher: publisher,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting submission service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down submission service...")

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close event publisher")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
