package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/auth"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/cache"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/events"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/handler"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/router"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/service"
	"github.com/highcastle01/WSD-Assignment-03/internal/api/storage"
	"github.com/highcastle01/WSD-Assignment-03/internal/config"
	"github.com/highcastle01/WSD-Assignment-03/shared/logger"
	"github.com/highcastle01/WSD-Assignment-03/shared/postgresql"
	"github.com/highcastle01/WSD-Assignment-03/shared/rabbitmq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	dbClient, err := initPostgreSQL(&cfg.Database, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbClient.Close()

	store := storage.NewStorage(dbClient, appLogger.Logger)
	if cfg.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := store.Migrate(migrateCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	var companyCache service.CompanyCache = cache.Noop{}
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()
		companyCache = initCompanyCache(redisClient, &cfg.Redis, appLogger.Logger)
	}

	health := healthChecks{db: dbClient}
	var publisher service.EventPublisher = events.Noop{Logger: appLogger.Logger}
	if cfg.RabbitMQ.Enabled {
		rabbitClient, err := initRabbitMQ(&cfg.RabbitMQ, appLogger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		defer rabbitClient.Close()
		health.rabbit = rabbitClient
		publisher = events.NewRabbitPublisher(rabbitClient, cfg.RabbitMQ.Publish.Timeout, appLogger.Logger)
		appLogger.Info("RabbitMQ connection established")
	}

	tokens := auth.NewTokenManager(auth.Config{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
		Issuer:        cfg.Auth.Issuer,
	})

	r := initRouter(cfg, appLogger.Logger, store, companyCache, publisher, tokens, health)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	appLogger.Info("API service is running",
		slog.String("address", addr),
		slog.String("base_path", cfg.Server.BasePath),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete",
		slog.String("db_stats", dbClient.Stats()),
	)
	return nil
}

// healthChecks reports unhealthy when the database is unreachable or the
// publisher lost its broker connection
type healthChecks struct {
	db     *postgresql.Client
	rabbit *rabbitmq.Client
}

func (h healthChecks) HealthCheck(ctx context.Context) error {
	if err := h.db.HealthCheck(ctx); err != nil {
		return err
	}
	if h.rabbit != nil && !h.rabbit.IsConnected() {
		return errors.New("rabbitmq connection lost")
	}
	return nil
}

func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	})
}

func initPostgreSQL(cfg *config.DatabaseConfig, logger *slog.Logger) (*postgresql.Client, error) {
	return postgresql.NewClient(&postgresql.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}, logger)
}

// initRabbitMQ connects a publisher. Only the worker declares the history queue.
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	return rabbitmq.NewClient(&rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		ExchangeAutoDelete: cfg.Exchange.AutoDelete,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		ConnectionTimeout:  cfg.Connection.ConnectionTimeout,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
		PublishBackoffMult: cfg.Publish.BackoffMultiplier,
	}, logger)
}

func initCompanyCache(client *redis.Client, cfg *config.RedisConfig, logger *slog.Logger) *cache.CompanyCache {
	logger.Info("Company cache enabled",
		slog.String("addr", cfg.Addr),
		slog.Duration("ttl", cfg.CompanyCacheTTL),
	)
	return cache.NewCompanyCache(client, cfg.CompanyCacheTTL, logger)
}

func initRouter(
	cfg *config.Config,
	logger *slog.Logger,
	store *storage.Storage,
	companyCache service.CompanyCache,
	publisher service.EventPublisher,
	tokens *auth.TokenManager,
	health router.HealthChecker,
) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	searches := service.NewSearchHistoryService(store, logger)

	deps := &handler.Dependencies{
		Logger:           logger,
		ExposeErrors:     !cfg.App.IsProduction(),
		Auth:             service.NewAuthService(store, tokens, cfg.Auth.BcryptCost, logger),
		Jobs:             service.NewJobService(store, companyCache, logger),
		Applications:     service.NewApplicationService(store, publisher, logger),
		Bookmarks:        service.NewBookmarkService(store, logger),
		Searches:         searches,
		Companies:        service.NewCompanyService(store, companyCache, searches, logger),
		CompanyReviews:   service.NewCompanyReviewService(store, searches, logger),
		InterviewReviews: service.NewInterviewReviewService(store, searches, logger),
		Interviews:       service.NewInterviewService(store, publisher, logger),
		ApplicantGroups:  service.NewApplicantGroupService(store, logger),
	}

	return router.SetupRouter(deps, router.Options{
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ServiceName:    cfg.App.Name,
		Verifier:       tokens,
		Health:         health,
	})
}
