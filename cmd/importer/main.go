package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/storage"
	"github.com/highcastle01/WSD-Assignment-03/internal/config"
	"github.com/highcastle01/WSD-Assignment-03/internal/importer"
	"github.com/highcastle01/WSD-Assignment-03/shared/logger"
	"github.com/highcastle01/WSD-Assignment-03/shared/postgresql"
	"github.com/joho/godotenv"
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

	defaultConfigPath := os.Getenv("IMPORTER_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/importer/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	jobsPath := flag.String("jobs", "", "Path to the crawled jobs JSON array")
	reviewsPath := flag.String("reviews", "", "Path to the crawled company review JSONL file")
	flag.Parse()

	if *jobsPath == "" && *reviewsPath == "" {
		return errors.New("nothing to import: pass -jobs and/or -reviews")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateImporterConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting importer",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("jobs", *jobsPath),
		slog.String("reviews", *reviewsPath),
	)

	dbClient, err := initPostgreSQL(&cfg.Database, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storage.NewStorage(dbClient, appLogger.Logger)
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	loc, err := time.LoadLocation(cfg.Importer.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	im := importer.New(&importer.Config{
		Logger:       appLogger.With(slog.String("component", "importer")).Logger,
		Store:        store,
		OwnerEmail:   cfg.Importer.OwnerEmail,
		OwnerName:    cfg.Importer.OwnerName,
		ReviewRating: cfg.Importer.ReviewRating,
		Location:     loc,
	})
	if err := im.EnsureOwner(ctx); err != nil {
		return err
	}

	if *jobsPath != "" {
		if err := importFile(ctx, appLogger.Logger, "jobs", *jobsPath, im.ImportJobs); err != nil {
			return err
		}
	}
	if *reviewsPath != "" {
		if err := importFile(ctx, appLogger.Logger, "company_reviews", *reviewsPath, im.ImportReviews); err != nil {
			return err
		}
	}

	appLogger.Info("Import complete",
		slog.String("db_stats", dbClient.Stats()),
	)
	return nil
}

func importFile(
	ctx context.Context,
	logger *slog.Logger,
	kind, path string,
	load func(context.Context, io.Reader) (importer.Result, error),
) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s file: %w", kind, err)
	}
	defer f.Close()

	start := time.Now()
	res, err := load(ctx, f)
	logger.Info("Imported file",
		slog.String("kind", kind),
		slog.String("path", path),
		slog.Int("imported", res.Imported),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed),
		slog.Duration("took", time.Since(start)),
	)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", kind, err)
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
