package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// AutoMigrate synchronizes the tables declared by models. gorm runs on top of
// the client's existing connection pool, so no second pool is opened.
func (c *Client) AutoMigrate(ctx context.Context, models ...any) error {
	gormLog := gormlogger.New(
		slog.NewLogLogger(c.logger.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: c.db.DB}), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open schema migrator: %w", err)
	}

	c.logger.Info("Synchronizing database schema",
		slog.Int("models", len(models)),
	)

	if err := gdb.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	c.logger.Info("Database schema synchronized")
	return nil
}
