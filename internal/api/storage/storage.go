package storage

import (
	"context"
	"log/slog"

	"github.com/highcastle01/WSD-Assignment-03/internal/api/model"
	"github.com/highcastle01/WSD-Assignment-03/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

// Storage runs every API query against PostgreSQL
type Storage struct {
	db     *sqlx.DB
	pg     *postgresql.Client
	logger *slog.Logger
}

func NewStorage(pg *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		db:     pg.GetDB(),
		pg:     pg,
		logger: logger,
	}
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

func (s *Storage) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return s.pg.WithTx(ctx, fn)
}

// orderBy resolves a public sort key to a column, falling back to def
func orderBy(columns map[string]string, sortBy, order, def string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = def
	}
	if order == "ASC" {
		return column + " ASC"
	}
	return column + " DESC"
}

// Migrate synchronizes every API table
func (s *Storage) Migrate(ctx context.Context) error {
	return s.pg.AutoMigrate(ctx, model.AllModels()...)
}
