// Package persistence wires the configured database into the application.
package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AndresDRamos/sqlite-EZI/internal/common/config"
	"github.com/AndresDRamos/sqlite-EZI/internal/common/logger"
	"github.com/AndresDRamos/sqlite-EZI/internal/db"
)

// NewSelector builds the connection selector described by cfg.
func NewSelector(cfg *config.Config, log *logger.Logger, opts ...db.Option) *db.Selector {
	base := []db.Option{db.WithLogger(log)}
	return db.NewSelector(cfg.Database.Mode(), cfg.Database.URL, append(base, opts...)...)
}

// Provide acquires the database handle used by the application. The
// returned cleanup closes it.
func Provide(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...db.Option) (*db.Handle, func() error, error) {
	selector := NewSelector(cfg, log, opts...)

	handle, err := selector.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", selector.Mode(), err)
	}
	if log != nil {
		log.Info("Database initialized",
			zap.String("db_mode", selector.Mode().String()),
			zap.String("db_target", handle.Target().String()))
	}
	return handle, handle.Close, nil
}
