// Package main is the ventanilla-db command. It opens the database selected
// by NODE_ENV (SQLite ventanilla.db in development, PostgreSQL at
// DATABASE_URL in production) and reports on it.
//
// Usage:
//
//	ventanilla-db [flags] ping
//	ventanilla-db [flags] tables
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/AndresDRamos/sqlite-EZI/internal/common/config"
	"github.com/AndresDRamos/sqlite-EZI/internal/common/logger"
	"github.com/AndresDRamos/sqlite-EZI/internal/common/tracing"
	"github.com/AndresDRamos/sqlite-EZI/internal/persistence"
)

var errUsage = errors.New("usage: ventanilla-db [flags] ping|tables")

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so that deferred flushes run before exit.
func realMain() int {
	configPath := flag.String("config", "", "Directory containing config.yaml")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (text, json)")
	flag.Parse()

	cfg, err := config.LoadWithPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}

	log, err := logger.NewLogger(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tracing.Init(ctx, cfg.Tracing); err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	if err := run(ctx, cfg, log, flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		log.Error("command failed", zap.Error(err))
		return 1
	}
	return 0
}

// run executes one subcommand against a freshly acquired handle.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	command := args[0]
	if command != "ping" && command != "tables" {
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	log = log.WithFields(zap.String("command", command))

	handle, cleanup, err := persistence.Provide(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	switch command {
	case "ping":
		fmt.Fprintf(out, "mode: %s\ntarget: %s\n", cfg.Database.Mode(), handle.Target())
		return nil
	default:
		counts, err := handle.TableCounts(ctx)
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			fmt.Fprintln(out, "no tables")
			return nil
		}
		for _, c := range counts {
			fmt.Fprintf(out, "%s\t%d\n", c.Table, c.Rows)
		}
		log.Debug("listed tables", zap.Int("count", len(counts)))
		return nil
	}
}
