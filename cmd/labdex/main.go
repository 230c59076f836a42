package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/labdex/internal/config"
	"github.com/kailas-cloud/labdex/internal/db/postgres"
	logpkg "github.com/kailas-cloud/labdex/internal/logger"
	"github.com/kailas-cloud/labdex/internal/metrics"
	"github.com/kailas-cloud/labdex/internal/version"
)

// app carries the resources shared by all subcommands.
type app struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	root := &cobra.Command{
		Use:               "labdex",
		Short:             "labdex sample search API",
		SilenceUsage:      true,
		Version:           version.String(),
		PersistentPreRunE: a.init,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPostRunE: a.close,
	}
	root.AddCommand(newServeCmd(a), newMigrateCmd(a), newSeedCmd(a))

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (a *app) init(_ *cobra.Command, _ []string) error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	a.env = config.GetEnv()
	cfg, err := config.Load(a.env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) close(_ *cobra.Command, _ []string) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

// openStore connects to PostgreSQL and waits until it answers.
func (a *app) openStore(ctx context.Context) (*postgres.Store, error) {
	db := a.cfg.Database
	metrics.RegisterDatabaseMetrics()

	store, err := postgres.NewStore(postgres.Config{
		Host:            db.Host,
		Port:            db.Port,
		User:            db.User,
		Password:        db.Password,
		Name:            db.Name,
		SSLMode:         db.SSLMode,
		MaxOpenConns:    db.MaxOpenConns,
		MaxIdleConns:    db.MaxIdleConns,
		ConnMaxLifetime: db.ConnMaxLifetime(),
		SlowThreshold:   db.SlowThreshold(),
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(db.ReadinessTimeout)*time.Second); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	a.logger.Info("Connected to database",
		zap.String("host", db.Host),
		zap.Int("port", db.Port),
		zap.String("name", db.Name),
	)
	return store, nil
}
