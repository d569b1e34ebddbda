package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	redisconnadapter "github.com/christophertubbs/redispass/internal/adapter/driven/redisconn"
	sqliteadapter "github.com/christophertubbs/redispass/internal/adapter/driven/sqlite"
	"github.com/christophertubbs/redispass/internal/adapter/driving/cli"
	"github.com/christophertubbs/redispass/internal/application"
	"github.com/christophertubbs/redispass/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration and set up logging.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Resolve the store path: env override, else ~/.redis_pass.db.
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = sqliteadapter.DefaultPath()
		if err != nil {
			return err
		}
	}

	// 4. Open the store and apply migrations.
	db, err := sqliteadapter.NewDB(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing credential store", "error", closeErr)
		}
	}()
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Debug("credential store ready", "path", dbPath)

	// 5. Wire adapters and the selector service.
	store := sqliteadapter.NewCredentialRepo(db)
	connector := redisconnadapter.NewConnector()
	svc := application.NewSelectorService(store, connector)

	// 6. Run the CLI.
	return cli.NewRootCommand(svc).ExecuteContext(ctx)
}
