package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aloks98/taskboard/internal/config"
	"github.com/aloks98/taskboard/internal/database"
	"github.com/aloks98/taskboard/internal/httpapi"
	"github.com/aloks98/taskboard/internal/password"
	"github.com/aloks98/taskboard/internal/projects"
	"github.com/aloks98/taskboard/internal/token"
	"github.com/aloks98/taskboard/internal/users"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	dialect, err := database.ParseDialect(cfg.DatabaseDialect)
	if err != nil {
		return err
	}

	db, err := database.Open(&database.Config{
		Dialect:         dialect,
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Ping(ctx); err != nil {
		return err
	}
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	userSvc := users.NewService(users.NewSQLStore(db), password.NewBcryptHasher(password.DefaultBcryptCost))
	projectSvc := projects.NewService(projects.NewSQLStore(db))
	tokenSvc := token.NewService(&token.Config{
		Secret:        cfg.Secret,
		SigningMethod: cfg.SigningMethod,
		TTL:           cfg.AccessTokenTTL,
		ClockSkew:     cfg.ClockSkew,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(userSvc, projectSvc, tokenSvc, log, cfg.AllowedOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr, "dialect", cfg.DatabaseDialect)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
