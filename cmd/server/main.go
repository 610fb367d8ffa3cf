package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gestioncoop/admin-usuarios/internal/api"
	"github.com/gestioncoop/admin-usuarios/internal/core/domain"
	"github.com/gestioncoop/admin-usuarios/internal/core/service"
	"github.com/gestioncoop/admin-usuarios/internal/infrastructure/config"
	"github.com/gestioncoop/admin-usuarios/internal/infrastructure/db/postgres"
	redisdb "github.com/gestioncoop/admin-usuarios/internal/infrastructure/db/redis"
	httpserver "github.com/gestioncoop/admin-usuarios/internal/infrastructure/http"
	"github.com/gestioncoop/admin-usuarios/internal/infrastructure/queue"
	"github.com/gestioncoop/admin-usuarios/internal/token"
	"github.com/gestioncoop/admin-usuarios/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}
	if err := seedAdmin(ctx, db, cfg.Seed); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := postgres.NewUserRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, log)
	dispatcher.Start(ctx)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	lockout := redisdb.NewLoginLockout(rdb, cfg.Lockout.MaxAttempts, cfg.Lockout.Window)

	router := api.NewRouter(api.Deps{
		Logger: log,
		DB:     db,
		Redis:  rdb,
		Issuer: issuer,
		Auth:   service.NewAuthService(userRepo, issuer, lockout, dispatcher, log),
		Users:  service.NewUserService(userRepo, dispatcher, log),
		Audit:  auditRepo,
	})

	srv := httpserver.New(":"+cfg.Port, router, log)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting")
	return srv.Start()
}

// seedAdmin inserts an initial admin row when the usuario table is empty and
// the seed credentials are configured. Without it a fresh database has no one
// able to log in and create the rest.
func seedAdmin(ctx context.Context, db *sql.DB, seed config.SeedConfig) error {
	if seed.AdminUser == "" || seed.AdminPassword == "" {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM usuario").Scan(&count); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO usuario (usuario, clave, rol, estado, activo) VALUES ($1, $2, $3, 'activo', true)`,
		seed.AdminUser, string(hash), string(domain.RoleAdmin),
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
