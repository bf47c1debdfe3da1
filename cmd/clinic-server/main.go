package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dentalcare/dentalcare/internal/config"
	"github.com/dentalcare/dentalcare/internal/domain/booking"
	"github.com/dentalcare/dentalcare/internal/domain/doctor"
	"github.com/dentalcare/dentalcare/internal/domain/payment"
	"github.com/dentalcare/dentalcare/internal/domain/treatment"
	"github.com/dentalcare/dentalcare/internal/domain/user"
	"github.com/dentalcare/dentalcare/internal/platform/auth"
	"github.com/dentalcare/dentalcare/internal/platform/db"
	"github.com/dentalcare/dentalcare/internal/platform/middleware"
	"github.com/dentalcare/dentalcare/internal/platform/notify"
	"github.com/dentalcare/dentalcare/internal/platform/payments"
)

func main() {
	root := &cobra.Command{
		Use:   "clinic-server",
		Short: "Dental clinic booking API",
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "dev-only-secret"
		logger.Warn().Msg("JWT_SECRET not set, using a development secret")
	}
	issuer := auth.NewIssuer(secret)

	var notifier notify.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			Fallback: cfg.FallbackEmail,
		})
	} else {
		logger.Info().Msg("no SMTP relay configured, confirmations go to the log")
		notifier = notify.NewConsoleNotifier(logger)
	}

	var lock *booking.TripleLock
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		lock = booking.NewTripleLock(redis.NewClient(opts))
		logger.Info().Msg("redis booking lock enabled")
	}

	processor := payments.NewStripeClient(cfg.StripeKey, cfg.StripeBaseURL)

	bookingRepo := booking.NewRepoPG(pool)
	treatmentSvc := treatment.NewService(treatment.NewRepoPG(pool), bookingRepo)
	bookingSvc := booking.NewService(bookingRepo, notifier, lock, logger)
	paymentSvc := payment.NewService(payment.NewRepoPG(pool), bookingRepo, processor, logger)
	userSvc := user.NewService(user.NewRepoPG(pool), issuer)
	doctorSvc := doctor.NewService(doctor.NewRepoPG(pool))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	e.GET("/health", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	authed := api.Group("", auth.Middleware(issuer))
	admin := authed.Group("", auth.RequireAdmin(userSvc))

	treatment.NewHandler(treatmentSvc).RegisterRoutes(api, admin)
	booking.NewHandler(bookingSvc).RegisterRoutes(authed)
	payment.NewHandler(paymentSvc).RegisterRoutes(authed)
	user.NewHandler(userSvc).RegisterRoutes(api, authed, admin)
	doctor.NewHandler(doctorSvc).RegisterRoutes(api, admin)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// withPool loads the config, opens a pool, runs fn and tears everything down.
// Shared by the one-shot commands.
func withPool(fn func(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, pool, logger)
}

func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "migrations", "migrations directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
				count, err := db.NewMigrator(pool, dir).Up(ctx)
				if err != nil {
					return err
				}
				logger.Info().Int("applied", count).Msg("migrations complete")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
				statuses, err := db.NewMigrator(pool, dir).Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Printf("%03d %-40s %s\n", s.Version, s.Name, state)
				}
				return nil
			})
		},
	})

	return cmd
}
