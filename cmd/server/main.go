package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abaaza/wallmastersbackend/config"
	"github.com/Abaaza/wallmastersbackend/internal/email"
	"github.com/Abaaza/wallmastersbackend/internal/health"
	"github.com/Abaaza/wallmastersbackend/internal/infrastructure/postgres"
	"github.com/Abaaza/wallmastersbackend/internal/janitor"
	ctxlog "github.com/Abaaza/wallmastersbackend/internal/log"
	"github.com/Abaaza/wallmastersbackend/internal/metrics"
	"github.com/Abaaza/wallmastersbackend/internal/token"
	httptransport "github.com/Abaaza/wallmastersbackend/internal/transport/http"
	"github.com/Abaaza/wallmastersbackend/internal/transport/http/handler"
	"github.com/Abaaza/wallmastersbackend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// .env is a local-dev convenience; absent in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	tokens := token.NewService([]byte(cfg.JWTSecret), []byte(cfg.JWTRefreshSecret))
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokens)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, sender, cfg.ResetLinkBase)
	addressUsecase := usecase.NewAddressUsecase(userRepo)
	savedItemsUsecase := usecase.NewSavedItemsUsecase(userRepo)

	contactHandler, err := handler.NewContactHandler(sender, cfg.ContactInbox, logger)
	if err != nil {
		stop()
		log.Fatalf("contact handler: %v", err)
	}

	handlers := httptransport.Handlers{
		Auth:          handler.NewAuthHandler(authUsecase, tokens, logger),
		PasswordReset: handler.NewPasswordResetHandler(resetUsecase, logger),
		Address:       handler.NewAddressHandler(addressUsecase, logger),
		SavedItems:    handler.NewSavedItemsHandler(savedItemsUsecase, logger),
		Product:       handler.NewProductHandler(productRepo, logger),
		Contact:       contactHandler,
	}

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	resetJanitor := janitor.New(userRepo, logger)
	if err := resetJanitor.Start(); err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, handlers, tokens, cfg.AuthRateLimit),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	resetJanitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
