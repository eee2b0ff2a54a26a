// Command quizapi runs the quiz REST API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/quizapi/internal/auth"
	"github.com/skillsenselab/quizapi/internal/config"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/middleware"
	"github.com/skillsenselab/quizapi/internal/observability"
	"github.com/skillsenselab/quizapi/internal/server"
	"github.com/skillsenselab/quizapi/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: search standard locations)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewDefault().Fatal("Failed to load configuration", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}

	log := logger.New(cfg.Logging)
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    "quizapi",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Environment,
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			SampleRate:     cfg.Tracing.SampleRate,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer", map[string]interface{}{
				logger.FieldError: err.Error(),
			})
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	st, err := store.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}
	defer func() { _ = st.Close() }()

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL,
	})
	if err != nil {
		log.Fatal("Failed to configure token service", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}

	srv := server.New(cfg.Server, log)
	server.BuildRouter(srv.Engine(), server.Deps{
		Config:  cfg,
		Store:   st,
		Tokens:  tokens,
		Hasher:  auth.NewPasswordHasher(),
		Limiter: middleware.NewRateLimiter(cfg.RateLimit),
		Log:     log,
	})

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Shutdown failed", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
		os.Exit(1)
	}
}
