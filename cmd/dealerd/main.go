package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/lotwise/dealerd/internal/analytics"
	"github.com/lotwise/dealerd/internal/auth"
	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/config"
	"github.com/lotwise/dealerd/internal/media"
	"github.com/lotwise/dealerd/internal/notify"
	"github.com/lotwise/dealerd/internal/sales"
	"github.com/lotwise/dealerd/internal/server"
	"github.com/lotwise/dealerd/internal/store/postgres"
	redisstore "github.com/lotwise/dealerd/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("DEALERD_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("DEALERD_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	// Connect to Redis when configured. Without it, the profile cache runs
	// in-process and the live sale feed is not served.
	var redisClient *redisstore.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	// The profile cache backs the authorization gate.
	var cache authgate.ProfileCache
	if redisClient != nil {
		cache = redisstore.NewProfileCache(redisClient)
	} else {
		cache = authgate.NewMemoryCache()
		log.Info().Msg("redis not configured, using in-process profile cache")
	}
	gate := authgate.New(store.Profiles(), cache, cfg.Cache.ProfileTTL)

	// Create auth service.
	authSvc := auth.NewService(store.Profiles(), cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	var google *auth.OAuthProvider
	if cfg.Google.Enabled() {
		google = auth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
		log.Info().Msg("google sign-in enabled")
	}

	// Lead notifications go to Slack when configured.
	var notifier notify.LeadNotifier = notify.NopNotifier{}
	if cfg.Slack.Enabled() {
		notifier = notify.NewSlackNotifier(slacklib.New(cfg.Slack.BotToken), cfg.Slack.Channel)
		log.Info().Str("channel", cfg.Slack.Channel).Msg("slack lead notifications enabled")
	}

	// Vehicle media lives on local disk when a root is configured.
	var mediaStore media.Store = media.NopStore{}
	if cfg.Media.Root != "" {
		mediaStore = media.NewLocalStore(cfg.Media.Root)
	}

	// Sale fan-out (view invalidation, live feed) rides on Redis.
	var views sales.ViewInvalidator
	var events sales.Publisher
	if redisClient != nil {
		views = redisClient
		events = redisClient
	}

	saleSvc := sales.NewProcessor(gate, store.Sales(), store.Vehicles(), mediaStore, views, events)
	analyticsSvc := analytics.NewEngine(gate, store.Analytics())

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, store, redisClient, gate, authSvc, saleSvc, analyticsSvc, notifier, google)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
