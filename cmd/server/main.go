// Command server runs the workforce auth API.
//
//	@title						Workforce Auth API
//	@version					1.0
//	@description				One-time-passcode login and session issuance for the workforce app.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/workforce-hub/auth-api/internal/api"
	"github.com/workforce-hub/auth-api/internal/api/handler"
	"github.com/workforce-hub/auth-api/internal/pkg/metrics"
	"github.com/workforce-hub/auth-api/internal/core/ledger"
	"github.com/workforce-hub/auth-api/internal/core/ports"
	"github.com/workforce-hub/auth-api/internal/core/service"
	"github.com/workforce-hub/auth-api/internal/infrastructure/config"
	"github.com/workforce-hub/auth-api/internal/infrastructure/db/memory"
	mongodb "github.com/workforce-hub/auth-api/internal/infrastructure/db/mongo"
	redisdb "github.com/workforce-hub/auth-api/internal/infrastructure/db/redis"
	"github.com/workforce-hub/auth-api/internal/infrastructure/notifier"
	"github.com/workforce-hub/auth-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || !cfg.IsProduction(),
		Service: "workforce-auth-api",
		Env:     cfg.Env,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := service.NewSessionIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("session issuer")
	}

	var pingers []handler.Pinger

	otpLedger, closeLedger := buildLedger(ctx, cfg, log, &pingers)
	defer closeLedger()

	users, closeUsers := buildUserStore(ctx, cfg, log, &pingers)
	defer closeUsers()

	resolver := service.NewIdentityResolver(users, service.ResolverConfig{
		DefaultName:            cfg.Users.DefaultName,
		PlaceholderEmailDomain: cfg.Users.PlaceholderEmailDomain,
		AutoProvision:          cfg.Users.AutoProvision,
	}, log)

	authService := service.NewAuthService(service.AuthServiceConfig{
		Ledger:   otpLedger,
		Notifier: notifier.NewLogNotifier(log),
		Resolver: resolver,
		Tokens:   tokens,
		Bypass: service.BypassGate{
			Enabled:     cfg.Bypass.Enabled,
			Production:  cfg.IsProduction(),
			Identifier:  cfg.Bypass.Identifier,
			Name:        cfg.Bypass.Name,
			CountryCode: cfg.Bypass.CountryCode,
		},
		ExposeCode: !cfg.IsProduction(),
	}, log)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e := api.NewRouter(api.Dependencies{
		Auth:       authService,
		Users:      service.NewUserService(users),
		Verifier:   tokens,
		Pingers:    pingers,
		Log:        log,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
		EnableDocs: !cfg.IsProduction(),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("otp_backend", cfg.OTP.Backend).Str("user_store", cfg.Users.Store).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func buildLedger(ctx context.Context, cfg *config.Config, log zerolog.Logger, pingers *[]handler.Pinger) (ports.OTPLedger, func()) {
	if cfg.OTP.Backend != config.BackendRedis {
		return ledger.New(ledger.Options{TTL: cfg.OTP.TTL}), func() {}
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	*pingers = append(*pingers, redisdb.Pinger{Client: client})

	l := redisdb.NewOTPLedger(client, redisdb.LedgerOptions{
		TTL:       cfg.OTP.TTL,
		Retention: cfg.OTP.Retention,
	})
	return l, func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
}

func buildUserStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, pingers *[]handler.Pinger) (ports.UserRepository, func()) {
	if cfg.Users.Store != config.BackendMongo {
		return memory.NewUserRepository(), func() {}
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb")
	}
	*pingers = append(*pingers, mongodb.Pinger{DB: db})

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb indexes")
	}
	return repo, func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}
}
