// Command api serves the articles API of the news agency.
//
// @title                      News Agency Articles API
// @version                    1.0
// @description                Public listing and newsroom administration of news articles.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                "Bearer " followed by a token from POST /auth/token.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	pgRepo "news-agency/internal/infra/adapter/persistence/postgres"
	"news-agency/internal/infra/db"
	"news-agency/internal/observability/logging"
	"news-agency/internal/observability/metrics"
	"news-agency/internal/observability/tracing"
	"news-agency/internal/resilience/circuitbreaker"
	"news-agency/internal/resilience/retry"
	artUC "news-agency/internal/usecase/article"
	"news-agency/pkg/config"

	hhttp "news-agency/internal/handler/http"
	harticle "news-agency/internal/handler/http/article"
	hauth "news-agency/internal/handler/http/auth"
	"news-agency/internal/handler/http/middleware"
	"news-agency/internal/handler/http/requestid"
	"news-agency/internal/handler/http/respond"
	authservice "news-agency/internal/service/auth"

	_ "news-agency/docs" // swagger docs
)

const maxBodyBytes = 1 << 20

func main() {
	logger := initLogger()

	authCfg := config.LoadAuthConfig()
	if err := authCfg.Validate(); err != nil {
		logger.Error("invalid admin auth configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.Init(tracing.Config{
		Enabled:     config.GetEnvBool("OTEL_ENABLED", false),
		ServiceName: config.GetEnvString("OTEL_SERVICE_NAME", "news-agency-api"),
		SampleRatio: config.GetEnvFloat("OTEL_SAMPLE_RATIO", 1.0),
	})

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	rateCfg := config.LoadRateLimitConfig()
	if rateCfg.Enabled {
		logger.Info("rate limiting enabled",
			slog.Float64("rps", rateCfg.RPS),
			slog.Int("burst", rateCfg.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}
	limiter := middleware.NewRateLimiter(rateCfg, config.GetEnvBool("TRUST_PROXY", false))
	defer limiter.Stop()

	version := config.GetEnvString("VERSION", "dev")
	handler := setupRouter(logger, database, limiter, authCfg, version)

	runServer(logger, handler, version)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("tracer shutdown failed", slog.Any("error", err))
	}
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

func initDatabase(logger *slog.Logger) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.OpenWithRetry(ctx, config.LoadDatabaseConfig(), retry.StartupConfig())
	if err != nil {
		logger.Error("failed to open database", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	seeded, err := db.Seed(ctx, database)
	if err != nil {
		// 空テーブルのまま起動しても API は使える
		logger.Warn("failed to seed sample articles", slog.Any("error", err))
	} else if seeded > 0 {
		logger.Info("seeded sample articles", slog.Int64("count", seeded))
	}
	return database
}

func setupRouter(
	logger *slog.Logger,
	database *sql.DB,
	limiter *middleware.RateLimiter,
	authCfg config.AuthConfig,
	version string,
) http.Handler {
	cbCfg := circuitbreaker.DBConfig()
	cbCfg.OnStateChange = func(_ string, _, to gobreaker.State) {
		metrics.DBCircuitBreakerState.Set(float64(to))
	}
	breaker := circuitbreaker.NewDBCircuitBreakerWithConfig(database, cbCfg)
	artSvc := &artUC.Service{Repo: pgRepo.NewArticleRepo(breaker)}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.CORS(middleware.DefaultCORSConfig()),
		middleware.SecurityHeaders("/swagger/"),
		limiter.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(maxBodyBytes),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)

	r.Method(http.MethodGet, "/health", &hhttp.HealthHandler{DB: database, Breaker: breaker, Version: version})
	r.Method(http.MethodGet, "/ready", &hhttp.ReadyHandler{DB: database})
	r.Method(http.MethodGet, "/live", &hhttp.LiveHandler{})
	r.Method(http.MethodGet, "/metrics", hhttp.MetricsHandler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	articles := harticle.Handler{Svc: artSvc, Logger: logger}
	if authCfg.Enabled {
		provider := hauth.NewBasicAuthProvider(authCfg.AdminUser, authCfg.AdminPassword)
		authSvc := authservice.NewAuthService(provider, authCfg.JWTSecret, authCfg.TokenTTL)
		r.Post("/auth/token", hauth.TokenHandler(authSvc, logger))
		harticle.Register(r, articles, hauth.Guard(authSvc, logger))
		logger.Info("admin auth enabled",
			slog.String("provider", provider.Name()),
			slog.Duration("token_ttl", authCfg.TokenTTL))
	} else {
		harticle.Register(r, articles)
		logger.Warn("admin auth is DISABLED - admin actions are open to anyone who can reach the API")
	}

	return r
}

func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
