package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"web-summarizer/internal/config"
	hhttp "web-summarizer/internal/handler/http"
	"web-summarizer/internal/handler/http/middleware"
	"web-summarizer/internal/handler/http/requestid"
	"web-summarizer/internal/infra/fetcher"
	"web-summarizer/internal/infra/nlp"
	"web-summarizer/internal/observability/logging"
	"web-summarizer/internal/observability/metrics"
	"web-summarizer/internal/observability/tracing"
	"web-summarizer/internal/usecase/summarize"
	envconfig "web-summarizer/pkg/config"
	"web-summarizer/pkg/security/csp"

	_ "web-summarizer/docs" // swagger docs
)

// @title           Web Summarizer API
// @version         1.0
// @description     Fetches a web page and returns an extractive summary of its paragraph text.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewLogger().Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// server holds what run needs besides the handler.
type server struct {
	handler     http.Handler
	rateLimiter *middleware.IPRateLimiter
}

func run(cfg config.Config, logger *slog.Logger) error {
	_, shutdownTracing, err := tracing.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	res, err := nlp.Init(cfg.NLP)
	if err != nil {
		metrics.SetNLPResourcesLoaded(false)
		return err
	}
	metrics.SetNLPResourcesLoaded(true)

	srv, err := setupServer(cfg, logger, res)
	if err != nil {
		return err
	}

	return serve(cfg, logger, srv)
}

// setupServer builds the routes and the middleware chain.
func setupServer(cfg config.Config, logger *slog.Logger, res *nlp.Resources) (*server, error) {
	f, err := fetcher.New(cfg.Fetcher)
	if err != nil {
		return nil, err
	}
	svc := summarize.NewService(f, summarize.NewSummarizer(res), summarize.PrometheusMetrics{})
	fc := f.Config()
	logger.Info("content fetcher configured",
		slog.String("extractor", fc.Extractor),
		slog.Duration("timeout", fc.Timeout),
		slog.Bool("deny_private_ips", fc.DenyPrivateIPs),
		slog.Bool("circuit_breaker", fc.CircuitBreaker))
	if !fc.DenyPrivateIPs {
		logger.Warn("SSRF protection is disabled; private and loopback targets can be fetched")
	}

	nlpCheck := func() error {
		_, err := nlp.Default()
		return err
	}

	health := &hhttp.HealthHandler{Version: cfg.Version, NLP: nlpCheck}
	if b := f.Breaker(); b != nil {
		health.Breaker = b
	}

	var rateLimiter *middleware.IPRateLimiter
	var rateLimitMW hhttp.Middleware
	if cfg.RateLimit.Enabled {
		proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			return nil, err
		}
		rateLimiter = middleware.NewIPRateLimiter(cfg.RateLimit, middleware.NewIPExtractor(proxies))
		rateLimitMW = rateLimiter.Middleware()
		health.RateLimiter = rateLimiter
		logger.Info("IP rate limiting enabled",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Int("trusted_proxies", len(proxies)))
	} else {
		logger.Warn("IP rate limiting is disabled")
	}

	corsConfig, err := middleware.NewCORSConfig(cfg.CORS, &middleware.SlogAdapter{Logger: logger})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/summarize/", hhttp.SummarizeHandler{
		Svc:              svc,
		DefaultSentences: cfg.Summary.DefaultSentences,
		MaxSentences:     cfg.Summary.MaxSentences,
	})
	mux.Handle("/health", health)
	mux.Handle("/ready", &hhttp.ReadyHandler{NLP: nlpCheck})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Outermost first.
	handler := hhttp.Chain(mux,
		middleware.CORS(corsConfig),
		requestid.Middleware,
		middleware.SecurityHeaders(cfg.Security, csp.APIPolicy(), map[string]csp.Policy{
			"/swagger/": csp.SwaggerUIPolicy(),
		}),
		tracing.Middleware,
		rateLimitMW,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		hhttp.InputValidation(cfg.HTTP.MaxURILength),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
		hhttp.MetricsMiddleware,
	)

	return &server{handler: handler, rateLimiter: rateLimiter}, nil
}

// serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down.
func serve(cfg config.Config, logger *slog.Logger, s *server) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	if s.rateLimiter != nil {
		interval := envconfig.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", time.Minute)
		g.Go(func() error {
			s.rateLimiter.Run(gctx, interval)
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
