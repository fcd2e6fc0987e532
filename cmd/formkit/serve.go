package main

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/engine"
	"github.com/dmitrymomot/formkit/pkg/formapi"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/metrics"
	"github.com/dmitrymomot/formkit/pkg/pg"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// envPrefix is prepended to every environment variable read by serve.
const envPrefix = "FORMKIT_"

// Lookup backends and rate limit stores.
const (
	storeMemory = "memory"

	backendNone     = "none"
	backendStatic   = "static"
	backendRedis    = "redis"
	backendPostgres = "postgres"
)

type serveConfig struct {
	SchemaDir       string        `env:"SCHEMA_DIR" envDefault:"./forms"`
	CheckTimeout    time.Duration `env:"CHECK_TIMEOUT" envDefault:"5s"`
	MaxBodySize     int64         `env:"MAX_BODY_SIZE" envDefault:"1048576"`
	LookupBackend   string        `env:"LOOKUP_BACKEND" envDefault:"none"`
	LookupFile      string        `env:"LOOKUP_FILE"`
	LookupCacheSize int           `env:"LOOKUP_CACHE_SIZE" envDefault:"1024"`
	LookupCacheTTL  time.Duration `env:"LOOKUP_CACHE_TTL" envDefault:"1m"`
	MessagesFile    string        `env:"MESSAGES_FILE"`
	DefaultLanguage string        `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	RateLimitStore      string `env:"RATE_LIMIT_STORE" envDefault:"none"`
	RateLimitTrustProxy bool   `env:"RATE_LIMIT_TRUST_PROXY" envDefault:"false"`
	RateLimit           ratelimiter.Config

	HTTP httpserver.Config
}

func newServeCmd(a *app) *cobra.Command {
	var (
		envFiles  []string
		schemaDir string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the forms of a directory over HTTP",
		Long: `Compiles every schema in the schema directory and serves them over HTTP.
Configuration is read from FORMKIT_* environment variables and .env files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []config.Option{config.WithPrefix(envPrefix)}
			if len(envFiles) > 0 {
				opts = append(opts, config.WithEnvFile(envFiles...))
			}
			var cfg serveConfig
			if err := config.Load(&cfg, opts...); err != nil {
				return err
			}
			if schemaDir != "" {
				cfg.SchemaDir = schemaDir
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := a.log.With(logger.Component("serve"))
			handler, cleanup, err := buildService(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
			return srv.Run(ctx, handler)
		},
	}

	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "additional .env files to load")
	cmd.Flags().StringVar(&schemaDir, "schema-dir", "", "directory with schema files (overrides FORMKIT_SCHEMA_DIR)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides FORMKIT_HTTP_ADDR)")
	return cmd
}

// buildService wires lookup backend, engine, metrics and the form catalog
// into the API router. cleanup releases backend connections.
func buildService(ctx context.Context, cfg serveConfig, log *slog.Logger) (http.Handler, func(), error) {
	lookup, checks, cleanup, err := lookupBackend(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := formapi.LoadDir(ctx, cfg.SchemaDir, schemaRegistry(lookup), log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	log.InfoContext(ctx, "forms loaded", slog.Int("count", catalog.Len()), slog.String("dir", cfg.SchemaDir))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.NewRecorder(reg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	eng := engine.New(
		engine.WithLogger(log),
		engine.WithObserver(recorder),
		engine.WithCheckTimeout(cfg.CheckTimeout),
	)

	opts := []formapi.Option{
		formapi.WithEngine(eng),
		formapi.WithLogger(log),
		formapi.WithMaxBodySize(cfg.MaxBodySize),
		formapi.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	}
	if cfg.MessagesFile != "" {
		tr, err := i18n.Load(ctx, cfg.MessagesFile,
			i18n.WithDefaultLanguage(cfg.DefaultLanguage),
			i18n.WithLogger(log),
		)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("messages file: %w", err)
		}
		log.InfoContext(ctx, "messages loaded", slog.Any("languages", tr.Languages()))
		opts = append(opts, formapi.WithTranslator(tr))
	}

	limiter, limiterChecks, closeLimiter, err := rateLimiter(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if limiter != nil {
		keyFunc := ratelimiter.RemoteIP
		if cfg.RateLimitTrustProxy {
			keyFunc = ratelimiter.ClientIP
		}
		opts = append(opts, formapi.WithRateLimiter(limiter, keyFunc))
	}
	if checks == nil {
		checks = make(map[string]httpserver.Check, len(limiterChecks))
	}
	maps.Copy(checks, limiterChecks)

	for name, check := range checks {
		opts = append(opts, formapi.WithReadinessCheck(name, check))
	}
	return formapi.NewRouter(catalog, opts...), func() {
		closeLimiter()
		cleanup()
	}, nil
}

// rateLimiter builds the validate endpoint limiter. The "none" store disables
// rate limiting.
func rateLimiter(ctx context.Context, cfg serveConfig, log *slog.Logger) (ratelimiter.Limiter, map[string]httpserver.Check, func(), error) {
	noop := func() {}

	switch cfg.RateLimitStore {
	case backendNone, "":
		return nil, nil, noop, nil

	case storeMemory:
		store := ratelimiter.NewMemoryStore()
		limiter, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			store.Close()
			return nil, nil, nil, err
		}
		return limiter, nil, store.Close, nil

	case backendRedis:
		var rc redis.Config
		if err := config.Load(&rc, config.WithPrefix(envPrefix)); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, rc)
		if err != nil {
			return nil, nil, nil, err
		}
		limiter, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg.RateLimit)
		if err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		log.InfoContext(ctx, "rate limit store connected", slog.String("store", backendRedis))
		checks := map[string]httpserver.Check{"ratelimit": redis.Healthcheck(client)}
		return limiter, checks, func() { _ = client.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown rate limit store %q", cfg.RateLimitStore)
	}
}

// lookupBackend connects the configured lookup source. Remote backends are
// wrapped in an LRU cache and contribute a readiness check.
func lookupBackend(ctx context.Context, cfg serveConfig, log *slog.Logger) (validator.Lookup, map[string]httpserver.Check, func(), error) {
	noop := func() {}

	switch cfg.LookupBackend {
	case backendNone, "":
		return nil, nil, noop, nil

	case backendStatic:
		if cfg.LookupFile == "" {
			return nil, nil, nil, fmt.Errorf("lookup backend %q needs %sLOOKUP_FILE", backendStatic, envPrefix)
		}
		l, err := loadStaticLookup(ctx, cfg.LookupFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return l, nil, noop, nil

	case backendRedis:
		var rc redis.Config
		if err := config.Load(&rc, config.WithPrefix(envPrefix)); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, rc)
		if err != nil {
			return nil, nil, nil, err
		}
		log.InfoContext(ctx, "lookup backend connected", slog.String("backend", backendRedis))
		checks := map[string]httpserver.Check{backendRedis: redis.Healthcheck(client)}
		lookup := cachedLookup(redis.NewSetLookup(client, rc.KeyPrefix), cfg)
		return lookup, checks, func() { _ = client.Close() }, nil

	case backendPostgres:
		var pc pg.Config
		if err := config.Load(&pc, config.WithPrefix(envPrefix)); err != nil {
			return nil, nil, nil, err
		}
		pool, err := pg.Connect(ctx, pc)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, pc, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		log.InfoContext(ctx, "lookup backend connected", slog.String("backend", backendPostgres))
		checks := map[string]httpserver.Check{backendPostgres: pg.Healthcheck(pool)}
		lookup := cachedLookup(pg.NewTableLookup(pool, pc.LookupTable), cfg)
		return lookup, checks, pool.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown lookup backend %q", cfg.LookupBackend)
	}
}

func cachedLookup(l validator.Lookup, cfg serveConfig) validator.Lookup {
	if cfg.LookupCacheSize <= 0 {
		return l
	}
	return validator.NewCachedLookup(l, cfg.LookupCacheSize, cfg.LookupCacheTTL)
}
