package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/shopdemo/authkit/modules/authapi"
	"github.com/shopdemo/authkit/pkg/auth"
	"github.com/shopdemo/authkit/pkg/config"
	"github.com/shopdemo/authkit/pkg/cookie"
	"github.com/shopdemo/authkit/pkg/httpserver"
	"github.com/shopdemo/authkit/pkg/logger"
	"github.com/shopdemo/authkit/pkg/pg"
	"github.com/shopdemo/authkit/pkg/redis"
	"github.com/shopdemo/authkit/pkg/session"
	"github.com/shopdemo/authkit/svc/userstore"
)

// appConfig holds settings not owned by any package config.
type appConfig struct {
	// CookieSecret signs cookie values; rotate by prepending a new secret.
	CookieSecrets []string `env:"COOKIE_SECRET,required" envSeparator:","`
}

func main() {
	var (
		appCfg     appConfig
		logCfg     logger.Config
		pgCfg      pg.Config
		redisCfg   redis.Config
		sessionCfg session.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&httpCfg)

	log := logger.NewFromConfig(logCfg)
	logger.SetAsDefault(log)

	if err := run(context.Background(), log, appCfg, pgCfg, redisCfg, sessionCfg, httpCfg); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	log *slog.Logger,
	appCfg appConfig,
	pgCfg pg.Config,
	redisCfg redis.Config,
	sessionCfg session.Config,
	httpCfg httpserver.Config,
) error {
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	cookieMgr, err := cookie.New(appCfg.CookieSecrets)
	if err != nil {
		return err
	}

	sessionOpts := []session.Option{
		session.WithCookieManager(cookieMgr),
		session.WithLogger(log),
	}

	readiness := []func(context.Context) error{pg.Healthcheck(pool)}

	// Sessions live in Redis when configured, otherwise in process memory.
	if redisCfg.ConnectionURL != "" {
		redisClient, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		sessionOpts = append(sessionOpts, session.WithStore(session.NewRedisStore(redisClient)))
		readiness = append(readiness, redis.Healthcheck(redisClient))
	} else {
		log.InfoContext(ctx, "REDIS_URL not set, using in-memory session store")
	}

	sessions, err := session.New(sessionCfg, sessionOpts...)
	if err != nil {
		return err
	}

	creds := auth.NewService(
		userstore.NewPostgresStore(pool),
		auth.WithLogger(log),
	)

	authHandler := authapi.NewHandler(creds, sessions, authapi.WithLogger(log))

	router := chi.NewRouter()
	router.Mount("/auth", authHandler.Router())
	router.Get("/health", httpserver.HealthCheckHandler(ctx, log, readiness...))

	return httpserver.Run(ctx, router,
		httpserver.WithAddr(httpCfg.Addr),
		httpserver.WithReadTimeout(httpCfg.ReadTimeout),
		httpserver.WithWriteTimeout(httpCfg.WriteTimeout),
		httpserver.WithIdleTimeout(httpCfg.IdleTimeout),
		httpserver.WithShutdownTimeout(httpCfg.ShutdownTimeout),
		httpserver.WithLogger(log),
	)
}
