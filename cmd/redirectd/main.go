package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kwarden/host-redirector/pkg/config"
	"github.com/kwarden/host-redirector/pkg/logging"
	"github.com/kwarden/host-redirector/pkg/resolver"
	"github.com/kwarden/host-redirector/pkg/server"
	"github.com/kwarden/host-redirector/pkg/store"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("REDIRECTD_CONFIG"), "path to redirectd.yaml (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	}).With().Str("component", "main").Logger()

	st, err := openStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer st.Close()

	res, err := resolver.New(resolver.Config{
		Store: st,
		Cache: resolver.NewCache(nil),
		TTL:   cfg.TTL(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create resolver")
	}

	redirectMux := http.NewServeMux()
	redirectMux.Handle("/", server.NewHandler(res, 0))

	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.HandleFunc("/healthz", server.HealthHandler)
	adminMux.HandleFunc("/readyz", server.ReadyHandler(st))

	redirectSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           redirectMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	adminSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.AdminPort),
		Handler:           adminMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", redirectSrv.Addr).
			Str("backend", cfg.Store.Backend).
			Dur("cache_ttl", cfg.TTL()).
			Msg("Redirect server listening")
		if err := redirectSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("redirect server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("addr", adminSrv.Addr).Msg("Admin server listening")
		if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := redirectSrv.Shutdown(shutdownCtx)
		if aerr := adminSrv.Shutdown(shutdownCtx); err == nil {
			err = aerr
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
	logger.Info().Msg("Shutdown complete")
}

// openStore builds the configured durable store backend and verifies it
// is reachable.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			DB:       cfg.Store.Redis.DB,
			Password: cfg.Store.Redis.Password,
		})
		st := store.NewRedisStore(client, cfg.Store.Table)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			st.Close()
			return nil, err
		}
		return st, nil

	case config.BackendLevelDB:
		return store.OpenLevelDBStore(cfg.Store.LevelDB.Path, cfg.Store.Table)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
