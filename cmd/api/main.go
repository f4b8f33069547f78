package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/offineeds/oms/internal/access"
	"github.com/offineeds/oms/internal/config"
	"github.com/offineeds/oms/internal/httpapi"
	"github.com/offineeds/oms/internal/identity"
	"github.com/offineeds/oms/internal/obs"
	"github.com/offineeds/oms/internal/records"
	"github.com/offineeds/oms/internal/session"
	"github.com/offineeds/oms/internal/store/pg"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (default: OMS_CONFIG env)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		obs.ConfigureLogger(os.Stderr, "info", false)
		obs.Logger().Fatal().Err(err).Msg("load config")
	}

	obs.ConfigureLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty)
	obs.Init()
	obs.InitBuildInfo(version, commit)
	log := obs.Logger()

	store, err := pg.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer store.Close()

	var provider identity.Provider
	switch cfg.Identity.Mode {
	case "remote":
		provider = identity.NewHTTPProvider(cfg.Identity.BaseURL, cfg.Identity.APIKey,
			identity.WithTimeout(cfg.Identity.Timeout))
	default:
		local, err := identity.NewLocalProvider(store, cfg.Auth.TokenSecret,
			identity.WithTokenTTL(cfg.Auth.TokenTTL))
		if err != nil {
			log.Fatal().Err(err).Msg("init identity provider")
		}
		provider = local
	}

	resolver := access.NewResolver(store,
		access.WithCacheSize(cfg.Cache.MaxEntries),
		access.WithCacheTTL(cfg.Cache.TTL),
		access.WithLogger(log),
	)

	recs, err := records.NewService(store)
	if err != nil {
		log.Fatal().Err(err).Msg("init record service")
	}

	sessions := session.NewManager(provider, session.NewFileStore(cfg.SnapshotPath),
		session.WithLogger(log))
	// Revalidates any session restored from a previous run.
	sessions.CheckAuth(context.Background())

	api := httpapi.New(httpapi.Config{
		ReadyProbe: httpapi.ReadyProbe{DB: store.DB()},
		Version:    version,
		Sessions:   sessions,
		Provider:   provider,
		Resolver:   resolver,
		Records:    recs,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Str("version", version).Msg("starting oms-api")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Info().Msg("stopped")
}
