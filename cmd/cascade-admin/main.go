package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-cascade/internal/catalog"
	"github.com/goliatone/go-cascade/internal/config"
	"github.com/goliatone/go-cascade/pkg/admin"
	"github.com/goliatone/go-cascade/pkg/orchestrator"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/renderers/jsonform"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "record store: yaml, sqlite or memory")
	flag.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "YAML file or SQLite DSN")
	flag.StringVar(&cfg.Plugins, "plugins", cfg.Plugins, "plugin definitions YAML (builtins if empty)")
	flag.StringVar(&cfg.Presets, "presets", cfg.Presets, "JSON form presets")
	flag.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "default renderer")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatalf("cascade-admin: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	sites, err := cfg.SiteResolver()
	if err != nil {
		return err
	}
	store, closer, err := cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	plugins := catalog.Builtins()
	if cfg.Plugins != "" {
		if plugins, err = catalog.Load(cfg.Plugins); err != nil {
			return err
		}
	}
	pool, err := orchestrator.NewPool(plugins...)
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		return err
	}
	registry.MustRegister(html)
	registry.MustRegister(jsonform.New(false))

	options := []orchestrator.Option{
		orchestrator.WithPool(pool),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithExtraFields(store, sites),
		orchestrator.WithLogger(logger),
	}
	if cfg.Presets != "" {
		data, err := os.ReadFile(cfg.Presets)
		if err != nil {
			return err
		}
		transformer, err := orchestrator.NewJSONPresetTransformer(data)
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithTransformer(transformer))
	}
	orch, err := orchestrator.New(options...)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	handler := admin.New(orch, store, sites, admin.WithLogger(logger))
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("admin listening", "addr", cfg.Addr, "store", cfg.StoreDriver, "plugins", len(pool.List()))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("admin shutting down")
	return server.Shutdown(shutdownCtx)
}
