package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-obituary"
	"github.com/goliatone/go-obituary/internal/metrics"
	"github.com/goliatone/go-obituary/internal/server"
	"github.com/goliatone/go-obituary/pkg/config"
	"github.com/goliatone/go-obituary/pkg/render"
)

func main() {
	cfg, err := config.Parse("obituary-server", os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("config: %v", err)
	}

	rt, err := obituary.NewRuntime(cfg)
	if err != nil {
		log.Fatalf("runtime: %v", err)
	}

	renderer, err := obituary.NewPageRenderer(cfg)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	opts := render.RenderOptions{
		Title:    cfg.Title,
		BasePath: cfg.BasePath,
	}
	opts.RuntimePrefix = opts.Route("runtime")

	options := []server.Option{
		server.WithGenerator(rt.Generator),
		server.WithTemplateStore(rt.Store),
		server.WithSubstituter(rt.Substituter),
		server.WithRenderer(renderer),
		server.WithRenderOptions(opts),
		server.WithRuntimeAssets(obituary.RuntimeAssetsFS()),
		server.WithLogger(rt.Logger),
	}
	if cfg.Metrics {
		options = append(options, server.WithMetrics(metrics.New()))
	}

	srv, err := server.New(options...)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Endpoint == "" {
		log.Printf("no generator endpoint configured; using local templates")
	}
	log.Printf("listening on %s (base path %s)", cfg.Addr, opts.Route(""))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.WatchTemplates {
		if err := rt.WatchTemplates(ctx); err != nil {
			log.Fatalf("templates: %v", err)
		}
		log.Printf("watching %s for template changes", cfg.TemplatesDir)
	}

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
