package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-obituary"
	"github.com/goliatone/go-obituary/pkg/config"
	"github.com/goliatone/go-obituary/pkg/orchestrator"
	"github.com/goliatone/go-obituary/pkg/presentation"
	"github.com/goliatone/go-obituary/pkg/render"
	"github.com/goliatone/go-obituary/pkg/renderers/tui"
)

func main() {
	cfg, err := config.Parse("obituary-cli", os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("config: %v", err)
	}

	rt, err := obituary.NewRuntime(cfg, obituary.WithLogger(log.New(os.Stderr, "obituary: ", 0)))
	if err != nil {
		log.Fatalf("runtime: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	renderer, err := tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(os.Stdout)))
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	session, err := tui.NewSession(
		renderer,
		rt.Orchestrator(orchestrator.WithView(renderer.View(ctx))),
		tui.WithClipboard(presentation.SystemClipboard{}),
		tui.WithDownloadDir(cfg.DownloadDir),
		tui.WithRenderOptions(render.RenderOptions{Title: cfg.Title}),
	)
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	if err := session.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println()
			return
		}
		log.Fatalf("obituary: %v", err)
	}
}
