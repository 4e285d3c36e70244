package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/els/internal/dev"
	"github.com/vango-dev/els/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		devMode bool
		metrics bool
		reload  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pages directory with server-rendered components",
		Long: `Serve the pages directory over HTTP. Every HTML page is transformed
before it is sent.

Features:
  • Prometheus metrics on /metrics (--metrics)
  • Browser reload when pages or resources change (--reload)
  • Component render endpoint on POST /_els/render

Examples:
  els serve
  els serve --port=8080 --reload --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags)
			if err != nil {
				return err
			}
			cfg := p.cfg

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("dev") {
				cfg.Server.Dev = devMode
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Server.Metrics = metrics
			}
			if cmd.Flags().Changed("reload") {
				cfg.Server.Reload = reload
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := cfg.RenderOptions()
			srvConfig := server.Config{
				Address:  cfg.Address(),
				PagesDir: cfg.PagesPath(),
				Renderer: p.renderer,
				Options:  &opts,
				Logger:   p.logger,
				DevMode:  cfg.Server.Dev,
				Metrics:  cfg.Server.Metrics,
			}
			if cfg.Server.Reload {
				srvConfig.Reloader = dev.NewReloader(dev.ReloaderConfig{
					Paths:    dev.CollectWatchPaths(cfg),
					Pages:    cfg.PagesPath(),
					Interval: cfg.PollInterval(),
					Cache:    p.renderer.Cache(),
					Logger:   p.logger,
				})
			}

			printBanner()
			fmt.Fprintln(os.Stderr)
			success("Serving %s", cfg.PagesPath())
			info("URL:     %s", cfg.URL())
			if cfg.Server.Metrics {
				info("Metrics: %s/metrics", cfg.URL())
			}
			if cfg.Server.Reload {
				info("Reload:  watching %d directories", len(dev.CollectWatchPaths(cfg)))
			}
			fmt.Fprintln(os.Stderr)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(srvConfig).Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from els.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from els.json)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Show error details in error pages")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&reload, "reload", false, "Reload browsers when pages or resources change")

	return cmd
}
