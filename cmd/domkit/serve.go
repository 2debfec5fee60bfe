package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"slices"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/domkit/internal/config"
	"github.com/vango-dev/domkit/pkg/inspect"
	"github.com/vango-dev/domkit/pkg/observe"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve DOCUMENT",
		Short: "Serve a live document for inspection",
		Long: `Load a document and serve it over HTTP.

Bind recording listeners with POST /listeners, fire events with
POST /dispatch and watch invocations stream over /ws. Prometheus
metrics for every dispatch are exposed on /metrics.

Examples:
  domkit serve menu.html
  domkit serve s3://site-assets/menu.html --port=8080
  domkit serve menu.html --host=0.0.0.0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg, args[0], prometheus.NewRegistry())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from domkit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from domkit.json)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config, uri string, reg *prometheus.Registry) error {
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	metrics := observe.NewMetrics(
		observe.WithRegistry(reg),
		observe.WithNamespace(cfg.Metrics.Namespace),
	)
	tracer := observe.NewTracer(observe.WithSkipNoMatch(cfg.Tracing.SkipNoMatch))

	kit, err := openKit(ctx, cfg, logger, uri, metrics, tracer, observe.NewLogger(logger, slog.LevelDebug))
	if err != nil {
		return err
	}

	opts := []inspect.Option{
		inspect.WithLogger(logger),
		inspect.WithGatherer(reg),
	}
	if origins := cfg.Serve.AllowedOrigins; len(origins) > 0 {
		opts = append(opts, inspect.WithCheckOrigin(func(r *http.Request) bool {
			return slices.Contains(origins, r.Header.Get("Origin"))
		}))
	}

	success(cmd, "Serving %s", uri)
	info(cmd, "%s/document", cfg.URL())
	info(cmd, "%s/metrics", cfg.URL())
	return inspect.New(kit, opts...).Run(ctx, cfg.Address())
}
