package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domkit"
	"github.com/vango-dev/domkit/internal/config"
	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/delegate"
	"github.com/vango-dev/domkit/pkg/dom"
	"github.com/vango-dev/domkit/pkg/source"
)

// loadConfig reads domkit.json and applies flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	if flags.strategy != "" {
		cfg.Strategy = flags.strategy
	}
	if flags.debug {
		cfg.Debug = true
	}
	if flags.noColor {
		no := false
		cfg.Color = &no
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.ColorEnabled() {
		errors.DisableColors()
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openKit loads the document at uri and installs a Kit on it.
func openKit(ctx context.Context, cfg *config.Config, logger *slog.Logger, uri string, observers ...delegate.Observer) (*domkit.Kit, error) {
	opts := []source.Option{
		source.WithMaxSize(cfg.MaxDocumentSize),
		source.WithLogger(logger),
	}
	if cfg.S3.Region != "" {
		opts = append(opts, source.WithS3Client(source.NewS3Client(cfg.S3.Region, cfg.S3.Endpoint)))
	}

	doc, err := source.New(opts...).Load(ctx, uri, dom.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return domkit.Install(doc,
		domkit.WithLogger(logger),
		domkit.WithDebug(cfg.Debug),
		domkit.WithStrategy(cfg.MatchStrategy()),
		domkit.WithObserver(observers...),
	)
}

// requireFlag fails with E080 when value is empty.
func requireFlag(cmd *cobra.Command, name, value string) error {
	if value != "" {
		return nil
	}
	return errors.New("E080").
		WithSubject("--" + name).
		WithSuggestion("Run '" + cmd.CommandPath() + " --help' for usage")
}

// findNode resolves selector to exactly one element.
func findNode(kit *domkit.Kit, selector string) (*domkit.Element, error) {
	el, err := kit.Find(selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, errors.New("E021").WithSubject(selector)
	}
	return el, nil
}
