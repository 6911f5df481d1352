package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/nieomylnieja/refdoc/internal/config"
	"github.com/nieomylnieja/refdoc/internal/logfields"
	"github.com/nieomylnieja/refdoc/pkg/refdoc"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"appcfg.yaml" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose processing logging"`

	Generate struct{} `cmd:"" default:"1" help:"Generate the documentation of every target library"`

	Watch struct {
		Debounce int `help:"Milliseconds to wait after the last change before rebuilding" default:"300"`
	} `cmd:"" help:"Regenerate the documentation whenever inputs or examples change"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("refdoc"),
		kong.Description("Generate a markdown API reference from library metadata and documentation records."),
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", logfields.File(CLI.Config), logfields.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "generate":
		if err = runGenerate(ctx, cfg, logger); err != nil {
			slog.Error("Generation failed", logfields.Error(err))
			stop()
			os.Exit(1)
		}
	case "watch":
		if err = runWatch(ctx, cfg, logger); err != nil {
			slog.Error("Watch failed", logfields.Error(err))
			stop()
			os.Exit(1)
		}
	}
}

func runGenerate(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	report, err := refdoc.New(cfg, refdoc.WithLogger(logger)).Run(ctx)
	if err != nil {
		return err
	}
	if len(report.DanglingLinks) > 0 {
		logger.Warn("Generated pages contain dangling links", slog.Int("count", len(report.DanglingLinks)))
	}
	return nil
}
