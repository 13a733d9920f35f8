package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/lepinkainen/manga-autofill/internal/config"
)

const (
	appName        = "manga-autofill"
	appDescription = "Enrich a manga spreadsheet with author, publisher, ISBN and cover URL from Google Books."
)

var runEnrichment = EnrichFile

// CLI represents the command line of the manga-autofill application
type CLI struct {
	Input string `short:"i" help:"Path to the input Excel file" required:""`
}

// Run enriches the input file using the current configuration
func (c *CLI) Run(ctx context.Context) error {
	return runEnrichment(ctx, c.Input, config.Load())
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	options := []kong.Option{
		kong.Name(appName),
		kong.Description(appDescription),
		kong.UsageOnError(),
	}
	return kong.New(cli, append(options, opts...)...)
}

// Execute parses the command line and runs the enrichment
func Execute() {
	initLogging()

	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		slog.Error("Failed to build command line parser", "error", err)
		os.Exit(1)
	}

	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := config.InitConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = cli.Run(ctx)
	stop()

	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}
