package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/components/dashboard"
	"github.com/goliatone/go-chartkit/pkg/chartkit"
	"github.com/goliatone/go-chartkit/pkg/logging"
)

type cli struct {
	LogLevel string `name:"log-level" default:"info" enum:"trace,debug,info,warn,error" help:"Minimum log level."`
	Pretty   bool   `help:"Write human readable logs instead of JSON."`

	Render   renderCmd   `cmd:"" help:"Compose panel option trees and print them as JSON or HTML."`
	Validate validateCmd `cmd:"" help:"Validate a panel manifest and its seed configurations."`
	Serve    serveCmd    `cmd:"" help:"Serve the dashboard over HTTP."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a panel definition (and optional seed) to a manifest."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Name("chartctl"),
		kong.Description("Chart rendering and dashboard utility for go-chartkit."),
		kong.UsageOnError(),
	)
	logger, err := logging.New(logging.Options{
		Level:         root.LogLevel,
		HumanReadable: root.Pretty,
		Component:     "chartctl",
	})
	ctx.FatalIfErrorf(err)

	ctx.BindTo(context.Background(), (*context.Context)(nil))
	ctx.BindTo(os.Stdout, (*io.Writer)(nil))
	ctx.Bind(logger)
	ctx.FatalIfErrorf(ctx.Run())
}

// newStack builds a chartkit stack seeded from manifestPath, or from the
// built-in layout when the path is empty.
func newStack(ctx context.Context, logger zerolog.Logger, manifestPath string, configure func(*chartkit.Options)) (*chartkit.Stack, error) {
	opts := chartkit.Options{Logger: &logger, SeedDefaults: manifestPath == ""}
	if manifestPath != "" {
		doc, err := dashboard.ReadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		opts.Manifest = doc
	}
	if configure != nil {
		configure(&opts)
	}
	stack, err := chartkit.New(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("chartctl: %w", err)
	}
	return stack, nil
}
