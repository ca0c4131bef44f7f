package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-chartkit/pkg/analytics"
	"github.com/goliatone/go-chartkit/pkg/chartkit"
)

type serveCmd struct {
	Addr       string            `default:":8080" help:"Listen address."`
	Base       string            `default:"/admin" help:"Route prefix."`
	Manifest   string            `type:"existingfile" help:"Panel manifest (YAML). Defaults to the built-in layout."`
	Map        map[string]string `help:"Geo boundary URL per map name (pacific=https://...)."`
	AssetsHost string            `name:"assets-host" help:"ECharts CDN host; overrides GO_CHARTKIT_ECHARTS_CDN."`
	Debounce   time.Duration     `default:"100ms" help:"Resize debounce window."`
	NetHTTP    bool              `name:"net-http" help:"Serve with net/http instead of fiber."`
	SeriesURL  string            `name:"series-url" help:"Analytics service feeding panel series."`
	SeriesKey  string            `name:"series-key" env:"GO_CHARTKIT_SERIES_KEY" help:"Bearer token for the analytics service."`
	Series     []string          `name:"series" help:"Definition codes fed by the analytics service (default: all)."`
}

func (cmd *serveCmd) Run(ctx context.Context, logger zerolog.Logger) error {
	var series analytics.SeriesClient
	if cmd.SeriesURL != "" {
		client, err := analytics.NewHTTPClient(analytics.HTTPConfig{BaseURL: cmd.SeriesURL, APIKey: cmd.SeriesKey})
		if err != nil {
			return err
		}
		series = client
	}
	stack, err := newStack(ctx, logger, cmd.Manifest, func(o *chartkit.Options) {
		o.Maps = cmd.Map
		o.AssetsHost = cmd.AssetsHost
		o.Debounce = cmd.Debounce
		o.Series = series
		o.SeriesDefinitions = cmd.Series
	})
	if err != nil {
		return err
	}
	defer stack.Close()

	logger.Info().
		Str("addr", cmd.Addr).
		Str("dashboard", cmd.Base+"/dashboard").
		Str("instances", cmd.Base+"/dashboard/instances/ws").
		Bool("net_http", cmd.NetHTTP).
		Msg("dashboard routes ready")

	if cmd.NetHTTP {
		server := &http.Server{
			Addr:              cmd.Addr,
			Handler:           stack.Handlers().Mux(cmd.Base),
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	server := router.NewFiberAdapter()
	if err := chartkit.Mount[*fiber.App](stack, server.Router(), cmd.Base, nil); err != nil {
		return err
	}
	return server.Serve(cmd.Addr)
}
