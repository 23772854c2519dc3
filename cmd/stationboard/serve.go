package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"departures.dev/stationboard"
	"departures.dev/stationboard/clock"
	"departures.dev/stationboard/config"
	"departures.dev/stationboard/server"
	"departures.dev/stationboard/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the departure board over HTTP",
	RunE:  serve,
}

func buildCache(cfg *config.Config, clk clock.Clock) (*stationboard.Cache, error) {
	cache := stationboard.NewCache(cfg.FeedURL, cfg.Origin, cfg.Destination, clk)
	cache.TTL = cfg.RefreshInterval()
	cache.FetchTimeout = cfg.FetchTimeout()

	if cfg.SQLitePath != "" {
		s, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot store: %w", err)
		}
		cache.Store = s
	}

	cache.Warm()
	return cache, nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	clk, err := clock.NewSystem(cfg.Timezone)
	if err != nil {
		return err
	}

	cache, err := buildCache(cfg, clk)
	if err != nil {
		return err
	}

	app := server.New(cache, clk, server.Options{
		Title:  cfg.Title,
		Limit:  cfg.Limit,
		MaxAge: time.Minute,
	})

	log.Info().
		Str("listen", cfg.Listen).
		Str("origin", cfg.Origin).
		Str("destination", cfg.Destination).
		Msg("Starting departure board")

	return app.Listen(cfg.Listen)
}
