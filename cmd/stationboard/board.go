package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"departures.dev/stationboard/clock"
	"departures.dev/stationboard/config"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Prints the next departures once",
	RunE:  board,
}

func board(cmd *cobra.Command, args []string) error {
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

	snap, err := cache.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	day := clk.Today()
	departures := snap.Departures(day.Seconds, cfg.Limit)
	if len(departures) == 0 {
		fmt.Println("no departures today")
		return nil
	}

	for _, dep := range departures {
		fmt.Printf("%s  %-8s %s  (arrives %s)\n", dep.Dep, dep.Line, dep.Headsign, dep.Arr)
	}

	return nil
}
