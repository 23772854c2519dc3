// Package server exposes the departure board over HTTP.
package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"departures.dev/stationboard"
	"departures.dev/stationboard/clock"
)

// The board payload. On failure Departures is empty and Error
// explains why; Time is omitted since no snapshot was consulted.
type Response struct {
	Title      string                   `json:"title"`
	Time       string                   `json:"time,omitempty"`
	Departures []stationboard.Departure `json:"departures"`
	Error      string                   `json:"error,omitempty"`
}

type Options struct {
	Title string
	Limit int

	// Freshness window advertised to HTTP caches. Revalidation is
	// allowed for twice this long.
	MaxAge time.Duration
}

func New(cache *stationboard.Cache, clk clock.Clock, opts Options) *fiber.App {
	app := fiber.New()
	app.Use(NewLogger())

	b := &board{cache: cache, clock: clk, opts: opts}
	app.Get("/departures", b.departures)
	app.Get("/healthz", healthz)

	return app
}

type board struct {
	cache *stationboard.Cache
	clock clock.Clock
	opts  Options
}

func (b *board) departures(c *fiber.Ctx) error {
	snap, err := b.cache.Snapshot(c.Context())
	if err != nil {
		c.Status(fiber.StatusBadGateway)
		return c.JSON(Response{
			Title:      b.opts.Title,
			Departures: []stationboard.Departure{},
			Error:      err.Error(),
		})
	}

	if b.opts.MaxAge > 0 {
		maxAge := int(b.opts.MaxAge.Seconds())
		c.Set(fiber.HeaderCacheControl,
			fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAge, maxAge*2))
	}

	day := b.clock.Today()
	return c.JSON(Response{
		Title:      b.opts.Title,
		Time:       b.clock.Now().Format("15:04"),
		Departures: snap.Departures(day.Seconds, b.opts.Limit),
	})
}

func healthz(c *fiber.Ctx) error {
	return c.SendString("ok")
}
