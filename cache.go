package stationboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"departures.dev/stationboard/clock"
	"departures.dev/stationboard/downloader"
	"departures.dev/stationboard/feed"
)

const (
	DefaultTTL          = 6 * time.Hour
	DefaultFetchTimeout = 60 * time.Second
	DefaultMaxFeedSize  = 800 << 20 // 800 MB
)

// Persists snapshots across restarts. Implementations live in the
// store package. A nil Store disables persistence.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

// Cache owns the single live Snapshot and rebuilds it from the feed
// source when it goes stale.
type Cache struct {
	TTL          time.Duration
	FetchTimeout time.Duration
	MaxFeedSize  int
	Downloader   downloader.Downloader
	Headers      map[string]string
	Store        Store

	url         string
	origin      string
	destination string
	clock       clock.Clock

	group singleflight.Group

	mu       sync.Mutex
	snapshot *Snapshot
}

func NewCache(feedURL string, origin string, destination string, clk clock.Clock) *Cache {
	return &Cache{
		TTL:          DefaultTTL,
		FetchTimeout: DefaultFetchTimeout,
		MaxFeedSize:  DefaultMaxFeedSize,
		Downloader:   downloader.NewMemory(),

		url:         feedURL,
		origin:      origin,
		destination: destination,
		clock:       clk,
	}
}

// Warm installs a persisted snapshot if the store holds one that is
// still usable, so a restart within the TTL serves without a fetch.
// Failures are logged, not returned: a cold start follows either way.
func (c *Cache) Warm() {
	if c.Store == nil {
		return
	}

	snap, err := c.Store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Loading persisted snapshot failed")
		return
	}
	if snap == nil || !c.fresh(snap) {
		return
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	log.Info().Time("fetched_at", snap.FetchedAt).Msg("Warmed snapshot from store")
}

// Snapshot returns the current snapshot, refreshing first if none
// exists or the current one is stale. Concurrent callers during a
// refresh share one in-flight fetch. A failed refresh leaves any
// previous snapshot in place and returns the error; the stale copy
// stays available to callers that arrive after the failure clears.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	snap := c.snapshot
	c.mu.Unlock()

	if snap != nil && c.fresh(snap) {
		return snap, nil
	}

	v, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		// A flight that completed while we queued may have
		// installed a fresh snapshot already.
		c.mu.Lock()
		snap := c.snapshot
		c.mu.Unlock()
		if snap != nil && c.fresh(snap) {
			return snap, nil
		}

		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.(*Snapshot), nil
}

func (c *Cache) fresh(snap *Snapshot) bool {
	if c.clock.Now().Sub(snap.FetchedAt) >= c.TTL {
		return false
	}

	// The active service set holds for exactly one calendar date;
	// past midnight the snapshot is stale no matter its age.
	return snap.ServiceDate == c.clock.Today().Date
}

func (c *Cache) refresh(ctx context.Context) (*Snapshot, error) {
	day := c.clock.Today()

	body, err := c.Downloader.Get(ctx, c.url, c.Headers, downloader.Options{
		Timeout: c.FetchTimeout,
		MaxSize: c.MaxFeedSize,
	})
	if err != nil {
		return nil, fmt.Errorf("downloading feed: %w", err)
	}

	archive, err := feed.OpenArchive(body)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	snap, err := buildSnapshot(archive, c.origin, c.destination, day, c.clock.Now())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	log.Info().
		Str("service_date", snap.ServiceDate).
		Int("journeys", len(snap.Journeys)).
		Msg("Installed fresh snapshot")

	if c.Store != nil {
		if err := c.Store.Save(snap); err != nil {
			log.Warn().Err(err).Msg("Persisting snapshot failed")
		}
	}

	return snap, nil
}
