package downloader

import (
	"context"
	"sync"
	"time"
)

// Caches downloaded files in memory, keyed by URL. Entries expire
// after the TTL given per request.
type Memory struct {
	mutex sync.Mutex
	cache map[string]memoryCacheEntry

	TimeNow func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		cache:   make(map[string]memoryCacheEntry),
		TimeNow: time.Now,
	}
}

type memoryCacheEntry struct {
	data       []byte
	expiration time.Time
}

func (d *Memory) Get(
	ctx context.Context,
	url string,
	headers map[string]string,
	options Options,
) ([]byte, error) {
	if options.TTL > 0 {
		d.mutex.Lock()
		defer d.mutex.Unlock()

		if entry, ok := d.cache[url]; ok {
			if entry.expiration.After(d.TimeNow()) {
				return entry.data, nil
			}
		}
	}

	body, err := HTTPGet(ctx, url, headers, options)
	if err != nil {
		return nil, err
	}

	if options.TTL > 0 {
		d.cache[url] = memoryCacheEntry{
			data:       body,
			expiration: d.TimeNow().Add(options.TTL),
		}
	}

	return body, nil
}
