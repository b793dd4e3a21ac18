package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/deckseer/internal/card"
)

var (
	// ErrFetchFailed is returned for any network or decoding failure
	ErrFetchFailed = errors.New("something bad happened; please try again later")

	// ErrNoCatalog is returned by reads made before any catalog was loaded
	ErrNoCatalog = errors.New("no catalog loaded")

	// ErrNotFound is returned when a requested card is absent
	ErrNotFound = errors.New("card not found")
)

// preloadLimit bounds concurrent fetches started by Preload
const preloadLimit = 4

// DefaultFetchTimeout bounds a single detached fetch
const DefaultFetchTimeout = 60 * time.Second

// entry is one cached load. done is closed once catalog or err is set.
type entry struct {
	key     Key
	done    chan struct{}
	catalog *Catalog
	err     error
}

func (e *entry) wait(ctx context.Context) (*Catalog, error) {
	select {
	case <-e.done:
		return e.catalog, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// failed reports whether the entry finished with an error
func (e *entry) failed() bool {
	select {
	case <-e.done:
		return e.err != nil
	default:
		return false
	}
}

// Cache holds one load per Key. Concurrent and repeated loads of a key share
// a single fetch; the most recently requested key is the active catalog used
// by Filtered, ByIDs and One.
type Cache struct {
	fetcher Fetcher
	logger  *zap.Logger

	// FetchTimeout bounds each fetch. A fetch that runs out of time fails
	// with ErrFetchFailed so the next Load can retry it. Set it before the
	// first Load.
	FetchTimeout time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	active  *entry
}

// NewCache creates an empty cache backed by fetcher
func NewCache(fetcher Fetcher, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		fetcher:      fetcher,
		logger:       logger,
		FetchTimeout: DefaultFetchTimeout,
		entries:      make(map[string]*entry),
	}
}

// Load returns the catalog for key, fetching it on first use. The fetch is
// not tied to ctx: a caller giving up does not fail it for the others. It is
// bounded by FetchTimeout instead.
// A key whose previous load failed is fetched again.
func (c *Cache) Load(ctx context.Context, key Key) (*Catalog, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	name := key.Filename()

	c.mu.Lock()
	e, ok := c.entries[name]
	if ok && e.failed() {
		c.logger.Debug("retrying failed catalog", zap.String("file", name))
		ok = false
	}
	if !ok {
		e = &entry{key: key, done: make(chan struct{})}
		c.entries[name] = e
		go c.fetch(context.WithoutCancel(ctx), e, name)
	} else {
		c.logger.Debug("catalog cache hit", zap.String("file", name))
	}
	c.active = e
	c.mu.Unlock()

	return e.wait(ctx)
}

// fetch fills e and closes its done channel
func (c *Cache) fetch(ctx context.Context, e *entry, name string) {
	defer close(e.done)

	if c.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.FetchTimeout)
		defer cancel()
	}

	c.logger.Info("fetching catalog", zap.String("file", name))
	data, err := c.fetcher.Fetch(ctx, name)
	if err != nil {
		c.logger.Warn("catalog fetch failed", zap.String("file", name), zap.Error(err))
		e.err = ErrFetchFailed
		return
	}

	cards, err := card.DecodeCards(data)
	if err != nil {
		var verr *card.ValidationError
		if errors.As(err, &verr) {
			c.logger.Warn("catalog failed validation", zap.String("file", name), zap.Error(err))
			e.err = fmt.Errorf("catalog %s: %w", name, err)
			return
		}
		c.logger.Warn("catalog decode failed", zap.String("file", name), zap.Error(err))
		e.err = ErrFetchFailed
		return
	}

	e.catalog = New(e.key, cards)
	c.logger.Debug("catalog loaded", zap.String("file", name), zap.Int("cards", e.catalog.Len()))
}

// Preload loads several catalogs concurrently. The last key becomes active.
func (c *Cache) Preload(ctx context.Context, keys ...Key) ([]*Catalog, error) {
	catalogs := make([]*Catalog, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadLimit)
	for i, key := range keys {
		g.Go(func() error {
			cat, err := c.Load(gctx, key)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			catalogs[i] = cat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Goroutine order is arbitrary; pin the active catalog explicitly
	if len(keys) > 0 {
		if _, err := c.Load(ctx, keys[len(keys)-1]); err != nil {
			return nil, err
		}
	}

	return catalogs, nil
}

// Invalidate drops every cached catalog. Loads already in flight still
// complete for their current waiters but are never served again.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("invalidating catalog cache", zap.Int("entries", len(c.entries)))
	c.entries = make(map[string]*entry)
	c.active = nil
}

// Active returns the catalog most recently requested through Load. It waits
// for an in-flight load but never starts one.
func (c *Cache) Active(ctx context.Context) (*Catalog, error) {
	c.mu.Lock()
	e := c.active
	c.mu.Unlock()

	if e == nil {
		return nil, ErrNoCatalog
	}
	return e.wait(ctx)
}

// Filtered returns the active catalog's cards matching f
func (c *Cache) Filtered(ctx context.Context, f card.Filter) ([]card.Card, error) {
	cat, err := c.Active(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Filter(f), nil
}

// ByIDs returns the active catalog's cards with an id in ids matching f
func (c *Cache) ByIDs(ctx context.Context, ids []int, f card.Filter) ([]card.Card, error) {
	cat, err := c.Active(ctx)
	if err != nil {
		return nil, err
	}
	return cat.ByIDs(ids, f), nil
}

// One returns the active catalog's card with the given id, or ErrNotFound
func (c *Cache) One(ctx context.Context, id int) (card.Card, error) {
	cat, err := c.Active(ctx)
	if err != nil {
		return card.Card{}, err
	}
	cd, ok := cat.One(id)
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return cd, nil
}
