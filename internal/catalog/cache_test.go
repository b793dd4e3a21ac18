package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/arcanaland/deckseer/internal/card"
)

const sampleCatalog = `[
	{"multiverseid": 2, "name": "Wisp", "colors": [], "types": ["Creature"]},
	{"multiverseid": 1, "name": "Bolt", "colors": ["Red"], "types": ["Instant"]}
]`

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeFetcher serves fixed files and counts fetches. When gate is set,
// every fetch blocks until it is closed.
type fakeFetcher struct {
	files map[string]string
	gate  chan struct{}
	err   error
	calls atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.files[name]
	if !ok {
		return nil, errors.New("404 Not Found")
	}
	return []byte(data), nil
}

func newFake() *fakeFetcher {
	return &fakeFetcher{files: map[string]string{
		"catalog_standard_Blue_Red.json": sampleCatalog,
		"catalog_modern_Red.json":        `[{"multiverseid": 5, "name": "Goblin", "colors": ["Red"], "types": ["Creature"]}]`,
	}}
}

var blueRed = NewKey("standard", "Red", "Blue")

func TestLoadSortsOnce(t *testing.T) {
	f := newFake()
	c := NewCache(f, zaptest.NewLogger(t))

	cat, err := c.Load(context.Background(), blueRed)
	require.NoError(t, err)

	cards := cat.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "Bolt", cards[0].Name)
	assert.Equal(t, "Wisp", cards[1].Name)

	again, err := c.Load(context.Background(), blueRed)
	require.NoError(t, err)
	assert.Same(t, cat, again)
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestLoadSingleFlight(t *testing.T) {
	f := newFake()
	f.gate = make(chan struct{})
	c := NewCache(f, zaptest.NewLogger(t))

	var wg sync.WaitGroup
	results := make([]*Catalog, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cat, err := c.Load(context.Background(), NewKey("standard", "Blue", "Red"))
			assert.NoError(t, err)
			results[i] = cat
		}()
	}

	// Let both callers reach the shared entry before releasing the fetch
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.EqualValues(t, 1, f.calls.Load())
	require.NotNil(t, results[0])
	assert.Same(t, results[0], results[1])
}

func TestInvalidateRefetches(t *testing.T) {
	f := newFake()
	c := NewCache(f, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := c.Load(ctx, blueRed)
	require.NoError(t, err)

	c.Invalidate()
	_, err = c.Filtered(ctx, card.Filter{})
	assert.ErrorIs(t, err, ErrNoCatalog)

	_, err = c.Load(ctx, blueRed)
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestInvalidateDuringFetch(t *testing.T) {
	f := newFake()
	f.gate = make(chan struct{})
	c := NewCache(f, zaptest.NewLogger(t))

	done := make(chan *Catalog)
	go func() {
		cat, _ := c.Load(context.Background(), blueRed)
		done <- cat
	}()
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate()
	close(f.gate)

	// The original waiter still gets its result
	stale := <-done
	require.NotNil(t, stale)

	// but the next load starts over
	fresh, err := c.Load(context.Background(), blueRed)
	require.NoError(t, err)
	assert.NotSame(t, stale, fresh)
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestFetchFailure(t *testing.T) {
	f := newFake()
	f.err = errors.New("connection refused")
	c := NewCache(f, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := c.Load(ctx, blueRed)
	require.ErrorIs(t, err, ErrFetchFailed)

	// Derived reads see the cached failure without fetching
	_, err = c.Filtered(ctx, card.Filter{})
	assert.ErrorIs(t, err, ErrFetchFailed)
	_, err = c.One(ctx, 1)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.EqualValues(t, 1, f.calls.Load())

	// A new Load is the recovery path
	f.err = nil
	cat, err := c.Load(ctx, blueRed)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.EqualValues(t, 2, f.calls.Load())
}

func TestMissingFileIsFetchFailure(t *testing.T) {
	c := NewCache(newFake(), zaptest.NewLogger(t))

	_, err := c.Load(context.Background(), NewKey("legacy", "White"))
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestMalformedJSONIsFetchFailure(t *testing.T) {
	f := &fakeFetcher{files: map[string]string{"catalog_standard_Red.json": `[{`}}
	c := NewCache(f, zaptest.NewLogger(t))

	_, err := c.Load(context.Background(), NewKey("standard", "Red"))
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestValidationFailure(t *testing.T) {
	f := &fakeFetcher{files: map[string]string{
		"catalog_standard_Red.json": `[{"multiverseid": 1, "name": "Bolt", "types": []}]`,
	}}
	c := NewCache(f, zaptest.NewLogger(t))

	_, err := c.Load(context.Background(), NewKey("standard", "Red"))
	var verr *card.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "colors", verr.Field)
	assert.NotErrorIs(t, err, ErrFetchFailed)
}

func TestFilteredScenario(t *testing.T) {
	c := NewCache(newFake(), zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := c.Load(ctx, blueRed)
	require.NoError(t, err)

	red, err := c.Filtered(ctx, card.Filter{Colors: []string{"Red"}})
	require.NoError(t, err)
	require.Len(t, red, 1)
	assert.Equal(t, 1, red[0].ID)

	colorless, err := c.Filtered(ctx, card.Filter{Colors: []string{card.NoColor}})
	require.NoError(t, err)
	require.Len(t, colorless, 1)
	assert.Equal(t, 2, colorless[0].ID)
}

func TestOneScenario(t *testing.T) {
	c := NewCache(newFake(), zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := c.Load(ctx, blueRed)
	require.NoError(t, err)

	bolt, err := c.One(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bolt", bolt.Name)

	_, err = c.One(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByIDs(t *testing.T) {
	c := NewCache(newFake(), zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := c.Load(ctx, blueRed)
	require.NoError(t, err)

	cards, err := c.ByIDs(ctx, []int{1, 2, 3}, card.Filter{Types: []string{"Creature"}})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Wisp", cards[0].Name)
}

func TestActiveFollowsLastLoad(t *testing.T) {
	f := newFake()
	c := NewCache(f, zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := c.Load(ctx, blueRed)
	require.NoError(t, err)
	_, err = c.Load(ctx, NewKey("modern", "Red"))
	require.NoError(t, err)

	cards, err := c.Filtered(ctx, card.Filter{})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Goblin", cards[0].Name)
}

func TestPreload(t *testing.T) {
	f := newFake()
	c := NewCache(f, zaptest.NewLogger(t))
	ctx := context.Background()

	cats, err := c.Preload(ctx, blueRed, NewKey("modern", "Red"))
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, 2, cats[0].Len())
	assert.Equal(t, 1, cats[1].Len())
	assert.EqualValues(t, 2, f.calls.Load())

	active, err := c.Active(ctx)
	require.NoError(t, err)
	assert.Same(t, cats[1], active)
}

func TestPreloadFailure(t *testing.T) {
	c := NewCache(newFake(), zaptest.NewLogger(t))

	_, err := c.Preload(context.Background(), blueRed, NewKey("vintage", "Green"))
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestLoadCallerCancel(t *testing.T) {
	f := newFake()
	f.gate = make(chan struct{})
	c := NewCache(f, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Load(ctx, blueRed)
	assert.ErrorIs(t, err, context.Canceled)

	// The shared fetch is unaffected by the cancelled caller
	close(f.gate)
	cat, err := c.Load(context.Background(), blueRed)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestLoadRejectsBadKey(t *testing.T) {
	f := newFake()
	c := NewCache(f, zaptest.NewLogger(t))

	_, err := c.Load(context.Background(), NewKey("", "Red"))
	assert.Error(t, err)
	_, err = c.Load(context.Background(), NewKey("standard", "Purple"))
	assert.Error(t, err)
	assert.Zero(t, f.calls.Load())
}
