package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/five82/globe/internal/cache"
	"github.com/five82/globe/internal/countries"
	"github.com/five82/globe/internal/state"
)

type fakeMonitor struct {
	mu      sync.Mutex
	handler func(online bool)
	started int
	stopped int
}

func (m *fakeMonitor) Start(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *fakeMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped++
}

func (m *fakeMonitor) SetChangeHandler(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

func (m *fakeMonitor) fire(online bool) {
	m.mu.Lock()
	h := m.handler
	m.mu.Unlock()
	h(online)
}

func (m *fakeMonitor) stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

type fakeFetcher struct {
	mu    sync.Mutex
	list  []countries.Country
	err   error
	gate  chan struct{} // when non-nil, FetchCountries blocks until closed
	calls atomic.Int32
}

func (f *fakeFetcher) FetchCountries(ctx context.Context) ([]countries.Country, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return countries.Clone(f.list), nil
}

func (f *fakeFetcher) set(list []countries.Country, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list, f.err = list, err
}

var sampleList = []countries.Country{
	{Name: "Spain", NativeName: "España", Area: 505992, AlphaCode: "ESP", Borders: []string{"AND", "FRA", "PRT"}},
	{Name: "Andorra", NativeName: "Andorra", Area: 468, AlphaCode: "AND", Borders: []string{"FRA", "ESP"}},
}

type fixture struct {
	loader  *Loader
	store   *state.Store
	cache   *cache.Dir
	fetcher *fakeFetcher
	monitor *fakeMonitor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir, err := cache.New(t.TempDir())
	require.NoError(t, err)
	f := &fixture{
		store:   &state.Store{},
		cache:   dir,
		fetcher: &fakeFetcher{list: sampleList},
		monitor: &fakeMonitor{},
	}
	f.loader = NewLoader(f.store, f.cache, f.fetcher, f.monitor, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	f.loader.Start(ctx)
	require.Equal(t, 1, f.monitor.started)
	return f
}

func nextEvent(t *testing.T, l *Loader) Event {
	t.Helper()
	select {
	case ev := <-l.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for loader event")
		return Event{}
	}
}

func requireNoEvent(t *testing.T, l *Loader) {
	t.Helper()
	select {
	case ev := <-l.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestLoader_OfflineWithoutCacheReportsOnlyConnectivityError(t *testing.T) {
	f := newFixture(t)

	f.monitor.fire(false)

	ev := nextEvent(t, f.loader)
	assert.Equal(t, EventOffline, ev.Kind)
	assert.ErrorIs(t, ev.Err, ErrOffline)
	assert.False(t, ev.Retryable())
	requireNoEvent(t, f.loader)

	assert.Zero(t, f.fetcher.calls.Load())
	assert.True(t, f.store.Empty())
	assert.Zero(t, f.monitor.stops())
}

func TestLoader_OfflineWithCacheLoadsCacheWithoutFetching(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cache.Store(CacheKey, sampleList))

	f.monitor.fire(false)

	ev := nextEvent(t, f.loader)
	assert.Equal(t, EventLoaded, ev.Kind)
	assert.Equal(t, state.SourceCache, ev.Source)
	assert.Equal(t, len(sampleList), ev.Count)
	assert.Zero(t, f.fetcher.calls.Load())
	assert.Equal(t, sampleList, f.store.Snapshot().Countries)
	assert.Equal(t, 1, f.monitor.stops())
}

func TestLoader_OnlineWithCachePrefersCache(t *testing.T) {
	f := newFixture(t)
	cached := sampleList[:1]
	require.NoError(t, f.cache.Store(CacheKey, cached))

	f.monitor.fire(true)

	ev := nextEvent(t, f.loader)
	assert.Equal(t, state.SourceCache, ev.Source)
	assert.Zero(t, f.fetcher.calls.Load())
	assert.Equal(t, cached, f.store.Snapshot().Countries)
}

func TestLoader_OnlineFetchesAndWritesCache(t *testing.T) {
	f := newFixture(t)

	f.monitor.fire(true)

	ev := nextEvent(t, f.loader)
	assert.Equal(t, EventLoaded, ev.Kind)
	assert.Equal(t, state.SourceNetwork, ev.Source)
	assert.EqualValues(t, 1, f.fetcher.calls.Load())
	assert.Equal(t, 1, f.monitor.stops())

	var cached []countries.Country
	require.NoError(t, f.cache.Retrieve(CacheKey, &cached))
	assert.Equal(t, sampleList, cached)
	assert.Equal(t, sampleList, f.store.Snapshot().Countries)
}

func TestLoader_FetchFailureIsRetryableAndCommitsNothing(t *testing.T) {
	f := newFixture(t)
	f.fetcher.set(nil, errors.New("connection reset"))

	f.monitor.fire(true)

	ev := nextEvent(t, f.loader)
	assert.Equal(t, EventFetchFailed, ev.Kind)
	assert.True(t, ev.Retryable())
	assert.EqualError(t, ev.Err, "connection reset")
	assert.True(t, f.store.Empty())
	assert.False(t, f.cache.Exists(CacheKey))
	assert.Zero(t, f.monitor.stops())

	f.fetcher.set(sampleList, nil)
	f.loader.Retry(context.Background())

	ev = nextEvent(t, f.loader)
	assert.Equal(t, EventLoaded, ev.Kind)
	assert.Equal(t, state.SourceNetwork, ev.Source)
	assert.True(t, f.cache.Exists(CacheKey))
	assert.Equal(t, 1, f.monitor.stops())
}

func TestLoader_IgnoresCallbacksOnceLoaded(t *testing.T) {
	f := newFixture(t)
	f.monitor.fire(true)
	nextEvent(t, f.loader)

	f.monitor.fire(false)
	f.monitor.fire(true)

	requireNoEvent(t, f.loader)
	assert.EqualValues(t, 1, f.fetcher.calls.Load())
}

func TestLoader_ReconnectAfterOfflineLoads(t *testing.T) {
	f := newFixture(t)

	f.monitor.fire(false)
	assert.Equal(t, EventOffline, nextEvent(t, f.loader).Kind)

	f.monitor.fire(true)
	ev := nextEvent(t, f.loader)
	assert.Equal(t, EventLoaded, ev.Kind)
	assert.Equal(t, state.SourceNetwork, ev.Source)
}

func TestLoader_CorruptCacheFallsBackToFetch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.cache.Path(), CacheKey), []byte("{broken"), 0o644))

	f.monitor.fire(false)

	ev := nextEvent(t, f.loader)
	assert.Equal(t, EventLoaded, ev.Kind)
	assert.Equal(t, state.SourceNetwork, ev.Source)
	assert.EqualValues(t, 1, f.fetcher.calls.Load())

	var cached []countries.Country
	require.NoError(t, f.cache.Retrieve(CacheKey, &cached))
	assert.Equal(t, sampleList, cached)
}

func TestLoader_OverlappingCallbacksShareOneFetch(t *testing.T) {
	f := newFixture(t)
	f.fetcher.gate = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); f.monitor.fire(true) }()
	require.Eventually(t, func() bool { return f.fetcher.calls.Load() == 1 }, time.Second, time.Millisecond)
	go func() { defer wg.Done(); f.monitor.fire(true) }()
	time.Sleep(50 * time.Millisecond)
	close(f.fetcher.gate)
	wg.Wait()

	assert.Equal(t, EventLoaded, nextEvent(t, f.loader).Kind)
	requireNoEvent(t, f.loader)
	assert.EqualValues(t, 1, f.fetcher.calls.Load())
}

func TestLoader_EmitGivesUpWhenContextDone(t *testing.T) {
	store := &state.Store{}
	dir, err := cache.New(t.TempDir())
	require.NoError(t, err)
	mon := &fakeMonitor{}
	l := NewLoader(store, dir, &fakeFetcher{list: sampleList}, mon, nil)

	ctx, cancel := context.WithCancel(context.Background())
	l.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < eventBuffer+2; i++ {
			mon.fire(false)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("handler blocked on a full event channel after cancel")
	}
}
