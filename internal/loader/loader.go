package loader

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/five82/globe/internal/countries"
	"github.com/five82/globe/internal/state"
)

// CacheKey names the cache slot holding the country list.
const CacheKey = "countries.json"

const eventBuffer = 16

// ErrOffline reports that the network is down and nothing is cached.
var ErrOffline = errors.New("no network connection and no cached country list")

// Monitor is the connectivity observer the loader drives. The handler must be
// called once with the initial state and then once per transition.
type Monitor interface {
	Start(ctx context.Context)
	Stop()
	SetChangeHandler(fn func(online bool))
}

// Cache is the local slot store backing offline starts.
type Cache interface {
	Exists(key string) bool
	Store(key string, v any) error
	Retrieve(key string, dest any) error
}

// EventKind classifies loader outcomes.
type EventKind int

const (
	// EventLoaded means the store now holds the list.
	EventLoaded EventKind = iota + 1
	// EventFetchFailed means the network fetch failed; Retry may help.
	EventFetchFailed
	// EventOffline means the network is down and nothing is cached. The
	// loader tries again by itself once connectivity changes.
	EventOffline
)

// Event is delivered on Loader.Events for every outcome.
type Event struct {
	Kind   EventKind
	Source state.Source
	Count  int
	Err    error
}

// Retryable reports whether the user may retry the failed operation.
func (e Event) Retryable() bool {
	return e.Kind == EventFetchFailed
}

// Loader fills the store from the cache or the network, gated on
// connectivity. It replaces nothing once the list is loaded, except through
// an explicit Retry.
type Loader struct {
	store   *state.Store
	cache   Cache
	fetcher countries.Fetcher
	monitor Monitor
	logger  *zap.Logger

	events chan Event
	flight singleflight.Group
}

// NewLoader wires a Loader. A nil logger disables logging.
func NewLoader(store *state.Store, cache Cache, fetcher countries.Fetcher, monitor Monitor, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		store:   store,
		cache:   cache,
		fetcher: fetcher,
		monitor: monitor,
		logger:  logger,
		events:  make(chan Event, eventBuffer),
	}
}

// Events delivers load outcomes in the order they happen.
func (l *Loader) Events() <-chan Event {
	return l.events
}

// Start installs the connectivity handler and starts the monitor. It returns
// immediately; outcomes arrive on Events.
func (l *Loader) Start(ctx context.Context) {
	l.monitor.SetChangeHandler(func(online bool) {
		l.onConnectivity(ctx, online)
	})
	l.monitor.Start(ctx)
}

// Retry re-issues the network fetch after a failure, bypassing the cache.
func (l *Loader) Retry(ctx context.Context) {
	l.logger.Info("retrying fetch")
	l.proceed(ctx, true)
}

func (l *Loader) onConnectivity(ctx context.Context, online bool) {
	if !l.store.Empty() {
		return
	}
	if online || l.cache.Exists(CacheKey) {
		l.proceed(ctx, false)
		return
	}
	l.logger.Warn("offline with no cached list")
	l.emit(ctx, Event{Kind: EventOffline, Err: ErrOffline})
}

// proceed coalesces overlapping loads: a connectivity flap or a retry while a
// fetch is in flight waits for that fetch instead of starting another.
func (l *Loader) proceed(ctx context.Context, forceFetch bool) {
	_, _, _ = l.flight.Do("load", func() (any, error) {
		l.load(ctx, forceFetch)
		return nil, nil
	})
}

func (l *Loader) load(ctx context.Context, forceFetch bool) {
	if !forceFetch && l.cache.Exists(CacheKey) {
		var list []countries.Country
		err := l.cache.Retrieve(CacheKey, &list)
		if err == nil {
			l.logger.Info("loaded countries from cache", zap.Int("count", len(list)))
			l.commit(ctx, list, state.SourceCache)
			return
		}
		l.logger.Warn("cached list unreadable, fetching instead", zap.Error(err))
	}

	list, err := l.fetcher.FetchCountries(ctx)
	if err != nil {
		l.logger.Error("fetch countries failed", zap.Error(err))
		l.emit(ctx, Event{Kind: EventFetchFailed, Err: err})
		return
	}
	l.logger.Info("fetched countries", zap.Int("count", len(list)))
	if err := l.cache.Store(CacheKey, list); err != nil {
		l.logger.Warn("cache write failed", zap.Error(err))
	}
	l.commit(ctx, list, state.SourceNetwork)
}

func (l *Loader) commit(ctx context.Context, list []countries.Country, source state.Source) {
	l.store.Replace(list, source)
	l.emit(ctx, Event{Kind: EventLoaded, Source: source, Count: len(list)})
	l.monitor.Stop()
}

func (l *Loader) emit(ctx context.Context, ev Event) {
	select {
	case l.events <- ev:
	case <-ctx.Done():
	}
}
