package state

import (
	"sync"
	"time"

	"github.com/five82/globe/internal/countries"
)

// Source identifies where the list came from.
type Source int

const (
	SourceNone Source = iota
	SourceNetwork
	SourceCache
)

// String returns a short label for the source.
func (s Source) String() string {
	switch s {
	case SourceNetwork:
		return "network"
	case SourceCache:
		return "cache"
	default:
		return "none"
	}
}

// Snapshot represents the list as last seen by the UI.
type Snapshot struct {
	Countries []countries.Country
	Source    Source
	Order     countries.SortOrder
	Sorted    bool // false until the first Sort; the list is in source order
	LoadedAt  time.Time
}

// Empty reports whether no list has been loaded.
func (s Snapshot) Empty() bool {
	return len(s.Countries) == 0
}

// Store guards the in-memory country list. The list is only ever replaced as
// a whole or reordered; individual records are never edited.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace swaps in a freshly loaded list and resets the sort state.
func (s *Store) Replace(list []countries.Country, source Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{
		Countries: countries.Clone(list),
		Source:    source,
		LoadedAt:  time.Now(),
	}
}

// Sort reorders the stored list in place.
func (s *Store) Sort(order countries.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	countries.Sort(s.snapshot.Countries, order)
	s.snapshot.Order = order
	s.snapshot.Sorted = true
}

// Len returns the number of stored countries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot.Countries)
}

// Empty reports whether the store holds no countries.
func (s *Store) Empty() bool {
	return s.Len() == 0
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Countries = countries.Clone(s.snapshot.Countries)
	return snap
}
