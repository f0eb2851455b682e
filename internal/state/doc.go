// Package state holds the in-memory country list shared by the loader and the UI.
//
// # Overview
//
// The loader goroutine fills the Store once (from the cache or the network)
// and the Bubble Tea update loop reads and reorders it. The list changes only
// by full replacement (Replace) or by reordering (Sort); records are never
// edited individually.
//
// # Concurrency Model
//
// Store uses a sync.RWMutex:
//
//   - Replace and Sort take the write lock
//   - Snapshot, Len and Empty take the read lock
//
// Snapshot returns a deep copy, so renderers can hold it without racing a
// later Sort.
//
// # Lifecycle
//
//	empty ──Replace──▶ populated ──Sort──▶ reordered (zero or more times)
//
// Sort order is not persisted; a new Replace resets it.
package state
