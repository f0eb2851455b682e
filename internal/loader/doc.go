// Package loader decides where the country list comes from and fills the
// shared store.
//
// # Startup Protocol
//
// Start installs a connectivity handler on the injected Monitor and starts it.
// On every connectivity callback while the store is still empty:
//
//	online                     → proceed
//	offline, cache slot exists → proceed (the cache substitutes for the network)
//	offline, no cache          → EventOffline; wait for the next callback
//
// Proceeding loads the cache slot when it exists, otherwise fetches from the
// network and writes the result to the cache. Success replaces the store,
// emits EventLoaded and stops the monitor. A fetch failure emits
// EventFetchFailed and leaves the monitor running; Retry re-issues the fetch.
//
// # Concurrency
//
// Connectivity callbacks run on the monitor goroutine and Retry runs on the
// caller's goroutine. Overlapping loads are coalesced with singleflight, so at
// most one fetch is in flight. Outcomes are delivered on a buffered channel
// that the UI drains from a Bubble Tea command; rendering always happens on
// the UI loop, after the store has been replaced.
//
// # Partial Results
//
// countries.Parse is all-or-nothing, so a failed fetch never leaves a partial
// list in the store and never writes the cache.
package loader
