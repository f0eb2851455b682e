// Package app is the composition root for globe.
//
// It loads the configuration, builds the zap logger, the cache directory,
// the countries client, the connectivity monitor and the loader, and hands
// them to either the Bubble Tea screen (Run) or the headless commands (List
// and Borders). Both paths load through the same loader.Loader, so the
// cache-or-network decision is identical whether a person or a script is
// asking.
//
// Run returns when the user quits or the context is cancelled. List and
// Borders return after the first load outcome: being offline with nothing
// cached is reported as loader.ErrOffline rather than waiting for the
// network to come back.
package app
