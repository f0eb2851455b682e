// Package ui provides the Bubble Tea screen for globe.
//
// The screen is split into a list pane (name and native name per row) and a
// detail pane showing the opened country and its bordering neighbours. A
// header reports load progress, the data source and the active sort; the
// command bar below it carries the four sort buttons.
//
// # Data flow
//
// The model never loads data itself. It waits on the loader's event channel
// from a tea.Cmd and re-arms the wait after every event, so background loads
// and foreground rendering stay on their own goroutines. Sorting goes through
// state.Store and the model re-reads a snapshot afterwards.
//
// # Errors
//
// Load failures open a dismissible dialog. A failed download offers "try
// again" (r), which calls Loader.Retry. Being offline with nothing cached
// offers "open settings" (s); the list still loads by itself once the
// connectivity monitor reports the network back.
package ui
