package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/five82/globe/internal/countries"
	"github.com/five82/globe/internal/loader"
	"github.com/five82/globe/internal/state"
)

// ErrUnknownCountry is returned by Borders for a code not in the list.
var ErrUnknownCountry = errors.New("unknown country code")

// List loads the country list the same way the TUI does and writes one line
// per country: name, native name, area and code separated by tabs. A nil
// order keeps source order.
func List(ctx context.Context, opts Options, order *countries.SortOrder, w io.Writer) error {
	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	snap, err := rt.loadOnce(ctx)
	if err != nil {
		return err
	}
	list := snap.Countries
	if order != nil {
		rt.store.Sort(*order)
		list = rt.store.Snapshot().Countries
	}
	return writeCountries(w, list)
}

// Borders loads the list and writes the countries bordering code, in list
// order.
func Borders(ctx context.Context, opts Options, code string, w io.Writer) error {
	rt, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	snap, err := rt.loadOnce(ctx)
	if err != nil {
		return err
	}
	idx := countries.Index(snap.Countries, code)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCountry, code)
	}
	return writeCountries(w, countries.Bordering(snap.Countries, snap.Countries[idx]))
}

// loadOnce starts the loader and waits for the first outcome. Offline with no
// cache is reported immediately instead of waiting for the network.
func (r *runtime) loadOnce(ctx context.Context) (state.Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.loader.Start(ctx)
	select {
	case ev := <-r.loader.Events():
		switch ev.Kind {
		case loader.EventLoaded:
			return r.store.Snapshot(), nil
		case loader.EventOffline:
			return state.Snapshot{}, ev.Err
		default:
			return state.Snapshot{}, fmt.Errorf("fetch countries: %w", ev.Err)
		}
	case <-ctx.Done():
		return state.Snapshot{}, ctx.Err()
	}
}

func writeCountries(w io.Writer, list []countries.Country) error {
	var b strings.Builder
	for _, c := range list {
		b.WriteString(c.Name)
		b.WriteByte('\t')
		b.WriteString(c.NativeName)
		b.WriteByte('\t')
		b.WriteString(strconv.FormatFloat(c.Area, 'f', -1, 64))
		b.WriteByte('\t')
		b.WriteString(c.AlphaCode)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
