package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/globe/internal/countries"
	"github.com/five82/globe/internal/loader"
)

const payload = `[
  {"name":"Spain","nativeName":"España","area":505992,"alpha3Code":"ESP","borders":["AND","FRA","PRT"]},
  {"name":"Andorra","nativeName":"Andorra","area":468,"alpha3Code":"AND","borders":["FRA","ESP"]},
  {"name":"France","nativeName":"France","area":640679,"alpha3Code":"FRA","borders":["AND","ESP"]},
  {"name":"Portugal","nativeName":"Portugal","area":92090,"alpha3Code":"PRT","borders":["ESP"]}
]`

type countryServer struct {
	*httptest.Server
	hits atomic.Int32
	body atomic.Value // string
	code atomic.Int32
}

func newCountryServer(t *testing.T) *countryServer {
	t.Helper()
	s := &countryServer{}
	s.body.Store(payload)
	s.code.Store(http.StatusOK)
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(s.code.Load()))
		fmt.Fprint(w, s.body.Load().(string))
	}))
	t.Cleanup(s.Close)
	return s
}

// testOptions writes a config that keeps the log and cache inside dir.
func testOptions(t *testing.T, dir, endpoint string) Options {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := fmt.Sprintf("log_file = %q\nprobe_interval = \"50ms\"\nrequest_timeout = \"2s\"\n",
		filepath.Join(dir, "globe.log"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return Options{
		ConfigPath: cfgPath,
		CacheDir:   filepath.Join(dir, "cache"),
		Endpoint:   endpoint,
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestList_FetchesThenServesFromCache(t *testing.T) {
	srv := newCountryServer(t)
	dir := t.TempDir()
	opts := testOptions(t, dir, srv.URL)

	var out bytes.Buffer
	require.NoError(t, List(testContext(t), opts, nil, &out))

	want := "Spain\tEspaña\t505992\tESP\n" +
		"Andorra\tAndorra\t468\tAND\n" +
		"France\tFrance\t640679\tFRA\n" +
		"Portugal\tPortugal\t92090\tPRT\n"
	assert.Equal(t, want, out.String())
	assert.FileExists(t, filepath.Join(dir, "cache", loader.CacheKey))
	assert.EqualValues(t, 1, srv.hits.Load())

	// With the server gone the cached list still loads.
	srv.Close()
	out.Reset()
	require.NoError(t, List(testContext(t), opts, nil, &out))
	assert.Equal(t, want, out.String())
	assert.EqualValues(t, 1, srv.hits.Load())
}

func TestList_Sorted(t *testing.T) {
	srv := newCountryServer(t)
	opts := testOptions(t, t.TempDir(), srv.URL)

	order := countries.AreaAsc
	var out bytes.Buffer
	require.NoError(t, List(testContext(t), opts, &order, &out))

	assert.Equal(t,
		"Andorra\tAndorra\t468\tAND\n"+
			"Portugal\tPortugal\t92090\tPRT\n"+
			"Spain\tEspaña\t505992\tESP\n"+
			"France\tFrance\t640679\tFRA\n",
		out.String())
}

func TestList_RefreshClearsCache(t *testing.T) {
	srv := newCountryServer(t)
	opts := testOptions(t, t.TempDir(), srv.URL)

	var out bytes.Buffer
	require.NoError(t, List(testContext(t), opts, nil, &out))

	srv.body.Store(`[{"name":"Aland","nativeName":"Åland","area":1580,"alpha3Code":"ALA","borders":[]}]`)

	out.Reset()
	require.NoError(t, List(testContext(t), opts, nil, &out))
	assert.Contains(t, out.String(), "Spain", "cached list should win without --refresh")

	opts.Refresh = true
	out.Reset()
	require.NoError(t, List(testContext(t), opts, nil, &out))
	assert.Equal(t, "Aland\tÅland\t1580\tALA\n", out.String())
	assert.EqualValues(t, 2, srv.hits.Load())
}

func TestList_OfflineWithoutCache(t *testing.T) {
	srv := newCountryServer(t)
	endpoint := srv.URL
	srv.Close()

	var out bytes.Buffer
	err := List(testContext(t), testOptions(t, t.TempDir(), endpoint), nil, &out)

	require.ErrorIs(t, err, loader.ErrOffline)
	assert.Empty(t, out.String())
}

func TestList_ServerError(t *testing.T) {
	srv := newCountryServer(t)
	srv.code.Store(http.StatusServiceUnavailable)
	dir := t.TempDir()

	err := List(testContext(t), testOptions(t, dir, srv.URL), nil, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch countries")
	assert.Contains(t, err.Error(), "503")
	assert.NoFileExists(t, filepath.Join(dir, "cache", loader.CacheKey))
}

func TestBorders(t *testing.T) {
	srv := newCountryServer(t)
	opts := testOptions(t, t.TempDir(), srv.URL)

	var out bytes.Buffer
	require.NoError(t, Borders(testContext(t), opts, "esp", &out))

	assert.Equal(t,
		"Andorra\tAndorra\t468\tAND\n"+
			"France\tFrance\t640679\tFRA\n"+
			"Portugal\tPortugal\t92090\tPRT\n",
		out.String())
}

func TestBorders_UnknownCode(t *testing.T) {
	srv := newCountryServer(t)
	opts := testOptions(t, t.TempDir(), srv.URL)

	err := Borders(testContext(t), opts, "XXX", &bytes.Buffer{})

	require.ErrorIs(t, err, ErrUnknownCountry)
}

func TestNewRuntime_BadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("endpoint = [unterminated"), 0o644))

	_, err := newRuntime(Options{ConfigPath: cfgPath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
