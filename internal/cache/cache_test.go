package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/globe/internal/countries"
)

func TestDir_RoundTripPreservesOrderAndFields(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	list := []countries.Country{
		{Name: "Zambia", NativeName: "Zambia", Area: 752612, AlphaCode: "ZMB", Borders: []string{"AGO", "BWA"}},
		{Name: "Aland", NativeName: "Aland", Area: 1580, AlphaCode: "ALA", Borders: []string{}},
		{Name: "Malta", NativeName: "Malta", Area: 316, AlphaCode: "MLT", Borders: []string{}},
	}

	assert.False(t, d.Exists("countries.json"))
	require.NoError(t, d.Store("countries.json", list))
	assert.True(t, d.Exists("countries.json"))

	var got []countries.Country
	require.NoError(t, d.Retrieve("countries.json", &got))
	assert.Equal(t, list, got)
}

func TestDir_StoreOverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	d, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, d.Store("slot", []int{1}))
	require.NoError(t, d.Store("slot", []int{2, 3}))

	var got []int
	require.NoError(t, d.Retrieve("slot", &got))
	assert.Equal(t, []int{2, 3}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "slot", entries[0].Name())
}

func TestDir_RetrieveMissingSlot(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	var got []int
	err = d.Retrieve("absent", &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDir_RetrieveCorruptSlot(t *testing.T) {
	dir := t.TempDir()
	d, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slot"), []byte("{not json"), 0o644))

	var got []int
	err = d.Retrieve("slot", &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode slot")
}

func TestDir_Clear(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, d.Clear("slot"))
	require.NoError(t, d.Store("slot", "v"))
	require.NoError(t, d.Clear("slot"))
	assert.False(t, d.Exists("slot"))
}

func TestDir_RejectsPathKeys(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "  ", "../escape", "a/b", ".."} {
		assert.Error(t, d.Store(key, 1), "key %q", key)
		assert.False(t, d.Exists(key), "key %q", key)
	}
}

func TestNew_DefaultsAndTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	d, err := New("~/globe-cache")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "globe-cache"), d.Path())

	d, err = New("")
	require.NoError(t, err)
	assert.Equal(t, appDirName, filepath.Base(d.Path()))
}
