//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetPersistsAcrossReopen(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "state.json")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.Empty(t, s.Keys())

	require.NoError(t, s.Set("selectedValue", []string{"beijing", "beijing-haidian"}))

	// Read raw file to ensure the value is stored as JSON
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Equal(t, []any{"beijing", "beijing-haidian"}, raw["selectedValue"])

	s2, err := NewStore(path)
	require.NoError(t, err)
	got, ok := TryLoad[[]string](s2, "selectedValue")
	require.True(t, ok)
	require.Equal(t, []string{"beijing", "beijing-haidian"}, got)
}

func TestStore_RemoveDeletesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Set("b", 2))
	require.NoError(t, s.Remove("a"))
	require.NoError(t, s.Remove("missing"))
	assert.Equal(t, []string{"b"}, s.Keys())

	s2, err := NewStore(path)
	require.NoError(t, err)
	_, ok := s2.Get("a")
	assert.False(t, ok)
}

func TestStore_MalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.Keys())
}

func TestTryLoad_MalformedValueIsAbsent(t *testing.T) {
	m := NewMemory()
	m.SetRaw("options", []byte(`{"value":`))
	_, ok := TryLoad[[]string](m, "options")
	assert.False(t, ok)

	m.SetRaw("options", []byte(`{"value":"x"}`))
	_, ok = TryLoad[[]string](m, "options")
	assert.False(t, ok, "wrong shape decodes as absent")

	_, ok = TryLoad[[]string](m, "missing")
	assert.False(t, ok)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandTilde("~/x/state.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "state.json"), got)

	got, err = expandTilde("/abs/state.json")
	require.NoError(t, err)
	assert.Equal(t, "/abs/state.json", got)
}
