package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinFile_LoadMissing(t *testing.T) {
	p := NewPinFile(filepath.Join(t.TempDir(), "pins.json"))
	ids, err := p.Load()
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestPinFile_AddRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pins.json")
	p := NewPinFile(path)

	changed, err := p.Add("foot.desktop")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = p.Add("foot.desktop")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = p.Add("firefox.desktop")
	require.NoError(t, err)

	ids, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"foot.desktop", "firefox.desktop"}, ids)

	changed, err = p.Remove("foot.desktop")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = p.Remove("foot.desktop")
	require.NoError(t, err)
	assert.False(t, changed)

	ids, err = p.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"firefox.desktop"}, ids)
}

func TestPinFile_Toggle(t *testing.T) {
	p := NewPinFile(filepath.Join(t.TempDir(), "pins.json"))

	pinned, err := p.Toggle("a.desktop")
	require.NoError(t, err)
	assert.True(t, pinned)

	pinned, err = p.Toggle("a.desktop")
	require.NoError(t, err)
	assert.False(t, pinned)

	ids, err := p.Load()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPinFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pins.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewPinFile(path).Load()
	assert.Error(t, err)
}
