package services

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactSaveAndLoad(t *testing.T) {
	store, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	blob := []byte("fake png bytes")
	require.NoError(t, store.Save("lab1", bytes.NewReader(blob)))

	got, err := store.Load("lab1")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestArtifactOverwrite(t *testing.T) {
	store, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("lab1", bytes.NewReader([]byte("old"))))
	require.NoError(t, store.Save("lab1", bytes.NewReader([]byte("new"))))

	got, err := store.Load("lab1")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestArtifactMissing(t *testing.T) {
	store, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("never-uploaded")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestArtifactHostileClientID(t *testing.T) {
	dir := t.TempDir()
	store, err := NewArtifactStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("../../etc/passwd", bytes.NewReader([]byte("x"))))

	// nothing escaped the artifact directory
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
}
