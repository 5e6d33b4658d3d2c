package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewScratchStore(filepath.Join(t.TempDir(), "scratch"), time.Hour)
	require.NoError(t, err)

	a, err := store.Save(fileHeader(t, "model.IFC", []byte("ISO-10303-21;")), ".ifc", 0)
	require.NoError(t, err)
	b, err := store.Save(fileHeader(t, "model.IFC", []byte("ISO-10303-21;")), ".ifc", 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "same upload name gets distinct paths")
	assert.Equal(t, ".ifc", filepath.Ext(a))

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "ISO-10303-21;", string(got))

	require.NoError(t, store.Remove(a))
	_, err = os.Stat(a)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Remove(a), "removing twice is fine")
	assert.NoError(t, store.Remove(""))
}

func TestSaveRejects(t *testing.T) {
	store, err := NewScratchStore(t.TempDir(), time.Hour)
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "book.xlsx", []byte("x")), ".ifc", 0)
	assert.ErrorIs(t, err, ErrWrongExtension)

	_, err = store.Save(fileHeader(t, "big.ifc", []byte("0123456789")), ".ifc", 5)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads leave nothing behind")
}

func TestRemoveOutsideStore(t *testing.T) {
	store, err := NewScratchStore(filepath.Join(t.TempDir(), "scratch"), time.Hour)
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))
	assert.Error(t, store.Remove(outside))
	assert.FileExists(t, outside)
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	store, err := NewScratchStore(dir, time.Hour)
	require.NoError(t, err)

	old, err := store.SaveReader(bytes.NewReader([]byte("old")), ".ifc")
	require.NoError(t, err)
	fresh, err := store.SaveReader(bytes.NewReader([]byte("fresh")), ".xlsx")
	require.NoError(t, err)
	foreign := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(foreign, []byte("n"), 0644))

	now := time.Now()
	past := now.Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	require.NoError(t, os.Chtimes(foreign, past, past))

	removed, err := store.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.FileExists(t, foreign, "files the store did not create are left alone")
}
