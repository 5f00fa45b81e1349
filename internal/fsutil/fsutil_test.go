package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.bin")
	assert.Error(t, WriteFileAtomic(path, []byte("x"), 0o644))
}

func TestIsTempName(t *testing.T) {
	assert.True(t, IsTempName(".gdi-tmp-12345"))
	assert.False(t, IsTempName("greaterdiscord.asar"))
}

func TestCopyTreeMergesAndOverwrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(src, "plugins", "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "plugins", "a.plugin.js"), []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "plugins", "nested", "b.txt"), []byte("b"), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(dst, "plugins"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "plugins", "a.plugin.js"), []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "keep.txt"), []byte("keep"), 0o644))

	require.NoError(t, CopyTree(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "plugins", "a.plugin.js"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	data, err = os.ReadFile(filepath.Join(dst, "plugins", "nested", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	_, err = os.Stat(filepath.Join(dst, "keep.txt"))
	assert.NoError(t, err)
}

func TestCopyTreeRejectsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, CopyTree(file, t.TempDir()))
}
