// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStore_CreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	store, err := NewLocalStore(dir, "/artifacts/")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, store.Dir())
	assert.Equal(t, "/artifacts", store.baseURL)
}

func TestNewLocalStore_DefaultDir(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.TempDir(), "audtrim"), store.Dir())
}

func TestLocalStore_PutAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir(), "https://example.com/files")
	require.NoError(t, err)

	art, err := store.Put(ctx, "trimmed-my song.wav", []byte("RIFF...."))
	require.NoError(t, err)

	prefix, name, ok := strings.Cut(art.Key, "/")
	require.True(t, ok)
	_, err = uuid.Parse(prefix)
	require.NoError(t, err)
	assert.Equal(t, "trimmed-my song.wav", name)
	assert.Equal(t, "trimmed-my song.wav", art.Name)
	assert.Equal(t, 8, art.Size)
	assert.Equal(t, "https://example.com/files/"+prefix+"/trimmed-my%20song.wav", art.URL)

	data, err := os.ReadFile(filepath.Join(store.Dir(), prefix, name))
	require.NoError(t, err)
	assert.Equal(t, "RIFF....", string(data))

	require.NoError(t, store.Delete(ctx, art.Key))
	_, err = os.Stat(filepath.Join(store.Dir(), prefix))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is harmless
	assert.NoError(t, store.Delete(ctx, art.Key))
}

func TestLocalStore_SameNameDoesNotCollide(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	a, err := store.Put(ctx, "trimmed-a.wav", []byte("a"))
	require.NoError(t, err)
	b, err := store.Put(ctx, "trimmed-a.wav", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Key, b.Key)
	require.NoError(t, store.Delete(ctx, a.Key))

	data, err := os.ReadFile(filepath.Join(store.Dir(), filepath.FromSlash(b.Key)))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

func TestLocalStore_PathTraversal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	art, err := store.Put(ctx, "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", art.Name)

	for _, key := range []string{"../outside", "not-a-uuid/file.wav", uuid.NewString(), uuid.NewString() + "/a/b.wav", ""} {
		assert.ErrorIs(t, store.Delete(ctx, key), ErrInvalidKey, key)
	}
}

func TestLocalStore_CanceledContext(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "x.wav", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"trimmed-a.wav":        "trimmed-a.wav",
		"dir/trimmed-a.wav":    "trimmed-a.wav",
		`C:\tmp\trimmed-a.wav`: "trimmed-a.wav",
		"":                     "trimmed.wav",
		"..":                   "trimmed.wav",
		"/":                    "trimmed.wav",
	}

	for in, want := range tests {
		assert.Equal(t, want, cleanName(in), in)
	}
}
