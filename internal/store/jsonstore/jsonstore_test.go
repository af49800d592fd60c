package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/store"
)

func TestGetMissingKey(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("shoppingList")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetWritesOneFilePerKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("shoppingList", []byte(`[]`)))
	require.NoError(t, s.Set("shoppingList", []byte(`[{"name":"Pão"}]`)))

	raw, err := os.ReadFile(filepath.Join(dir, "shoppingList.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Pão"}]`, string(raw))

	got, err := s.Get("shoppingList")
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestRejectsPathLikeKeys(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, s.Set(key, []byte("x")), key)
	}
}
