package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/store"
)

func TestValuesAreCopied(t *testing.T) {
	s := New()
	v := []byte("abc")
	require.NoError(t, s.Set("k", v))
	v[0] = 'z'

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _ := s.Get("k")
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, 1, s.Writes())

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
