package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises the Repository behaviour every backend must share.
func runContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing returns nil nil", func(t *testing.T) {
		r := newRepo(t)
		v, err := r.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "k1", []byte{0x01, 0x02}))
		v, err := r.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "k", []byte("old")))
		require.NoError(t, r.Set(ctx, "k", []byte("new")))
		v, err := r.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("set many then list", func(t *testing.T) {
		r := newRepo(t)
		want := map[string][]byte{
			"access_token":  []byte("a"),
			"refresh_token": []byte("r"),
			"user":          []byte(`{"id":"1"}`),
		}
		require.NoError(t, r.SetMany(ctx, want))
		got, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("delete removes only named keys", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.SetMany(ctx, map[string][]byte{
			"a": []byte("1"), "b": []byte("2"), "c": []byte("3"),
		}))
		require.NoError(t, r.Delete(ctx, "a", "b", "missing"))

		got, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"c": []byte("3")}, got)
	})

	t.Run("delete with no keys is a no-op", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "a", []byte("1")))
		require.NoError(t, r.Delete(ctx))
		v, err := r.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), v)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}))
		require.NoError(t, r.Clear(ctx))
		got, err := r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
