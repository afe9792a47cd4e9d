package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		r, err := Open(ctx, "memory")
		require.NoError(t, err)
		assert.IsType(t, &MemoryRepository{}, r)
	})

	t.Run("sqlite path", func(t *testing.T) {
		r, err := Open(ctx, filepath.Join(t.TempDir(), "c.db"))
		require.NoError(t, err)
		defer r.Close()
		assert.IsType(t, &SQLiteRepository{}, r)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Open(ctx, "")
		assert.ErrorIs(t, err, ErrUnsupportedDSN)
	})

	t.Run("bad redis url", func(t *testing.T) {
		_, err := Open(ctx, "redis://:badport")
		assert.Error(t, err)
	})
}
