package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"countries/internal/theme"
	"countries/pkg/platform/sentinel"
)

func TestBoltStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs", "countries.db")

	s, err := OpenBolt(path)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, s.Save(ctx, theme.Dark))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, got)
	require.NoError(t, s.Close())

	t.Run("survives reopen", func(t *testing.T) {
		s, err := OpenBolt(path)
		require.NoError(t, err)
		defer s.Close()

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, theme.Dark, got)
	})

	t.Run("corrupt entry is invalid input", func(t *testing.T) {
		s, err := OpenBolt(path)
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(bucketName).Put(themeKey, []byte("sepia"))
		}))
		_, err = s.Load(ctx)
		assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
	})
}
