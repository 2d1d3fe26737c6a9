package hobbyist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hobbyist/internal/memory"
	"github.com/mesh-intelligence/hobbyist/internal/sqlite"
	"github.com/mesh-intelligence/hobbyist/internal/surreal"
	"github.com/mesh-intelligence/hobbyist/pkg/types"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name string
		want types.Backend
	}{
		{types.BackendSQLite, &sqlite.Backend{}},
		{types.BackendMemory, &memory.Backend{}},
		{types.BackendSurrealDB, &surreal.Backend{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(tt.name)
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
		})
	}

	_, err := NewBackend("postgres")
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestOpen(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := Open(types.Config{})
		assert.ErrorIs(t, err, types.ErrBackendEmpty)

		_, err = Open(types.Config{Backend: types.BackendSurrealDB})
		assert.ErrorIs(t, err, types.ErrSurrealURLMissing)
	})

	t.Run("sqlite attaches and serves tables", func(t *testing.T) {
		b, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Detach() })

		hobbies, err := b.Hobbies()
		require.NoError(t, err)
		h, err := hobbies.Create(context.Background(), "chess")
		require.NoError(t, err)
		assert.Equal(t, "chess", h.Name)
	})

	t.Run("memory", func(t *testing.T) {
		b, err := Open(types.Config{Backend: types.BackendMemory})
		require.NoError(t, err)
		require.NoError(t, b.Detach())
	})
}
