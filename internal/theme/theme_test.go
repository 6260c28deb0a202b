package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dpshade/luma/internal/storage"
)

type failingStore struct{ storage.Store }

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("unavailable")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("unavailable")
}

func TestLoad_FallsBackToDetection(t *testing.T) {
	ctx := context.Background()

	dark := NewManager(storage.NewMemoryStore(), Auto, nil).WithDetector(func() bool { return true })
	assert.Equal(t, Dark, dark.Load(ctx))

	light := NewManager(storage.NewMemoryStore(), "", nil).WithDetector(func() bool { return false })
	assert.Equal(t, Light, light.Load(ctx))
}

func TestLoad_Precedence(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := NewManager(store, "light", nil).WithDetector(func() bool { return true })

	assert.Equal(t, Light, m.Load(ctx), "override beats detection")

	require.NoError(t, store.Set(ctx, Key, "dark"))
	assert.Equal(t, Dark, m.Load(ctx), "stored value beats override")

	require.NoError(t, store.Set(ctx, Key, "sepia"))
	assert.Equal(t, Light, m.Load(ctx), "unknown stored value is ignored")
}

func TestToggle_Persists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	m := NewManager(store, Auto, nil).WithDetector(func() bool { return false })

	assert.Equal(t, Dark, m.Toggle(ctx))
	v, ok, err := store.Get(ctx, Key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	assert.Equal(t, Light, m.Toggle(ctx))
}

func TestFailuresAreLogged(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	m := NewManager(failingStore{}, Auto, zap.New(core)).WithDetector(func() bool { return true })

	assert.Equal(t, Dark, m.Load(ctx))
	m.Save(ctx, Light)

	assert.Equal(t, 1, logs.FilterMessage("failed to read theme").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to save theme").Len())
}
