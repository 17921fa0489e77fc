package registry

import (
	"errors"
	"sync"
	"testing"

	"aptamer_api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("runs", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("runs", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("runs")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestRegistry_MustGetMissing(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.MustGet("missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRegistry_GetOrCreateConcurrent(t *testing.T) {
	r := NewRegistry[int]()
	var calls int
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.GetOrCreate("shared", func() (int, error) {
				calls++
				return 42, nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	v, _ := r.Get("shared")
	assert.Equal(t, 42, v)
}

func TestRegistry_ClearAll(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("b", 2)
	_, _ = r.Register("a", 1)
	assert.Equal(t, []string{"a", "b"}, r.Names())

	_, err := r.ClearAll(func(int) error { return errors.New("close failed") })
	assert.Error(t, err)

	count, err := r.ClearAll(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, r.Names())
}
