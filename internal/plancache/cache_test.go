package plancache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	c := New[string](4, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "plan-a")
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "plan-a", got)
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestCache_EvictsOldest(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestKey(t *testing.T) {
	type req struct {
		Item string  `json:"item"`
		Rate float64 `json:"rate"`
	}

	k1, err := Key(req{Item: "glass", Rate: 140})
	require.NoError(t, err)
	k2, err := Key(req{Item: "glass", Rate: 140})
	require.NoError(t, err)
	k3, err := Key(req{Item: "glass", Rate: 20})
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Len(t, k1, 64)
}

func TestKey_Unmarshalable(t *testing.T) {
	_, err := Key(make(chan int))
	assert.Error(t, err)
}
