package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_StartsAfterSeed(t *testing.T) {
	s := NewSequence(41)
	assert.Equal(t, int64(42), s.NextID())
	assert.Equal(t, int64(43), s.NextID())
}

func TestTimestamp_UsesMilliseconds(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	ts := Timestamp{Now: func() time.Time { return at }}
	assert.Equal(t, at.UnixMilli(), ts.NextID())
}

// Same-millisecond allocations collide; this is accepted for the
// timestamp strategy.
func TestTimestamp_CollidesWithinOneMillisecond(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000)
	ts := Timestamp{Now: func() time.Time { return at }}
	assert.Equal(t, ts.NextID(), ts.NextID())
}

func TestNewAllocator(t *testing.T) {
	a, err := NewAllocator("", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(11), a.NextID())

	a, err = NewAllocator(IDsTimestamp, 10)
	require.NoError(t, err)
	assert.IsType(t, Timestamp{}, a)

	_, err = NewAllocator("uuid", 0)
	assert.Error(t, err)
}
