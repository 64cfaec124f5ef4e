package store

import (
	"fmt"
	"sync/atomic"
	"time"
)

const (
	IDsSequence  = "sequence"
	IDsTimestamp = "timestamp"
)

// IDAllocator hands out ids for new items.
type IDAllocator interface {
	NextID() int64
}

// Sequence allocates strictly increasing ids starting after a seed.
type Sequence struct {
	last atomic.Int64
}

func NewSequence(seed int64) *Sequence {
	s := &Sequence{}
	s.last.Store(seed)
	return s
}

func (s *Sequence) NextID() int64 {
	return s.last.Add(1)
}

// Timestamp uses the current Unix time in milliseconds as the id.
// Two allocations inside the same millisecond return the same id.
type Timestamp struct {
	Now func() time.Time
}

func (t Timestamp) NextID() int64 {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	return now().UnixMilli()
}

// NewAllocator builds the allocator named by kind. seed is only used by
// the sequence strategy.
func NewAllocator(kind string, seed int64) (IDAllocator, error) {
	switch kind {
	case "", IDsSequence:
		return NewSequence(seed), nil
	case IDsTimestamp:
		return Timestamp{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", kind)
	}
}
