// Package ids owns identifier allocation. World objects use an explicit
// sequence injected into chunk generation instead of a hidden global
// counter; entities and sessions use UUIDs since nothing compares them
// across runs.
package ids

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Sequence hands out monotonically increasing int64 ids. Safe for
// concurrent use.
type Sequence struct {
	next atomic.Int64
}

// NewSequence creates a sequence starting at 1.
func NewSequence() *Sequence {
	s := &Sequence{}
	s.next.Store(1)
	return s
}

// Next returns the next id.
func (s *Sequence) Next() int64 {
	return s.next.Add(1) - 1
}

// NewEntityID returns a fresh UUID string for NPCs, animals, and sessions.
func NewEntityID() string {
	return uuid.NewString()
}
