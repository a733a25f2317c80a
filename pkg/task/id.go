package task

import (
	"sync"
	"time"
)

// IDSource hands out task ids derived from wall-clock milliseconds. Ids are
// strictly increasing for the life of the source, so two tasks created within
// the same millisecond still get distinct ids.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource returns a source seeded from the current time.
func NewIDSource() *IDSource {
	return NewIDSourceWithClock(time.Now)
}

// NewIDSourceWithClock returns a source that reads time from now.
func NewIDSourceWithClock(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now, last: now().UnixMilli() - 1}
}

// Next allocates an id.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe makes sure future ids are greater than id. Used after loading
// tasks whose ids may be ahead of the local clock.
func (s *IDSource) Observe(id int64) {
	s.mu.Lock()
	if id > s.last {
		s.last = id
	}
	s.mu.Unlock()
}

var defaultIDs = NewIDSource()

// NextID allocates from the process-wide source.
func NextID() int64 {
	return defaultIDs.Next()
}

// DefaultIDSource returns the process-wide source.
func DefaultIDSource() *IDSource {
	return defaultIDs
}
