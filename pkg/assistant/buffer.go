package assistant

import "strings"

const (
	DefaultBufferLimit   = 12
	DefaultTriggerPeriod = 6
)

// RollingBuffer is a bounded FIFO of the most recent transcript segments.
// The limit controls context breadth (how much the model sees), the
// trigger period controls generation frequency; they are independent.
type RollingBuffer struct {
	limit    int
	period   int
	segments []string
	counter  int // lifetime appends, never bounded by limit
}

func NewRollingBuffer(limit, period int) *RollingBuffer {
	if limit <= 0 {
		limit = DefaultBufferLimit
	}
	if period <= 0 {
		period = DefaultTriggerPeriod
	}
	return &RollingBuffer{
		limit:  limit,
		period: period,
	}
}

// Append adds a segment and evicts from the front once the limit is
// exceeded. Empty or whitespace-only segments are rejected without
// touching the counter, so silence never drives a trigger.
func (b *RollingBuffer) Append(segment string) error {
	if strings.TrimSpace(segment) == "" {
		return ErrEmptySegment
	}

	b.segments = append(b.segments, segment)
	for len(b.segments) > b.limit {
		b.segments = b.segments[1:]
	}
	b.counter++
	return nil
}

// Window returns the buffered segments joined by a single space,
// oldest to newest. This is the live text used for generation.
func (b *RollingBuffer) Window() string {
	return strings.Join(b.segments, " ")
}

// ShouldTrigger reports whether the lifetime segment counter is a
// positive multiple of the trigger period.
func (b *RollingBuffer) ShouldTrigger() bool {
	return b.counter > 0 && b.counter%b.period == 0
}

// Len returns the number of currently buffered segments.
func (b *RollingBuffer) Len() int {
	return len(b.segments)
}

// Counter returns the lifetime number of accepted segments.
func (b *RollingBuffer) Counter() int {
	return b.counter
}

// Reset empties the buffer and zeroes the counter (fresh session).
func (b *RollingBuffer) Reset() {
	b.segments = nil
	b.counter = 0
}
