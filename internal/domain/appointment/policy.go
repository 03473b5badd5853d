package appointment

import "time"

// Policy holds the scheduling constants: one global working window applied
// to every professional on every day, the candidate slot step and the
// minimum cancellation lead time.
type Policy struct {
	StartHour      int
	EndHour        int
	SlotMinutes    int
	CancelLeadTime time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		StartHour:      8,
		EndHour:        18,
		SlotMinutes:    30,
		CancelLeadTime: 3 * time.Hour,
	}
}

func (p Policy) windowStart() int { return p.StartHour * 60 }
func (p Policy) windowEnd() int   { return p.EndHour * 60 }

// Fits reports whether [start, end) lies inside the working window. The
// slot must finish at or before EndHour:00.
func (p Policy) Fits(start, end int) bool {
	return start >= p.windowStart() && end <= p.windowEnd() && end > start
}

// Candidates enumerates candidate start times, in minutes, every
// SlotMinutes from StartHour:00 up to but excluding EndHour:00.
func (p Policy) Candidates() []int {
	step := p.SlotMinutes
	if step <= 0 {
		step = 30
	}
	out := make([]int, 0, (p.windowEnd()-p.windowStart())/step)
	for t := p.windowStart(); t < p.windowEnd(); t += step {
		out = append(out, t)
	}
	return out
}
