package engine

import "time"

// moveOverhead is subtracted from every budget to absorb protocol and
// scheduling latency.
const moveOverhead = 25 * time.Millisecond

// Limits describes one search budget. Zero values mean "not limited by
// this": a Limits with only Depth set searches to a fixed depth, one with
// clock fields manages time, Infinite searches until stopped.
type Limits struct {
	Depth     int
	MoveTime  time.Duration
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int
	Infinite  bool
}

// timeHandler turns a Limits into a soft and a hard deadline. The soft
// limit gates starting another iteration; the hard limit aborts mid-search
// and is checked every few thousand nodes.
type timeHandler struct {
	start   time.Time
	soft    time.Duration
	hard    time.Duration
	limited bool
}

func (t *timeHandler) startTimer(limits Limits, white bool) {
	t.start = time.Now()
	t.limited = false

	if limits.Infinite {
		return
	}
	if limits.MoveTime > 0 {
		budget := Max(limits.MoveTime-moveOverhead, time.Millisecond)
		t.soft, t.hard = budget, budget
		t.limited = true
		return
	}

	remaining, inc := limits.BlackTime, limits.BlackInc
	if white {
		remaining, inc = limits.WhiteTime, limits.WhiteInc
	}
	if remaining <= 0 {
		return // depth-only or unconstrained search
	}

	movesToGo := limits.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 25
	}
	ideal := remaining/time.Duration(movesToGo) + inc*4/5

	t.soft = Clamp(ideal-moveOverhead, time.Millisecond, remaining/2)
	t.hard = Clamp(ideal*3-moveOverhead, time.Millisecond, remaining/2)
	t.limited = true
}

func (t *timeHandler) elapsed() time.Duration { return time.Since(t.start) }

// softExpired reports whether a new iteration should still be started.
func (t *timeHandler) softExpired() bool {
	return t.limited && t.elapsed() >= t.soft
}

// hardExpired reports whether the running search must abort.
func (t *timeHandler) hardExpired() bool {
	return t.limited && t.elapsed() >= t.hard
}
