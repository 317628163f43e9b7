package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
// The clock is injectable so loops can be tested without sleeping.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time

	// MaxCatchUp bounds how many ticks Due reports after a stall.
	MaxCatchUp int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now, MaxCatchUp: 5}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// WithClock replaces the time source.
func (f *FixedStep) WithClock(now func() time.Time) *FixedStep {
	f.now = now
	f.last = time.Time{}
	return f
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the tick length.
func (f *FixedStep) Step() time.Duration { return f.step }

// Due reports how many ticks should run since the previous call. After a
// stall the backlog is capped at MaxCatchUp and the rest is dropped.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(n) * f.step
	if f.MaxCatchUp > 0 && n > f.MaxCatchUp {
		n = f.MaxCatchUp
	}
	return n
}
