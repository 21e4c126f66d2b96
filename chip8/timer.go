package chip8

import "time"

// TickInterval is the period of the delay and sound timers.
const TickInterval = time.Second / 60

// Timers decay the delay and sound registers on wall-clock time, independent
// of how often the machine is stepped.
type Timers struct {
	delay uint8
	sound uint8

	now  func() time.Time
	last time.Time

	toneComplete bool
}

func newTimers(now func() time.Time) Timers {
	return Timers{now: now, last: now()}
}

// tick decrements both timers by one when at least one TickInterval passed
// since the previous decrement. Missed intervals are not caught up.
func (t *Timers) tick() {
	now := t.now()
	if now.Sub(t.last) < TickInterval {
		return
	}
	t.last = now

	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
		if t.sound == 0 {
			t.toneComplete = true
		}
	}
}

func (t *Timers) takeToneComplete() bool {
	done := t.toneComplete
	t.toneComplete = false
	return done
}
