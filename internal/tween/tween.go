package tween

import (
	"time"

	"solar-scene/internal/easing"
)

// Tween drives a scalar from one value to another over a fixed duration.
// Each Advance reports the eased value through OnUpdate; OnComplete fires exactly
// once, after the final update, when the duration has elapsed.
type Tween struct {
	From       float64
	To         float64
	Duration   time.Duration
	Ease       easing.Func
	OnUpdate   func(v float64)
	OnComplete func()

	elapsed time.Duration
	value   float64
	done    bool
}

// New returns a tween positioned at from. A nil ease means linear.
func New(from, to float64, d time.Duration, ease easing.Func, onUpdate func(float64), onComplete func()) *Tween {
	if ease == nil {
		ease = easing.Linear
	}
	return &Tween{
		From:       from,
		To:         to,
		Duration:   d,
		Ease:       ease,
		OnUpdate:   onUpdate,
		OnComplete: onComplete,
		value:      from,
	}
}

// Advance moves the tween forward by dt and returns true once it has finished.
// Negative dt is treated as zero. Calling Advance after completion is a no-op.
func (tw *Tween) Advance(dt time.Duration) bool {
	if tw.done {
		return true
	}
	if dt > 0 {
		tw.elapsed += dt
	}
	p := tw.Progress()
	tw.value = tw.From + (tw.To-tw.From)*tw.Ease(p)
	if p >= 1 {
		// Land exactly on the target regardless of the curve's float error at 1.
		tw.value = tw.To
	}
	if tw.OnUpdate != nil {
		tw.OnUpdate(tw.value)
	}
	if p >= 1 {
		tw.done = true
		if tw.OnComplete != nil {
			tw.OnComplete()
		}
	}
	return tw.done
}

// Progress is the linear (pre-easing) fraction of the duration elapsed, in [0,1].
func (tw *Tween) Progress() float64 {
	if tw.Duration <= 0 || tw.elapsed >= tw.Duration {
		return 1
	}
	return float64(tw.elapsed) / float64(tw.Duration)
}

// Value is the most recent eased value.
func (tw *Tween) Value() float64 { return tw.value }

// Done reports whether the completion callback has fired.
func (tw *Tween) Done() bool { return tw.done }
