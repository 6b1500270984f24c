package easing

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

// Func maps linear progress p in [0,1] to eased progress. The result is not
// clamped: overshooting curves may leave [0,1] before settling at 1.
type Func func(p float64) float64

// Linear returns p unchanged.
func Linear(p float64) float64 { return p }

// OutQuad decelerates towards the end.
func OutQuad(p float64) float64 { return 1 - (1-p)*(1-p) }

// Elastic amplitude and period bounds. Values outside are clamped.
const (
	MinAmplitude = 1.0
	MaxAmplitude = 10.0
	MinPeriod    = 0.1
	MaxPeriod    = 2.0
)

// OutElastic returns a decaying-sinusoid curve that overshoots 1 and rings back,
// shaped by amplitude (how far it swings) and period (how fast it oscillates).
// OutElastic(3, 0.7) is the curve used for the day/night transition.
func OutElastic(amplitude, period float64) Func {
	in := inElastic(amplitude, period)
	return func(p float64) float64 {
		return 1 - in(1-p)
	}
}

func inElastic(amplitude, period float64) Func {
	a := Clamp(amplitude, MinAmplitude, MaxAmplitude)
	per := Clamp(period, MinPeriod, MaxPeriod)
	shift := per / (2 * math.Pi) * math.Asin(1/a)
	return func(p float64) float64 {
		if p == 0 || p == 1 {
			return p
		}
		return -a * math.Pow(2, 10*(p-1)) * math.Sin(((p-1)-shift)*(2*math.Pi)/per)
	}
}

// ByName resolves a curve name as written in config files.
// amplitude and period are only used by "elastic".
func ByName(name string, amplitude, period float64) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "elastic", "outelastic":
		return OutElastic(amplitude, period), nil
	case "linear":
		return Linear, nil
	case "quad", "outquad":
		return OutQuad, nil
	default:
		return nil, fmt.Errorf("unknown easing %q", name)
	}
}

// Lerp interpolates linearly between a and b.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
