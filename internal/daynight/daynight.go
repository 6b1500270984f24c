package daynight

import (
	"fmt"
	"time"

	"solar-scene/internal/easing"
	"solar-scene/internal/tween"
)

// Direction is the way an in-flight transition is heading.
type Direction int

const (
	ToNight Direction = iota
	ToDay
)

func (d Direction) String() string {
	if d == ToDay {
		return "ToDay"
	}
	return "ToNight"
}

// ParseDirection accepts "night"/"day" as typed in the console.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "night", "ToNight", "tonight":
		return ToNight, nil
	case "day", "ToDay", "today":
		return ToDay, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// Reasons a request is dropped.
const (
	ReasonInFlight     = "in_flight"
	ReasonAlreadyNight = "already_night"
	ReasonAlreadyDay   = "already_day"
)

// State is the transition's resting flag, flight flag and progress.
// At rest T is 0 by day and 1 by night; in flight it follows the eased tween and
// may overshoot.
type State struct {
	Daytime    bool
	InProgress bool
	Direction  Direction
	T          float64
}

func (s State) String() string {
	if s.InProgress {
		return fmt.Sprintf("InFlight(%s) t=%.3f", s.Direction, s.T)
	}
	if s.Daytime {
		return "Resting(day)"
	}
	return "Resting(night)"
}

// Derived holds the scene-wide values fanned out from t.
type Derived struct {
	SunIntensity     float64
	MoonIntensity    float64
	SunHeight        float64
	MoonHeight       float64
	Sheen            float64
	SunLayerOpacity  float64
	MoonLayerOpacity float64
}

// Config tunes the transition.
type Config struct {
	LeftEdge      float64 // pixels from the left edge that trigger nightfall
	RightEdge     float64 // pixels from the right edge that trigger daybreak
	Duration      time.Duration
	Easing        easing.Func
	BaseIntensity float64
	BaseHeight    float64
	InitialSheen  float64
	Blend         BlendMode
}

// DefaultConfig mirrors the reference scene: 10px edges, 1.5s elastic(3, 0.7),
// lights at intensity 3.5 and height 20.
func DefaultConfig() Config {
	return Config{
		LeftEdge:      10,
		RightEdge:     10,
		Duration:      1500 * time.Millisecond,
		Easing:        easing.OutElastic(3, 0.7),
		BaseIntensity: 3.5,
		BaseHeight:    20,
		InitialSheen:  1.4,
		Blend:         BlendMultiplicative,
	}
}

// Hooks observe the transition. Any of them may be nil.
type Hooks struct {
	Started   func(d Direction)
	Ignored   func(d Direction, reason string)
	Sampled   func(t float64)
	Completed func(s State)
}

// Transition is the single-flight day/night state machine. It is driven from the
// frame loop only and is not safe for concurrent use.
type Transition struct {
	cfg     Config
	props   *Registry
	hooks   Hooks
	state   State
	derived Derived
	tw      *tween.Tween
}

// New returns a transition resting at day. props may be nil.
func New(cfg Config, props *Registry) *Transition {
	if props == nil {
		props = NewRegistry()
	}
	if cfg.Easing == nil {
		cfg.Easing = easing.Linear
	}
	tr := &Transition{
		cfg:   cfg,
		props: props,
		state: State{Daytime: true, T: 0},
	}
	tr.derived = tr.lights(0)
	tr.derived.Sheen = cfg.InitialSheen
	return tr
}

// SetHooks installs observers.
func (tr *Transition) SetHooks(h Hooks) { tr.hooks = h }

// SetBlend changes how properties are blended from the next sample on.
func (tr *Transition) SetBlend(m BlendMode) { tr.cfg.Blend = m }

// Blend is the active blend mode.
func (tr *Transition) Blend() BlendMode { return tr.cfg.Blend }

// SetEdges changes the edge margins used by CursorMoved.
func (tr *Transition) SetEdges(left, right float64) {
	tr.cfg.LeftEdge = left
	tr.cfg.RightEdge = right
}

// Edges returns the edge margins used by CursorMoved.
func (tr *Transition) Edges() (left, right float64) {
	return tr.cfg.LeftEdge, tr.cfg.RightEdge
}

// State returns a copy of the current state.
func (tr *Transition) State() State { return tr.state }

// Derived returns the most recently sampled values.
func (tr *Transition) Derived() Derived { return tr.derived }

// Properties is the registry the transition fans out to.
func (tr *Transition) Properties() *Registry { return tr.props }

// CursorMoved applies the edge guard for a cursor at x in a viewport of the given
// width: near the left edge by day starts nightfall, near the right edge by night
// starts daybreak. It reports whether a transition started.
func (tr *Transition) CursorMoved(x, width float64) bool {
	if tr.state.InProgress {
		return false
	}
	switch {
	case x > width-tr.cfg.RightEdge && !tr.state.Daytime:
		return tr.Request(ToDay)
	case x < tr.cfg.LeftEdge && tr.state.Daytime:
		return tr.Request(ToNight)
	default:
		return false
	}
}

// Request starts a transition in direction d unless one is already in flight or
// the scene already rests at d's destination. It reports whether one started.
func (tr *Transition) Request(d Direction) bool {
	switch {
	case tr.state.InProgress:
		tr.ignored(d, ReasonInFlight)
		return false
	case d == ToNight && !tr.state.Daytime:
		tr.ignored(d, ReasonAlreadyNight)
		return false
	case d == ToDay && tr.state.Daytime:
		tr.ignored(d, ReasonAlreadyDay)
		return false
	}

	from, to := 0.0, 1.0
	if d == ToDay {
		from, to = 1, 0
	}
	tr.state.InProgress = true
	tr.state.Direction = d
	tr.tw = tween.New(from, to, tr.cfg.Duration, tr.cfg.Easing, func(t float64) {
		tr.state.T = t
		tr.Sample(t)
	}, func() {
		tr.state.InProgress = false
		tr.state.Daytime = d == ToDay
		tr.state.T = to
		tr.tw = nil
		if tr.hooks.Completed != nil {
			tr.hooks.Completed(tr.state)
		}
	})
	if tr.hooks.Started != nil {
		tr.hooks.Started(d)
	}
	return true
}

// Advance moves an in-flight transition forward by dt. At rest it does nothing.
func (tr *Transition) Advance(dt time.Duration) {
	if tr.tw == nil {
		return
	}
	tr.tw.Advance(dt)
}

// Sample computes the values derived from t, writes every registered property's
// Current, and returns the scene-wide values.
func (tr *Transition) Sample(t float64) Derived {
	d := tr.lights(t)
	d.Sheen = 1 - t
	tr.props.apply(tr.cfg.Blend, t)
	tr.derived = d
	if tr.hooks.Sampled != nil {
		tr.hooks.Sampled(t)
	}
	return d
}

func (tr *Transition) lights(t float64) Derived {
	return Derived{
		SunIntensity:     tr.cfg.BaseIntensity * (1 - t),
		MoonIntensity:    tr.cfg.BaseIntensity * t,
		SunHeight:        tr.cfg.BaseHeight * (1 - t),
		MoonHeight:       tr.cfg.BaseHeight * t,
		Sheen:            1 - t,
		SunLayerOpacity:  1 - t,
		MoonLayerOpacity: t,
	}
}

func (tr *Transition) ignored(d Direction, reason string) {
	if tr.hooks.Ignored != nil {
		tr.hooks.Ignored(d, reason)
	}
}
