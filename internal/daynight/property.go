package daynight

import (
	"fmt"
	"strings"

	"solar-scene/internal/easing"
)

// BlendMode selects how a Property's day and night values combine at progress t.
type BlendMode int

const (
	// BlendMultiplicative computes sun*(1-t)*moon*t. It is zero at both rest
	// points, which is how the scene has always looked.
	BlendMultiplicative BlendMode = iota
	// BlendAdditive computes sun*(1-t) + moon*t, a plain interpolation.
	BlendAdditive
)

func (m BlendMode) String() string {
	switch m {
	case BlendMultiplicative:
		return "multiplicative"
	case BlendAdditive:
		return "additive"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
}

// ParseBlendMode accepts "multiplicative" or "additive" (and their first letters).
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multiplicative", "mul", "m":
		return BlendMultiplicative, nil
	case "additive", "add", "a":
		return BlendAdditive, nil
	default:
		return 0, fmt.Errorf("unknown blend mode %q", s)
	}
}

// Blend combines sun and moon at progress t.
func Blend(mode BlendMode, sun, moon, t float64) float64 {
	if mode == BlendAdditive {
		return easing.Lerp(sun, moon, t)
	}
	return sun * (1 - t) * moon * t
}

// Property is a renderable attribute with a day target and a night target,
// such as a mesh's environment-light contribution. Sun and Moon are read-only;
// Current is written by the transition while it samples and otherwise keeps its
// last value.
type Property struct {
	Name    string
	Sun     float64
	Moon    float64
	Current float64
}

// Registry is the list of properties a transition fans out to, built once while
// the scene is assembled.
type Registry struct {
	props []*Property
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a property whose Current starts at initial and returns it so the
// owner can read Current when drawing.
func (r *Registry) Register(name string, sun, moon, initial float64) *Property {
	p := &Property{Name: name, Sun: sun, Moon: moon, Current: initial}
	r.props = append(r.props, p)
	return p
}

// Len is the number of registered properties.
func (r *Registry) Len() int { return len(r.props) }

// All returns the registered properties in registration order.
func (r *Registry) All() []*Property {
	return r.props
}

// Find returns the first property registered under name.
func (r *Registry) Find(name string) (*Property, bool) {
	for _, p := range r.props {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func (r *Registry) apply(mode BlendMode, t float64) {
	for _, p := range r.props {
		p.Current = Blend(mode, p.Sun, p.Moon, t)
	}
}
