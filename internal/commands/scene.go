package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"solar-scene/internal/config"
	"solar-scene/internal/daynight"
)

// SceneControl is what the console can change on a running scene.
type SceneControl interface {
	SetAngularSpeed(v float64)
	SetBlend(m daynight.BlendMode)
	RequestTransition(d daynight.Direction) bool
	ScaleBody(name string, scale float64) error
	MoveBody(name string, x, y, z float64) error
	MoveCamera(x, y, z float64)
	SetStarsVisible(v bool)
	SaveConfig(path string) error
	Status() string
}

// AudioControl is the ambient track as the console sees it.
type AudioControl interface {
	Playing() bool
	SetPaused(paused bool)
}

// Printer receives command output lines. logger.Logger implements it.
type Printer interface {
	Log(line string)
}

// RegisterScene adds the scene commands to r.
func RegisterScene(r *Registry, sc SceneControl, out Printer) {
	r.Register("orbit", "cmd orbit -speed 0.5", func(fs *flag.FlagSet) func() error {
		speed := fs.Float64("speed", -1, "orbiter angular speed in radians per second")
		return func() error {
			if *speed < 0 {
				return errors.New("orbit: -speed must be >= 0")
			}
			sc.SetAngularSpeed(*speed)
			return nil
		}
	})

	r.Register("blend", "cmd blend -mode multiplicative|additive", func(fs *flag.FlagSet) func() error {
		mode := fs.String("mode", "", "how env properties combine day and night values")
		return func() error {
			m, err := daynight.ParseBlendMode(*mode)
			if err != nil {
				return err
			}
			sc.SetBlend(m)
			return nil
		}
	})

	r.Register("daynight", "cmd daynight -to night|day", func(fs *flag.FlagSet) func() error {
		to := fs.String("to", "", "direction to transition toward")
		return func() error {
			d, err := daynight.ParseDirection(*to)
			if err != nil {
				return err
			}
			if !sc.RequestTransition(d) {
				out.Log("daynight: request ignored")
			}
			return nil
		}
	})

	r.Register("body", "cmd body -name Mars [-scale 2] [-x 0 -y 0 -z 0]", func(fs *flag.FlagSet) func() error {
		name := fs.String("name", "", "body name")
		scale := fs.Float64("scale", 0, "uniform scale")
		x := fs.Float64("x", 0, "x relative to parent")
		y := fs.Float64("y", 0, "y relative to parent")
		z := fs.Float64("z", 0, "z relative to parent")
		return func() error {
			if *name == "" {
				return errors.New("body: -name is required")
			}
			set := visited(fs)
			if set["scale"] {
				if *scale <= 0 {
					return errors.New("body: -scale must be > 0")
				}
				if err := sc.ScaleBody(*name, *scale); err != nil {
					return err
				}
			}
			if set["x"] || set["y"] || set["z"] {
				return sc.MoveBody(*name, *x, *y, *z)
			}
			return nil
		}
	})

	r.Register("camera", "cmd camera -x 0 -y 0 -z 100", func(fs *flag.FlagSet) func() error {
		x := fs.Float64("x", 0, "camera x")
		y := fs.Float64("y", 0, "camera y")
		z := fs.Float64("z", 0, "camera z")
		return func() error {
			sc.MoveCamera(*x, *y, *z)
			return nil
		}
	})

	r.Register("stars", "cmd stars -visible=false", func(fs *flag.FlagSet) func() error {
		visible := fs.Bool("visible", true, "draw the starfield")
		return func() error {
			sc.SetStarsVisible(*visible)
			return nil
		}
	})

	r.Register("save", "cmd save -path config/scene.yaml", func(fs *flag.FlagSet) func() error {
		path := fs.String("path", config.DefaultPath, "where to write the current config")
		return func() error {
			if *path == "" {
				return errors.New("save: -path must not be empty")
			}
			if err := sc.SaveConfig(*path); err != nil {
				return err
			}
			out.Log("saved " + *path)
			return nil
		}
	})

	r.Register("status", "cmd status", func(fs *flag.FlagSet) func() error {
		return func() error {
			out.Log(sc.Status())
			return nil
		}
	})

	r.Register("help", "cmd help", func(fs *flag.FlagSet) func() error {
		return func() error {
			lines := make([]string, 0, len(r.cmds))
			for _, n := range r.Names() {
				u, _ := r.Usage(n)
				lines = append(lines, u)
			}
			out.Log(fmt.Sprintf("commands: %s", strings.Join(lines, " | ")))
			return nil
		}
	})
}

// RegisterAudio adds the audio command to r. Without -paused it reports
// whether the track is playing.
func RegisterAudio(r *Registry, a AudioControl, out Printer) {
	r.Register("audio", "cmd audio [-paused=true|false]", func(fs *flag.FlagSet) func() error {
		paused := fs.Bool("paused", false, "pause or resume the ambient track")
		return func() error {
			if visited(fs)["paused"] {
				a.SetPaused(*paused)
			}
			out.Log(fmt.Sprintf("audio: playing=%t", a.Playing()))
			return nil
		}
	})
}

func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
