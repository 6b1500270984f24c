package config

import (
	"math"
	"time"
)

var planetEnv = EnvConfig{Sun: 0.4, Moon: 0.1, Initial: 1.0}

// Default returns the reference scene: Earth and Luna at the centre, the other
// planets spread along X, ten orbiters circling Earth.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "solar scene",
			Width:     1600,
			Height:    900,
			TargetFPS: 60,
		},
		Camera: CameraConfig{
			Position: [3]float64{902, -946, -732},
			Target:   [3]float64{0, 0, 0},
			Fovy:     70,
			Damping:  0.05,
			Near:     0.1,
			Far:      10_000,
		},
		Orbit: OrbitConfig{
			Count:           10,
			AngularSpeed:    0.25,
			MinInclination:  0.2,
			InclinationSpan: math.Pi * 0.45,
			RadiusBase:      10.5,
			RadiusJitter:    1,
			Scale:           0.35,
			Body:            EnvConfig{Sun: 1, Moon: 0.3, Initial: 1},
			Trail:           EnvConfig{Sun: 3, Moon: 0.7, Initial: 3},
		},
		DayNight: DayNightConfig{
			LeftEdge:      10,
			RightEdge:     10,
			Duration:      1500 * time.Millisecond,
			Easing:        "elastic",
			Amplitude:     3,
			Period:        0.7,
			BaseIntensity: 3.5,
			BaseHeight:    20,
			InitialSheen:  1.4,
			Blend:         "multiplicative",
		},
		Spin:   SpinConfig{Speed: 0.002},
		Bodies: defaultBodies(),
		Starfield: StarfieldConfig{
			Count:      50_000,
			Dispersion: 10_000,
			Size:       2,
			Visible:    true,
		},
		Backdrop: BackdropConfig{Day: "#fff7e6", Night: "#05070f"},
		Audio: AudioConfig{
			Enabled: true,
			Track:   "assets/audio/einfluss.ogg",
			Volume:  1,
			Loop:    true,
		},
		Log:   LogConfig{Level: "info", Format: "text", File: "logs/scene.txt"},
		Debug: DebugConfig{ShowStatus: true},
		Seed:  0,
	}
}

func defaultBodies() []BodyConfig {
	return []BodyConfig{
		{
			Name: "Earth", Radius: 10, Color: "#2e6fd8", Sheen: 1.4, Env: planetEnv,
			SpinAxis: "y", SpinFactor: 1, Yaw: math.Pi * 3.38, Primary: true,
		},
		{
			Name: "Luna", Parent: "Earth", Radius: 2.73, Position: [3]float64{18, 4, 0},
			Color: "#b8b8b0", Sheen: 0.4, Env: planetEnv,
		},
		{
			Name: "Mercury", Radius: 3.83, Position: [3]float64{140, 3, 0},
			Color: "#9c8f84", Sheen: 0.4, Env: planetEnv, SpinAxis: "y", SpinFactor: 1 / 1.6,
		},
		{
			Name: "Venus", Radius: 9.5, Position: [3]float64{100, 3, 0},
			Color: "#e3c27a", Sheen: 1.4, Env: planetEnv, SpinAxis: "y", SpinFactor: -1 / 2.5,
		},
		{
			Name: "Mars", Radius: 5.32, Position: [3]float64{-60, -3, 0},
			Color: "#c1440e", Sheen: 0.2, Env: planetEnv, SpinAxis: "y", SpinFactor: 1,
		},
		{
			Name: "Jupiter", Radius: 109.73, Position: [3]float64{-280, 20, 3},
			Color: "#c99b6d", Sheen: 0.2, Env: planetEnv, SpinAxis: "y", SpinFactor: 2.4,
		},
		{
			Name: "Saturn", Radius: 91.4, Position: [3]float64{-700, 20, 3},
			Color: "#e2cf9c", Sheen: 0.2, Env: planetEnv, SpinAxis: "z", SpinFactor: 2.3,
			TiltAxis: [3]float64{0.5, 0.03, 0}, TiltAngle: 17.5,
			Ring: &RingConfig{Inner: 111.4, Outer: 182.8, Opacity: 0.4, Color: "#d8c49a", Env: planetEnv},
		},
		{
			Name: "Uranus", Radius: 39.81, Position: [3]float64{-1000, 20, 0},
			Color: "#9fd6dc", Sheen: 0.2, Env: planetEnv, SpinAxis: "z", SpinFactor: -1.4,
			TiltAxis: [3]float64{0, 0.19, 0}, TiltAngle: 17.5,
			Ring: &RingConfig{Inner: 69.62, Outer: 79.62, Opacity: 0.3, Color: "#c9e4e8", Env: planetEnv},
		},
		{
			Name: "Neptune", Radius: 38.65, Position: [3]float64{-1160, 20, 0},
			Color: "#3f54ba", Sheen: 0.2, Env: planetEnv, SpinAxis: "y", SpinFactor: 1.5,
		},
	}
}
