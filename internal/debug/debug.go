package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime overlays drawn top-right: FPS, heap size and a scene status
// line. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStatus   bool
	// Status supplies the scene line; it is read every frame so transitions show live.
	Status       func() string
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// Toggle flips every overlay on or off together.
func (d *Debug) Toggle() {
	on := !(d.ShowFPS || d.ShowMemAlloc || d.ShowStatus)
	d.ShowFPS, d.ShowMemAlloc, d.ShowStatus = on, on, on
}

// Lines returns the overlay text for this frame, top to bottom. Text is only
// recomputed every updateInterval frames to limit allocations, except the status line.
func (d *Debug) Lines(fps int32) []string {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	var lines []string
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", fps)
		}
		lines = append(lines, d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		lines = append(lines, d.lastMemText)
	}
	if d.ShowStatus && d.Status != nil {
		lines = append(lines, d.Status())
	}
	return lines
}

// Draw renders any enabled overlays. Call after scene and terminal in the draw loop.
func (d *Debug) Draw() {
	screenW := int32(rl.GetScreenWidth())
	y := int32(fpsPadding)
	for _, text := range d.Lines(rl.GetFPS()) {
		if text == "" {
			continue
		}
		w := rl.MeasureText(text, fpsFontSize)
		rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
		y += fpsLineHeight
	}
}
