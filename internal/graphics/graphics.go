package graphics

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"solar-scene/internal/config"
)

// Run opens the window and drives the main loop. Each frame it calls update with the
// frame time in seconds, then draw between BeginDrawing and EndDrawing. draw owns
// clearing the screen. ESC toggles the terminal, so the window closes via its button
// or when ctx is cancelled. cam supplies the projection's clip planes.
func Run(ctx context.Context, cfg config.WindowConfig, cam config.CameraConfig, update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	defer rl.CloseWindow()
	rl.SetClipPlanes(cam.Near, cam.Far)
	if cfg.Fullscreen {
		m := rl.GetCurrentMonitor()
		rl.SetWindowSize(rl.GetMonitorWidth(m), rl.GetMonitorHeight(m))
		rl.ToggleFullscreen()
	}

	rl.SetExitKey(rl.KeyNull) // ESC is used to toggle terminal, not to quit
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		draw()
		rl.EndDrawing()
	}
}
