package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"

	"solar-scene/internal/audio"
	"solar-scene/internal/commands"
	"solar-scene/internal/config"
	"solar-scene/internal/debug"
	"solar-scene/internal/env"
	"solar-scene/internal/graphics"
	"solar-scene/internal/logger"
	"solar-scene/internal/metrics"
	"solar-scene/internal/render"
	"solar-scene/internal/scene"
	"solar-scene/internal/terminal"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "scene config file")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address, overriding the config")
	seed := flag.Uint64("seed", 0, "random seed for orbiters and stars; 0 picks one")
	flag.Parse()

	loaded, envErr := env.Load(env.DefaultPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if envErr != nil {
		log.Warn("dotenv", logger.Err(envErr))
	} else if loaded > 0 {
		log.Debug("dotenv", logger.Int("vars", loaded))
	}
	if err := run(cfg, *configPath, log); err != nil {
		log.Error("exit", logger.Err(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, configPath string, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			log.Info("metrics listening", logger.String("addr", cfg.Metrics.Addr))
			if err := rec.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error("metrics server", logger.Err(err))
			}
		}()
	}

	opts := []scene.Option{scene.WithLogger(log), scene.WithRecorder(rec)}
	var ambient *audio.Ambient
	if cfg.Audio.Enabled {
		ambient = audio.NewAmbient(cfg.Audio.Track, cfg.Audio.Volume, cfg.Audio.Loop)
		defer ambient.Close()
		opts = append(opts, scene.WithFirstCursor(func() {
			go func() {
				if err := ambient.Unlock(); err != nil {
					log.Warn("ambient audio unavailable", logger.Err(err))
				}
			}()
		}))
	}

	scn, err := scene.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	// Reloads arrive on the watcher goroutine and are applied on the frame loop.
	reloads := make(chan config.Config, 1)
	go func() {
		err := config.Watch(ctx, configPath, func(c config.Config) {
			select {
			case reloads <- c:
			default:
			}
		}, func(err error) {
			log.Warn("config reload", logger.Err(err))
		})
		if err != nil {
			log.Warn("config watch disabled", logger.Err(err))
		}
	}()

	reg := commands.NewRegistry()
	commands.RegisterScene(reg, scn, log)
	if ambient != nil {
		commands.RegisterAudio(reg, ambient, log)
	}
	term := terminal.New(log, reg)
	dbg := debug.New()
	dbg.ShowFPS = cfg.Debug.ShowFPS
	dbg.ShowMemAlloc = cfg.Debug.ShowMemAlloc
	dbg.ShowStatus = cfg.Debug.ShowStatus
	dbg.Status = scn.Status
	r := render.New()
	defer r.Close()

	var lastMouse rl.Vector2
	update := func(dt float32) {
		select {
		case c := <-reloads:
			if err := scn.Apply(c); err != nil {
				log.Warn("config rejected", logger.Err(err))
			}
		default:
		}

		term.Update()
		if !term.IsOpen() {
			if rl.IsKeyPressed(rl.KeyF3) {
				dbg.Toggle()
			}
			if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
				d := rl.GetMouseDelta()
				scn.Camera.Drag(float64(d.X), float64(d.Y))
			}
			if wheel := rl.GetMouseWheelMove(); wheel != 0 {
				scn.Camera.Zoom(float64(wheel))
			}
		}

		if mouse := rl.GetMousePosition(); mouse != lastMouse {
			lastMouse = mouse
			scn.CursorMoved(float64(mouse.X), float64(mouse.Y), float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
		}
		scn.Frame(float64(dt))
	}
	draw := func() {
		r.Draw(scn)
		term.Draw()
		dbg.Draw()
	}

	log.Info("starting", logger.String("config", configPath))
	graphics.Run(ctx, cfg.Window, cfg.Camera, update, draw)
	return nil
}
