package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/der-antikeks/rtr/config"
	"github.com/der-antikeks/rtr/engine"
	"github.com/der-antikeks/rtr/engine/opengl"
	"github.com/der-antikeks/rtr/navigator"
	"github.com/der-antikeks/rtr/viewer"
)

func init() {
	// glfw and the gl context live on the main thread
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "configuration file, .toml or .yaml")
		model      = flag.String("model", "", "wavefront .obj file to show")
		shaderDir  = flag.String("shader", "", "shader directory, watched for changes")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath, *model, *shaderDir, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	engine.SetLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("viewer", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path, model, shaderDir, logLevel string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if shaderDir != "" {
		cfg.ShaderDir = shaderDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if model != "" {
		name := strings.TrimSuffix(filepath.Base(model), filepath.Ext(model))
		cfg.Models = append(cfg.Models, config.Model{
			Name:      name,
			Path:      model,
			Material:  cfg.Materials[0].Name,
			Normalize: true,
		})
		cfg.Scene = name
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config, logger *slog.Logger) error {
	win, err := opengl.NewWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return err
	}
	defer win.Close()

	v, err := viewer.New(cfg, win.Device(), opengl.Compiler{})
	if err != nil {
		return err
	}
	logger.Info("scene ready", "models", v.Models(), "scene", v.Scene().CurrentSceneNode())

	var reloads <-chan string
	if cfg.ShaderDir != "" {
		sw, err := engine.WatchShaders(cfg.ShaderDir)
		if err != nil {
			logger.Warn("shader watcher", "dir", cfg.ShaderDir, "err", err)
		} else {
			defer sw.Close()
			reloads = sw.Reloads()
		}
	}

	win.SetResizeCallback(v.Resize)
	win.SetMouseScrollCallback(v.Scroll)
	win.SetKeyCallback(func(key glfw.Key, action glfw.Action, _ glfw.ModifierKey) {
		if k, ok := navigationKeys[key]; ok {
			v.Navigate(k, navigator.Action(action))
			return
		}
		if action != glfw.Press {
			return
		}
		if key == glfw.KeyEscape {
			win.Quit()
			return
		}
		if r, ok := printable(key); ok && v.OnKey(r) && v.Quit() {
			win.Quit()
		}
	})

	// main loop
	var (
		wait    = 1 / cfg.FPS
		console = time.Tick(5 * time.Second)
		frames  int
		last    = time.Now()
	)

	for win.Running() {
		win.WaitEvents(wait)

		select {
		case <-v.Scene().Ticks():
			v.Scene().RequestRedraw()

		case name, ok := <-reloads:
			if !ok {
				reloads = nil
				break
			}
			v.Reload(name)

		case now := <-console:
			if frames > 0 {
				logger.Debug("frames", "fps", float64(frames)/now.Sub(last).Seconds())
			}
			frames, last = 0, now

		default:
		}

		drawn, err := v.Frame()
		if err != nil {
			logger.Error("draw", "err", err)
		}
		if drawn {
			win.SwapBuffers()
			win.SetTitle(v.Title())
			frames++
		}
	}
	return nil
}

var navigationKeys = map[glfw.Key]navigator.Key{
	glfw.KeyUp:         navigator.KeyUp,
	glfw.KeyDown:       navigator.KeyDown,
	glfw.KeyLeft:       navigator.KeyLeft,
	glfw.KeyRight:      navigator.KeyRight,
	glfw.KeyKPAdd:      navigator.KeyZoomIn,
	glfw.KeyKPSubtract: navigator.KeyZoomOut,
}

// printable maps a key to its unshifted character, letters upper case.
func printable(key glfw.Key) (rune, bool) {
	if key >= glfw.KeySpace && key <= glfw.KeyGraveAccent {
		return rune(key), true
	}
	return 0, false
}
