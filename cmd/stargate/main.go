// Command stargate flies a jumper through a small space scene: a spinning
// stargate, an orbiting shadow-casting light, particles and a
// picture-in-picture chase view.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"stargate/assets"
	"stargate/core"
	"stargate/internal/opengl"
	"stargate/renderer"
	"stargate/scene"
)

func main() {
	fs := pflag.NewFlagSet("stargate", pflag.ExitOnError)
	core.ConfigFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		core.LogFatal("parse flags", "err", err)
	}

	if path, _ := fs.GetString("write-config"); path != "" {
		if err := core.WriteDefaultConfig(path); err != nil {
			core.LogFatal("write config", "err", err)
		}
		core.LogInfo("default config written", "path", path)
		return
	}

	cfg, err := core.LoadConfig(fs)
	if err != nil {
		core.LogFatal("load config", "err", err)
	}
	core.SetLogLevel(cfg.Log.Level)

	if err := run(cfg); err != nil {
		core.LogFatal("stargate exited", "err", err)
	}
}

func run(cfg core.Config) error {
	window, err := core.NewWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	dev, err := opengl.NewDevice()
	if err != nil {
		return err
	}

	state, err := scene.NewState(cfg.Scene)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	width, height := window.GetFramebufferSize()
	res := newBackend(cfg, width, height)
	defer res.Delete()
	res.Attach(state, cfg.Assets.Dir)

	filter, err := renderer.ParseFilter(cfg.Render.Filter)
	if err != nil {
		core.LogWarn("ignoring filter", "err", err)
	}
	pipe := res.Pipeline(cfg.Render, width, height)
	pipe.SetFilter(filter)

	a := &app{
		window:   window,
		dev:      dev,
		state:    state,
		pipeline: pipe,
		backend:  res,
		title:    cfg.Window.Title,
	}
	if cfg.Assets.WatchShaders {
		if cfg.Assets.ShaderDir == "" {
			core.LogWarn("shader watching needs assets.shader_dir, continuing without reload")
		} else if a.watcher, err = assets.NewWatcher(cfg.Assets.ShaderDir); err != nil {
			core.LogError("continuing without shader reload", "err", err)
		} else {
			defer a.watcher.Close()
		}
	}
	a.loop()
	return nil
}
