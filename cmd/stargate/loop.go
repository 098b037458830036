package main

import (
	"fmt"

	"stargate/assets"
	"stargate/core"
	"stargate/internal/opengl"
	"stargate/renderer"
	"stargate/scene"
)

type app struct {
	window   *core.Window
	dev      *opengl.Device
	state    *scene.State
	pipeline *renderer.Pipeline
	backend  *backend
	watcher  *assets.Watcher
	title    string
	stats    core.FrameStats
}

func (a *app) loop() {
	clock := core.NewFrameClock(a.window.Time)
	clock.Start()
	keys := toggles{window: a.window, dev: a.dev, pipeline: a.pipeline, actions: a.state}

	for !a.window.ShouldClose() {
		dt := clock.Tick()
		now := float32(clock.Elapsed)

		a.window.PollEvents()
		in := a.window.Snapshot()
		keys.apply(in, now)
		a.state.Update(in, now, dt)

		if a.watcher != nil {
			if changed := a.watcher.Changed(); len(changed) > 0 {
				a.backend.Reload(changed)
			}
		}

		w, h := a.window.GetFramebufferSize()
		a.pipeline.Screen.Width, a.pipeline.Screen.Height = int32(w), int32(h)
		a.pipeline.Frame(a.dev, a.state, renderer.FrameView{
			Main:        a.state.Camera,
			Chase:       a.state.Chase,
			ShadowLight: a.state.ShadowLight(),
			Time:        now,
		})
		a.window.SwapBuffers()

		if a.stats.Add(float64(dt)) {
			a.window.SetTitle(fmt.Sprintf("%s - %s", a.title, a.stats.String()))
		}
	}
}

type windowControls interface {
	Close()
	VSync() bool
	SetVSync(on bool)
}

type polygonSetter interface {
	PolygonMode(mode renderer.PolygonMode)
}

type sceneActions interface {
	LaunchMissile(now float32) bool
	ToggleCockpit() bool
}

// toggles maps edge-triggered keys to state flips. Held keys are handled
// by scene.State.Update.
type toggles struct {
	window   windowControls
	dev      polygonSetter
	pipeline *renderer.Pipeline
	actions  sceneActions
}

var polygonKeys = []struct {
	keys []core.Key
	mode renderer.PolygonMode
}{
	{[]core.Key{core.Key1, core.KeyKP1}, renderer.PolygonFill},
	{[]core.Key{core.Key2, core.KeyKP2}, renderer.PolygonLine},
	{[]core.Key{core.Key3, core.KeyKP3}, renderer.PolygonPoint},
}

var filterKeys = []struct {
	key    core.Key
	filter renderer.Filter
}{
	{core.KeyF1, renderer.FilterGrayscale},
	{core.KeyF2, renderer.FilterSharpen},
	{core.KeyF3, renderer.FilterBlur},
	{core.KeyF4, renderer.FilterEdge},
}

func (t toggles) apply(in core.InputSnapshot, now float32) {
	if in.Pressed(core.KeyEscape) {
		t.window.Close()
	}
	if in.Pressed(core.KeyP) {
		t.window.SetVSync(!t.window.VSync())
		core.LogInfo("vsync", "on", t.window.VSync())
	}
	for _, pk := range polygonKeys {
		for _, k := range pk.keys {
			if in.Pressed(k) {
				t.dev.PolygonMode(pk.mode)
			}
		}
	}
	if in.Pressed(core.KeyM) {
		t.actions.LaunchMissile(now)
	}
	if in.Pressed(core.KeyC) {
		core.LogInfo("secondary view", "cockpit", t.actions.ToggleCockpit())
	}
	if in.Pressed(core.KeyO) {
		t.pipeline.OutlineEnabled = !t.pipeline.OutlineEnabled
	}
	if in.Pressed(core.KeyV) {
		t.pipeline.PiPEnabled = !t.pipeline.PiPEnabled
	}
	if in.Pressed(core.KeyL) {
		t.pipeline.ShadowsEnabled = !t.pipeline.ShadowsEnabled
	}
	for _, fk := range filterKeys {
		if in.Pressed(fk.key) {
			t.pipeline.ToggleFilter(fk.filter)
			core.LogDebug("filter", "active", t.pipeline.Filter())
		}
	}
}
