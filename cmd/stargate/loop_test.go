package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stargate/assets"
	"stargate/core"
	"stargate/renderer"
)

type fakeWindow struct {
	closed bool
	vsync  bool
}

func (w *fakeWindow) Close()           { w.closed = true }
func (w *fakeWindow) VSync() bool      { return w.vsync }
func (w *fakeWindow) SetVSync(on bool) { w.vsync = on }

type fakePolygons struct{ modes []renderer.PolygonMode }

func (p *fakePolygons) PolygonMode(m renderer.PolygonMode) { p.modes = append(p.modes, m) }

type fakeLauncher struct {
	launches []float32
	cockpit  bool
}

func (l *fakeLauncher) LaunchMissile(now float32) bool {
	l.launches = append(l.launches, now)
	return true
}

func (l *fakeLauncher) ToggleCockpit() bool {
	l.cockpit = !l.cockpit
	return l.cockpit
}

func newToggles() (toggles, *fakeWindow, *fakePolygons, *fakeLauncher) {
	w := &fakeWindow{vsync: true}
	p := &fakePolygons{}
	l := &fakeLauncher{}
	pipe := &renderer.Pipeline{ShadowsEnabled: true, PiPEnabled: true, OutlineEnabled: true}
	return toggles{window: w, dev: p, pipeline: pipe, actions: l}, w, p, l
}

func TestTogglesFlipFeatures(t *testing.T) {
	tg, w, _, l := newToggles()
	tg.apply(core.NewInputSnapshot(core.KeyP, core.KeyO, core.KeyV, core.KeyL, core.KeyM), 3)

	assert.False(t, w.vsync)
	assert.False(t, tg.pipeline.OutlineEnabled)
	assert.False(t, tg.pipeline.PiPEnabled)
	assert.False(t, tg.pipeline.ShadowsEnabled)
	assert.Equal(t, []float32{3}, l.launches)
	assert.False(t, w.closed)
}

func TestTogglesAreEdgeTriggered(t *testing.T) {
	tg, _, _, l := newToggles()
	first := core.NewInputSnapshot(core.KeyO, core.KeyM)
	tg.apply(first, 1)
	tg.apply(core.NewInputSnapshot(core.KeyO, core.KeyM).After(first), 2)

	assert.False(t, tg.pipeline.OutlineEnabled, "held key must not toggle back")
	assert.Len(t, l.launches, 1)
}

func TestPolygonModeKeys(t *testing.T) {
	tg, _, p, _ := newToggles()
	tg.apply(core.NewInputSnapshot(core.Key2), 0)
	tg.apply(core.NewInputSnapshot(core.KeyKP3), 0)
	tg.apply(core.NewInputSnapshot(core.Key1), 0)
	assert.Equal(t, []renderer.PolygonMode{renderer.PolygonLine, renderer.PolygonPoint, renderer.PolygonFill}, p.modes)
}

func TestFilterKeysAreExclusive(t *testing.T) {
	tg, _, _, _ := newToggles()
	tg.apply(core.NewInputSnapshot(core.KeyF1), 0)
	assert.Equal(t, renderer.FilterGrayscale, tg.pipeline.Filter())

	tg.apply(core.NewInputSnapshot(core.KeyF3), 0)
	assert.Equal(t, renderer.FilterBlur, tg.pipeline.Filter())

	tg.apply(core.NewInputSnapshot(core.KeyF3), 0)
	assert.Equal(t, renderer.FilterNone, tg.pipeline.Filter())
}

func TestEscapeCloses(t *testing.T) {
	tg, w, _, _ := newToggles()
	tg.apply(core.NewInputSnapshot(core.KeyEscape), 0)
	assert.True(t, w.closed)
}

func TestProgramFilesExistInEmbeddedSet(t *testing.T) {
	src := assets.ShaderSource{}
	for name, files := range programFiles {
		_, err := src.Load(files)
		assert.NoError(t, err, name)
	}
}

func TestTogglesSwitchCockpitView(t *testing.T) {
	tg, _, _, l := newToggles()
	tg.apply(core.NewInputSnapshot(core.KeyC), 0)
	assert.True(t, l.cockpit)
	tg.apply(core.NewInputSnapshot(core.KeyC), 0)
	assert.False(t, l.cockpit)
}
