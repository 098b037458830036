package renderer

import (
	"stargate/core"
	"stargate/math"
)

// OutlineScale enlarges the vehicle for the silhouette pass.
const OutlineScale float32 = 1.2

// CompositeStage draws the offscreen color target onto a corner quad.
type CompositeStage struct {
	Shader core.Shader
	Quad   core.Model
}

// FrameView is the per-frame input of Pipeline.Frame.
type FrameView struct {
	Main        Camera
	Chase       Camera
	ShadowLight math.Vec3
	Time        float32
}

// Pipeline sequences the render passes of a frame:
// shadow, offscreen, onscreen, outline and composite. Each feature flag
// only has effect when the backend resources behind it exist.
type Pipeline struct {
	Screen     Framebuffer
	Offscreen  Framebuffer
	Shadow     *ShadowPass
	Outline    core.Shader
	Composite  CompositeStage
	ClearColor core.Color
	Near       float32
	Far        float32

	ShadowsEnabled bool
	PiPEnabled     bool
	OutlineEnabled bool

	filter Filter
}

func (p *Pipeline) shadowsActive() bool {
	return p.ShadowsEnabled && p.Shadow != nil
}

func (p *Pipeline) pipActive() bool {
	return p.PiPEnabled && p.Offscreen.FBO != 0 && p.Composite.Quad != nil && p.Composite.Shader != nil
}

func (p *Pipeline) outlineActive() bool {
	return p.OutlineEnabled && p.Outline != nil
}

func (p *Pipeline) Filter() Filter { return p.filter }

func (p *Pipeline) SetFilter(f Filter) { p.filter = f }

// ToggleFilter switches f on, clearing any other filter, or back off when
// it is already the active one.
func (p *Pipeline) ToggleFilter(f Filter) {
	if p.filter == f {
		p.filter = FilterNone
		return
	}
	p.filter = f
}

func (p *Pipeline) context(pass Pass, cam Camera, aspect float32, fv FrameView) RenderContext {
	ctx := RenderContext{
		Pass:       pass,
		View:       cam.ViewMatrix(),
		Projection: cam.Projection(aspect, p.Near, p.Far),
		ViewPos:    cam.Pos(),
		LightPos:   fv.ShadowLight,
		ShadowsOn:  p.shadowsActive(),
		Time:       fv.Time,
	}
	if p.Shadow != nil {
		ctx.LightCubeMap = p.Shadow.Target.DepthTex
		ctx.FarPlane = p.Shadow.Far
	}
	return ctx
}

// resetStencil returns stencil state to "test off, write everything,
// always pass" so one pass's marks cannot leak into the next.
func resetStencil(dev Device) {
	dev.SetStencilTest(false)
	dev.StencilMask(0xFF)
	dev.StencilFunc(CompareAlways, 0, 0xFF)
	dev.StencilOp(StencilKeep, StencilKeep, StencilKeep)
}

// Frame renders one frame and returns the passes it ran, in order.
func (p *Pipeline) Frame(dev Device, scene SceneDrawer, fv FrameView) []Pass {
	passes := make([]Pass, 0, 5)

	// 1. shadow
	if p.shadowsActive() {
		p.Shadow.Render(dev, fv.ShadowLight, scene, p.Screen)
		passes = append(passes, PassShadow)
	} else if p.Shadow != nil {
		p.Shadow.Clear(dev, p.Screen)
	}

	// 2. offscreen chase view
	if p.pipActive() {
		p.Offscreen.Bind(dev)
		dev.ClearColor(p.ClearColor)
		resetStencil(dev)
		dev.SetDepthMask(true)
		dev.Clear(ClearColor | ClearDepth | ClearStencil)
		dev.SetDepthTest(true)

		scene.AttachChaseCamera()
		scene.DrawScene(dev, p.context(PassOffscreen, fv.Chase, p.Offscreen.Aspect(), fv))
		resetStencil(dev)
		passes = append(passes, PassOffscreen)
	}

	// 3. onscreen main view; the vehicle marks the stencil buffer
	p.Screen.Bind(dev)
	dev.ClearColor(p.ClearColor)
	resetStencil(dev)
	dev.SetDepthMask(true)
	dev.Clear(ClearColor | ClearDepth | ClearStencil)
	dev.SetDepthTest(true)
	dev.SetStencilTest(true)
	dev.StencilFunc(CompareAlways, StencilMarker, 0xFF)
	dev.StencilOp(StencilKeep, StencilKeep, StencilReplace)
	dev.StencilMask(0x00)
	mainCtx := p.context(PassOnscreen, fv.Main, p.Screen.Aspect(), fv)
	scene.DrawScene(dev, mainCtx)
	passes = append(passes, PassOnscreen)

	// 4. outline: only the fringe outside the marked pixels survives
	if p.outlineActive() {
		dev.StencilFunc(CompareNotEqual, StencilMarker, 0xFF)
		dev.StencilMask(0x00)
		dev.SetDepthTest(false)

		outlineCtx := mainCtx
		outlineCtx.Pass = PassOutline
		p.Outline.Use()
		p.Outline.SetMat4("view", outlineCtx.View)
		p.Outline.SetMat4("projection", outlineCtx.Projection)
		scene.DrawOutline(outlineCtx, p.Outline, OutlineScale)

		dev.StencilMask(0xFF)
		dev.StencilFunc(CompareAlways, 0, 0xFF)
		dev.SetDepthTest(true)
		passes = append(passes, PassOutline)
	}
	resetStencil(dev)

	// 5. picture-in-picture composite
	if p.pipActive() {
		dev.SetDepthTest(false)
		sh := p.Composite.Shader
		sh.Use()
		sh.SetInt("screenTexture", int32(UnitDiffuse))
		sh.SetInt("filterMode", int32(p.filter))
		dev.BindTexture(UnitDiffuse, Texture2D, p.Offscreen.ColorTex)
		p.Composite.Quad.Draw(sh)
		dev.SetDepthTest(true)
		passes = append(passes, PassComposite)
	}

	return passes
}
