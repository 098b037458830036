package renderer

import (
	"fmt"

	"stargate/core"
	"stargate/math"
)

// recordingDevice logs every state change as a short string.
type recordingDevice struct {
	calls []string
}

func (d *recordingDevice) log(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *recordingDevice) BindFramebuffer(fbo uint32) { d.log("fbo %d", fbo) }
func (d *recordingDevice) Viewport(x, y, w, h int32) { d.log("viewport %d %d %d %d", x, y, w, h) }
func (d *recordingDevice) ClearColor(c core.Color) { d.log("clearcolor") }
func (d *recordingDevice) Clear(mask ClearMask) { d.log("clear %d", mask) }
func (d *recordingDevice) SetDepthTest(on bool) { d.log("depth %v", on) }
func (d *recordingDevice) SetDepthMask(on bool) { d.log("depthmask %v", on) }
func (d *recordingDevice) DepthFunc(f CompareFunc) { d.log("depthfunc %d", f) }
func (d *recordingDevice) SetCullFace(on bool) { d.log("cull %v", on) }
func (d *recordingDevice) SetStencilTest(on bool) { d.log("stencil %v", on) }
func (d *recordingDevice) StencilOp(a, b, c StencilAction) { d.log("stencilop %d %d %d", a, b, c) }
func (d *recordingDevice) StencilMask(m uint32) { d.log("stencilmask %#x", m) }
func (d *recordingDevice) SetBlend(on bool) { d.log("blend %v", on) }
func (d *recordingDevice) BlendFunc(src, dst BlendFactor) { d.log("blendfunc %d %d", src, dst) }
func (d *recordingDevice) PolygonMode(m PolygonMode) { d.log("polygon %d", m) }
func (d *recordingDevice) StencilFunc(f CompareFunc, ref int32, mask uint32) {
	d.log("stencilfunc %d %d %#x", f, ref, mask)
}
func (d *recordingDevice) BindTexture(unit uint32, kind TextureKind, tex uint32) {
	d.log("texture %d %d %d", unit, kind, tex)
}

func (d *recordingDevice) index(call string) int {
	for i, c := range d.calls {
		if c == call {
			return i
		}
	}
	return -1
}

func (d *recordingDevice) lastIndex(call string) int {
	for i := len(d.calls) - 1; i >= 0; i-- {
		if d.calls[i] == call {
			return i
		}
	}
	return -1
}

type recordingShader struct {
	uses  int
	ints  map[string]int32
	mats  map[string]math.Mat4
	vec3s map[string]math.Vec3
	flts  map[string]float32
}

func newRecordingShader() *recordingShader {
	return &recordingShader{
		ints:  map[string]int32{},
		mats:  map[string]math.Mat4{},
		vec3s: map[string]math.Vec3{},
		flts:  map[string]float32{},
	}
}

func (s *recordingShader) Use() { s.uses++ }
func (s *recordingShader) SetInt(name string, v int32) { s.ints[name] = v }
func (s *recordingShader) SetFloat(name string, v float32) { s.flts[name] = v }
func (s *recordingShader) SetVec3(name string, v math.Vec3) { s.vec3s[name] = v }
func (s *recordingShader) SetVec4(name string, v math.Vec4) {}
func (s *recordingShader) SetMat4(name string, m math.Mat4) { s.mats[name] = m }

type countingModel struct{ draws int }

func (m *countingModel) Draw(core.Shader) { m.draws++ }

type fixedCamera struct {
	pos math.Vec3
}

func (c fixedCamera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.pos, math.Vec3Zero, math.Vec3UnitY)
}

func (c fixedCamera) Projection(aspect, near, far float32) math.Mat4 {
	return math.Mat4Perspective(math.Radians(45), aspect, near, far)
}

func (c fixedCamera) Pos() math.Vec3 { return c.pos }

// recordingScene writes a marker into the device log for each callback so
// tests can check pass order against state changes.
type recordingScene struct {
	dev      *recordingDevice
	contexts []RenderContext
	casters  int
	attached int
	scales   []float32
}

func (s *recordingScene) DrawCasters(core.Shader) {
	s.casters++
	s.dev.log("scene casters")
}

func (s *recordingScene) AttachChaseCamera() {
	s.attached++
	s.dev.log("scene attach")
}

func (s *recordingScene) DrawScene(dev Device, ctx RenderContext) {
	s.contexts = append(s.contexts, ctx)
	s.dev.log("scene draw %s", ctx.Pass)
	MarkStencil(dev, ctx, func() { s.dev.log("scene vehicle") })
}

func (s *recordingScene) DrawOutline(ctx RenderContext, _ core.Shader, scale float32) {
	s.scales = append(s.scales, scale)
	s.dev.log("scene outline")
}
