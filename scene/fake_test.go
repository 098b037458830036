package scene

import (
	"stargate/core"
	"stargate/math"
	"stargate/renderer"
)

type fakeShader struct {
	uses  int
	ints  map[string]int32
	flts  map[string]float32
	vec3s map[string]math.Vec3
	vec4s map[string]math.Vec4
	mats  map[string]math.Mat4
	order []string
}

func newFakeShader() *fakeShader {
	return &fakeShader{
		ints:  map[string]int32{},
		flts:  map[string]float32{},
		vec3s: map[string]math.Vec3{},
		vec4s: map[string]math.Vec4{},
		mats:  map[string]math.Mat4{},
	}
}

func (s *fakeShader) Use() { s.uses++ }

func (s *fakeShader) SetInt(name string, v int32) {
	s.ints[name] = v
	s.order = append(s.order, name)
}

func (s *fakeShader) SetFloat(name string, v float32) {
	s.flts[name] = v
	s.order = append(s.order, name)
}

func (s *fakeShader) SetVec3(name string, v math.Vec3) {
	s.vec3s[name] = v
	s.order = append(s.order, name)
}

func (s *fakeShader) SetVec4(name string, v math.Vec4) {
	s.vec4s[name] = v
	s.order = append(s.order, name)
}

func (s *fakeShader) SetMat4(name string, m math.Mat4) {
	s.mats[name] = m
	s.order = append(s.order, name)
}

type fakeModel struct {
	draws     int
	instances int
	models    []math.Mat4
}

func (m *fakeModel) Draw(shader core.Shader) {
	m.draws++
	if fs, ok := shader.(*fakeShader); ok {
		m.models = append(m.models, fs.mats["model"])
	}
}

func (m *fakeModel) DrawInstanced(_ core.Shader, transforms []math.Mat4) {
	m.draws++
	m.instances += len(transforms)
}

// fakeDevice records the calls the scene makes on the GL state machine.
type fakeDevice struct {
	blends       [][2]renderer.BlendFactor
	blendOn      []bool
	culls        []bool
	depthFuncs   []renderer.CompareFunc
	stencilMasks []uint32
	depthMasks   []bool
	textures     map[uint32]uint32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{textures: map[uint32]uint32{}}
}

func (d *fakeDevice) BindFramebuffer(uint32)                             {}
func (d *fakeDevice) Viewport(x, y, w, h int32)                          {}
func (d *fakeDevice) ClearColor(core.Color)                              {}
func (d *fakeDevice) Clear(renderer.ClearMask)                           {}
func (d *fakeDevice) SetDepthTest(bool)                                  {}
func (d *fakeDevice) SetDepthMask(on bool)                               { d.depthMasks = append(d.depthMasks, on) }
func (d *fakeDevice) SetCullFace(on bool)                                { d.culls = append(d.culls, on) }
func (d *fakeDevice) DepthFunc(f renderer.CompareFunc)                   { d.depthFuncs = append(d.depthFuncs, f) }
func (d *fakeDevice) SetStencilTest(bool)                                {}
func (d *fakeDevice) StencilFunc(renderer.CompareFunc, int32, uint32)    {}
func (d *fakeDevice) StencilOp(a, b, c renderer.StencilAction)           {}
func (d *fakeDevice) StencilMask(m uint32)                               { d.stencilMasks = append(d.stencilMasks, m) }
func (d *fakeDevice) SetBlend(on bool)                                   { d.blendOn = append(d.blendOn, on) }
func (d *fakeDevice) PolygonMode(renderer.PolygonMode)                   {}
func (d *fakeDevice) BindTexture(unit uint32, _ renderer.TextureKind, tex uint32) {
	d.textures[unit] = tex
}

func (d *fakeDevice) BlendFunc(src, dst renderer.BlendFactor) {
	d.blends = append(d.blends, [2]renderer.BlendFactor{src, dst})
}

func testConfig() core.SceneConfig {
	return core.SceneConfig{Particles: 50, Asteroids: 20, MaxStars: 30, Seed: 7}
}
