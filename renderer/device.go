package renderer

import "stargate/core"

type ClearMask uint32

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

type CompareFunc int

const (
	CompareAlways CompareFunc = iota
	CompareNotEqual
	CompareEqual
	CompareLess
	CompareLessEqual
)

type StencilAction int

const (
	StencilKeep StencilAction = iota
	StencilReplace
)

type BlendFactor int

const (
	BlendSrcAlpha BlendFactor = iota
	BlendOne
	BlendOneMinusSrcAlpha
)

type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCubeMap
)

// Device is the GL state machine as seen by the pass orchestration. The
// OpenGL backend implements it directly; tests record the calls.
type Device interface {
	BindFramebuffer(fbo uint32)
	Viewport(x, y, width, height int32)
	ClearColor(c core.Color)
	Clear(mask ClearMask)

	SetDepthTest(on bool)
	SetDepthMask(write bool)
	DepthFunc(fn CompareFunc)
	SetCullFace(on bool)

	SetStencilTest(on bool)
	StencilFunc(fn CompareFunc, ref int32, mask uint32)
	StencilOp(sfail, dpfail, dppass StencilAction)
	StencilMask(mask uint32)

	SetBlend(on bool)
	BlendFunc(src, dst BlendFactor)

	BindTexture(unit uint32, kind TextureKind, tex uint32)
	PolygonMode(mode PolygonMode)
}

// BlendSetter is the slice of Device the particle pool needs.
type BlendSetter interface {
	SetBlend(on bool)
	BlendFunc(src, dst BlendFactor)
}

// Framebuffer describes a render target created by the backend. FBO 0 is
// the window.
type Framebuffer struct {
	FBO      uint32
	Width    int32
	Height   int32
	ColorTex uint32 // sampled by the composite pass
	DepthTex uint32 // cube map for the shadow target
}

func (f Framebuffer) Aspect() float32 {
	if f.Height == 0 {
		return 1
	}
	return float32(f.Width) / float32(f.Height)
}

// Bind makes f current and sets a matching viewport.
func (f Framebuffer) Bind(dev Device) {
	dev.BindFramebuffer(f.FBO)
	dev.Viewport(0, 0, f.Width, f.Height)
}
