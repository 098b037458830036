package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"stargate/core"
	"stargate/renderer"
)

var _ renderer.Device = (*Device)(nil)

// Device forwards the pass orchestration's state changes to OpenGL. It
// holds no state of its own; GL is the state machine.
type Device struct{}

// NewDevice loads the GL entry points and sets the defaults every pass
// assumes. Must be called after the window context is made current.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	core.LogInfo("OpenGL ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Blending is switched on only around the particle draws.
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	return &Device{}, nil
}

func (*Device) BindFramebuffer(fbo uint32) { gl.BindFramebuffer(gl.FRAMEBUFFER, fbo) }

func (*Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (*Device) ClearColor(c core.Color) { gl.ClearColor(c.R, c.G, c.B, c.A) }

func (*Device) Clear(mask renderer.ClearMask) { gl.Clear(glClearMask(mask)) }

func (*Device) SetDepthTest(on bool) { setCap(gl.DEPTH_TEST, on) }

func (*Device) SetDepthMask(write bool) { gl.DepthMask(write) }

func (*Device) DepthFunc(fn renderer.CompareFunc) { gl.DepthFunc(glCompare(fn)) }

func (*Device) SetCullFace(on bool) { setCap(gl.CULL_FACE, on) }

func (*Device) SetStencilTest(on bool) { setCap(gl.STENCIL_TEST, on) }

func (*Device) StencilFunc(fn renderer.CompareFunc, ref int32, mask uint32) {
	gl.StencilFunc(glCompare(fn), ref, mask)
}

func (*Device) StencilOp(sfail, dpfail, dppass renderer.StencilAction) {
	gl.StencilOp(glStencilAction(sfail), glStencilAction(dpfail), glStencilAction(dppass))
}

func (*Device) StencilMask(mask uint32) { gl.StencilMask(mask) }

func (*Device) SetBlend(on bool) { setCap(gl.BLEND, on) }

func (*Device) BlendFunc(src, dst renderer.BlendFactor) {
	gl.BlendFunc(glBlendFactor(src), glBlendFactor(dst))
}

func (*Device) BindTexture(unit uint32, kind renderer.TextureKind, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(glTextureTarget(kind), tex)
}

func (*Device) PolygonMode(mode renderer.PolygonMode) {
	gl.PolygonMode(gl.FRONT_AND_BACK, glPolygonMode(mode))
}

func setCap(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func glClearMask(mask renderer.ClearMask) uint32 {
	var out uint32
	if mask&renderer.ClearColor != 0 {
		out |= gl.COLOR_BUFFER_BIT
	}
	if mask&renderer.ClearDepth != 0 {
		out |= gl.DEPTH_BUFFER_BIT
	}
	if mask&renderer.ClearStencil != 0 {
		out |= gl.STENCIL_BUFFER_BIT
	}
	return out
}

func glCompare(fn renderer.CompareFunc) uint32 {
	switch fn {
	case renderer.CompareNotEqual:
		return gl.NOTEQUAL
	case renderer.CompareEqual:
		return gl.EQUAL
	case renderer.CompareLess:
		return gl.LESS
	case renderer.CompareLessEqual:
		return gl.LEQUAL
	default:
		return gl.ALWAYS
	}
}

func glStencilAction(a renderer.StencilAction) uint32 {
	switch a {
	case renderer.StencilReplace:
		return gl.REPLACE
	default:
		return gl.KEEP
	}
}

func glBlendFactor(f renderer.BlendFactor) uint32 {
	switch f {
	case renderer.BlendOne:
		return gl.ONE
	case renderer.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.SRC_ALPHA
	}
}

func glTextureTarget(kind renderer.TextureKind) uint32 {
	if kind == renderer.TextureCubeMap {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}

func glPolygonMode(mode renderer.PolygonMode) uint32 {
	switch mode {
	case renderer.PolygonLine:
		return gl.LINE
	case renderer.PolygonPoint:
		return gl.POINT
	default:
		return gl.FILL
	}
}
