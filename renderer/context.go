package renderer

import (
	"stargate/core"
	"stargate/math"
)

type Pass int

const (
	PassShadow Pass = iota
	PassOffscreen
	PassOnscreen
	PassOutline
	PassComposite
)

func (p Pass) String() string {
	switch p {
	case PassShadow:
		return "shadow"
	case PassOffscreen:
		return "offscreen"
	case PassOnscreen:
		return "onscreen"
	case PassOutline:
		return "outline"
	case PassComposite:
		return "composite"
	}
	return "unknown"
}

// Texture units shared by the lit programs.
const (
	UnitDiffuse    uint32 = 0
	UnitShadowCube uint32 = 13
	UnitReflection uint32 = 14
	UnitSkybox     uint32 = 15
)

// StencilMarker is the value the vehicle writes into the stencil buffer on
// the onscreen pass.
const StencilMarker = 1

// RenderContext carries everything a draw routine needs for one pass. It is
// passed by value so no pass can leak matrices into the next.
type RenderContext struct {
	Pass         Pass
	View         math.Mat4
	Projection   math.Mat4
	ViewPos      math.Vec3
	LightCubeMap uint32
	LightPos     math.Vec3
	FarPlane     float32
	ShadowsOn    bool
	Time         float32
}

// SetCommon writes the per-pass uniforms every lit program reads and binds
// the shadow cube map.
func (ctx RenderContext) SetCommon(dev Device, shader core.Shader) {
	shader.SetMat4("view", ctx.View)
	shader.SetMat4("projection", ctx.Projection)
	shader.SetVec3("viewPos", ctx.ViewPos)
	shader.SetVec3("lightPos", ctx.LightPos)
	shader.SetFloat("far_plane", ctx.FarPlane)
	var on int32
	if ctx.ShadowsOn {
		on = 1
	}
	shader.SetInt("shadows", on)
	shader.SetInt("depthMap", int32(UnitShadowCube))
	dev.BindTexture(UnitShadowCube, TextureCubeMap, ctx.LightCubeMap)
}

// Camera is anything that can produce a view and projection.
type Camera interface {
	ViewMatrix() math.Mat4
	Projection(aspect, near, far float32) math.Mat4
	Pos() math.Vec3
}

// SceneDrawer issues the draw calls for one frame's content.
type SceneDrawer interface {
	// DrawCasters draws every shadow caster with only its model matrix set.
	DrawCasters(shader core.Shader)
	// AttachChaseCamera re-seats the secondary camera on the vehicle.
	AttachChaseCamera()
	// DrawScene draws the full lit scene for an offscreen or onscreen pass.
	DrawScene(dev Device, ctx RenderContext)
	// DrawOutline draws the vehicle enlarged by scale with shader bound.
	DrawOutline(ctx RenderContext, shader core.Shader, scale float32)
}

// MarkStencil runs draw with stencil writes enabled when ctx is the
// onscreen pass. Everything else is drawn with writes masked off.
func MarkStencil(dev Device, ctx RenderContext, draw func()) {
	if ctx.Pass != PassOnscreen {
		draw()
		return
	}
	dev.StencilMask(0xFF)
	draw()
	dev.StencilMask(0x00)
}
