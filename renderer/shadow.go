package renderer

import (
	"github.com/chewxy/math32"

	"stargate/core"
	"stargate/math"
)

// Cube faces in GL order: +X, -X, +Y, -Y, +Z, -Z.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

type cubeFace struct {
	dir, up math.Vec3
}

// The ±Y faces look along the up axis, so they need a Z up vector.
var cubeFaces = [6]cubeFace{
	{math.Vec3{X: 1}, math.Vec3{Y: -1}},
	{math.Vec3{X: -1}, math.Vec3{Y: -1}},
	{math.Vec3{Y: 1}, math.Vec3{Z: 1}},
	{math.Vec3{Y: -1}, math.Vec3{Z: -1}},
	{math.Vec3{Z: 1}, math.Vec3{Y: -1}},
	{math.Vec3{Z: -1}, math.Vec3{Y: -1}},
}

// BuildCubeMapTransforms returns the view-projection matrix of each cube
// face as seen from lightPos, using a 90 degree square frustum.
func BuildCubeMapTransforms(lightPos math.Vec3, near, far float32) [6]math.Mat4 {
	proj := math.Mat4Perspective(math.Radians(90), 1, near, far)
	var out [6]math.Mat4
	for i, f := range cubeFaces {
		view := math.Mat4LookAt(lightPos, lightPos.Add(f.dir), f.up)
		out[i] = view.Mul(proj)
	}
	return out
}

// CubeFaceForDirection picks the face a cube map lookup along dir samples:
// the axis with the largest magnitude wins.
func CubeFaceForDirection(dir math.Vec3) int {
	ax, ay, az := math32.Abs(dir.X), math32.Abs(dir.Y), math32.Abs(dir.Z)
	switch {
	case ax >= ay && ax >= az:
		if dir.X >= 0 {
			return FacePosX
		}
		return FaceNegX
	case ay >= az:
		if dir.Y >= 0 {
			return FacePosY
		}
		return FaceNegY
	default:
		if dir.Z >= 0 {
			return FacePosZ
		}
		return FaceNegZ
	}
}

// ShadowPass renders omnidirectional depth for one point light into a cube
// map. The geometry stage of its program fans each draw out to the six
// layers, so casters are drawn once.
type ShadowPass struct {
	Target Framebuffer
	Shader core.Shader
	Near   float32
	Far    float32
}

// Render fills all six faces. The window framebuffer and viewport are
// restored to screen afterwards.
func (sp *ShadowPass) Render(dev Device, lightPos math.Vec3, scene SceneDrawer, screen Framebuffer) {
	sp.Target.Bind(dev)
	dev.SetDepthTest(true)
	dev.SetDepthMask(true)
	dev.Clear(ClearDepth)

	sp.Shader.Use()
	for i, m := range BuildCubeMapTransforms(lightPos, sp.Near, sp.Far) {
		sp.Shader.SetMat4(shadowMatrixNames[i], m)
	}
	sp.Shader.SetVec3("lightPos", lightPos)
	sp.Shader.SetFloat("far_plane", sp.Far)
	scene.DrawCasters(sp.Shader)

	screen.Bind(dev)
}

// Clear wipes the cube map without drawing, so a later re-enable never
// samples depth from an older frame.
func (sp *ShadowPass) Clear(dev Device, screen Framebuffer) {
	sp.Target.Bind(dev)
	dev.SetDepthMask(true)
	dev.Clear(ClearDepth)
	screen.Bind(dev)
}

var shadowMatrixNames = [6]string{
	"shadowMatrices[0]",
	"shadowMatrices[1]",
	"shadowMatrices[2]",
	"shadowMatrices[3]",
	"shadowMatrices[4]",
	"shadowMatrices[5]",
}
