package core

import (
	"stargate/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite   = Color{1, 1, 1, 1}
	ColorBlack   = Color{0, 0, 0, 1}
	ColorMagenta = Color{1, 0, 1, 1}
)

func (c Color) Vec3() math.Vec3 { return math.Vec3{X: c.R, Y: c.G, Z: c.B} }
func (c Color) Vec4() math.Vec4 { return math.Vec4{X: c.R, Y: c.G, Z: c.B, W: c.A} }

// Vertex is the interleaved layout uploaded by the GL backend.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Shader is a compiled program. Uniform names are passed through verbatim;
// "light[2].diffuse" and "material.shininess" are valid keys.
type Shader interface {
	Use()
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v math.Vec4)
	SetMat4(name string, m math.Mat4)
}

// Model binds its own vertex data and issues the draw calls for every mesh
// it owns. The shader must already be in use.
type Model interface {
	Draw(shader Shader)
}

// InstancedModel draws one copy per transform in a single call.
type InstancedModel interface {
	Model
	DrawInstanced(shader Shader, transforms []math.Mat4)
}
