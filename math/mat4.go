package math

import "github.com/chewxy/math32"

// Mat4 uses the row-vector convention: a point p transforms as p * M and
// A.Mul(B) applies A first. The translation lives in m[3][0..2]. Stored
// row-major this is exactly the column-major layout GL expects, so matrices
// upload with transpose=false.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

// TransformPoint applies m to p with w=1 and divides by the resulting w.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return p.ToVec4(1).MulMat(m).PerspectiveDivide()
}

// TransformDir applies the upper 3x3 of m to d, ignoring translation.
func (m Mat4) TransformDir(d Vec3) Vec3 {
	return d.ToVec4(0).MulMat(m).Vec3()
}

// Translation returns the translation row.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[3][0], Y: m[3][1], Z: m[3][2]}
}

// WithTranslation returns a copy of m whose translation row is set to t.
func (m Mat4) WithTranslation(t Vec3) Mat4 {
	m[3][0], m[3][1], m[3][2], m[3][3] = t.X, t.Y, t.Z, 1
	return m
}

// Mat3 keeps only the rotation/scale block. Used to pin the skybox to the
// camera.
func (m Mat4) Mat3() Mat4 {
	m[0][3], m[1][3], m[2][3] = 0, 0, 0
	m[3] = [4]float32{0, 0, 0, 1}
	return m
}

func Mat4Translation(translation Vec3) Mat4 {
	return Mat4Identity().WithTranslation(translation)
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4UniformScale(s float32) Mat4 {
	return Mat4Scale(Vec3{s, s, s})
}

// Mat4RotationAxis is a right-handed rotation of angle radians about axis.
func Mat4RotationAxis(axis Vec3, angle float32) Mat4 {
	axis = axis.Normalize()
	s, c := math32.Sincos(angle)
	t := 1 - c

	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		{t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0},
		{t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0},
		{t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
}

// Mat4Perspective builds a GL clip-space projection. fovY is in radians.
func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalfFovy := math32.Tan(fovY / 2)

	var m Mat4
	m[0][0] = 1 / (aspect * tanHalfFovy)
	m[1][1] = 1 / tanHalfFovy
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

// Mat4LookAt builds a right-handed view matrix.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

// Flat returns the 16 floats in upload order.
func (m *Mat4) Flat() *float32 {
	return &m[0][0]
}
