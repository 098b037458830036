package scene

import "stargate/math"

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo is positive on the inside.
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes: left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromViewProjection extracts normalized planes from view.Mul(proj).
// With row vectors clip = p * vp, so each clip coordinate is a column of vp.
func FrustumFromViewProjection(vp math.Mat4) Frustum {
	col := func(c int) math.Vec4 {
		return math.Vec4{X: vp[0][c], Y: vp[1][c], Z: vp[2][c], W: vp[3][c]}
	}
	cx, cy, cz, cw := col(0), col(1), col(2), col(3)

	var f Frustum
	f.Planes[0] = planeFrom(cw.Add(cx))
	f.Planes[1] = planeFrom(cw.Sub(cx))
	f.Planes[2] = planeFrom(cw.Add(cy))
	f.Planes[3] = planeFrom(cw.Sub(cy))
	f.Planes[4] = planeFrom(cw.Add(cz))
	f.Planes[5] = planeFrom(cw.Sub(cz))
	return f
}

func planeFrom(v math.Vec4) Plane {
	n := math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v.W / l}
}

// IntersectsSphere is false only when the sphere lies wholly outside one
// plane.
func (f *Frustum) IntersectsSphere(center math.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.DistanceTo(center) < -radius {
			return false
		}
	}
	return true
}

// boundingRadius is the largest axis scale of m, the radius of a unit
// sphere transformed by it.
func boundingRadius(m math.Mat4) float32 {
	var r float32
	for i := 0; i < 3; i++ {
		r = max(r, math.Vec3{X: m[i][0], Y: m[i][1], Z: m[i][2]}.Length())
	}
	return r
}

// CullInstances appends to dst the transforms whose unit-sphere bounds
// touch f.
func CullInstances(dst []math.Mat4, f *Frustum, transforms []math.Mat4) []math.Mat4 {
	for _, t := range transforms {
		if f.IntersectsSphere(t.Translation(), boundingRadius(t)) {
			dst = append(dst, t)
		}
	}
	return dst
}
