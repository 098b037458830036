package scene

import "stargate/math"

type Axis int

const (
	AxisYaw Axis = iota
	AxisPitch
	AxisRoll
)

// Orientation is an actor's local frame built up from per-frame Euler
// deltas. Each frame's deltas rotate the current basis, so the result
// depends on the order yaw, pitch, roll.
type Orientation struct {
	Front math.Vec3
	Up    math.Vec3
	Right math.Vec3

	// Accumulated angles in degrees. Informational only; the basis is the
	// source of truth.
	Yaw, Pitch, Roll float32

	DeltaYaw, DeltaPitch, DeltaRoll float32

	// Total maps model space onto the basis: +X to Front, +Y to Up and +Z
	// to Right.
	Total math.Mat4
}

func NewOrientation() Orientation {
	return Orientation{
		Front: math.Vec3UnitX,
		Up:    math.Vec3UnitY,
		Right: math.Vec3UnitZ,
		Total: math.Mat4Identity(),
	}
}

// ApplyRotation sets this frame's delta for axis, replacing any earlier
// call in the same frame, and adds it to the accumulated angle.
func (o *Orientation) ApplyRotation(axis Axis, degrees float32) {
	switch axis {
	case AxisYaw:
		o.DeltaYaw = degrees
		o.Yaw += degrees
	case AxisPitch:
		o.DeltaPitch = degrees
		o.Pitch += degrees
	case AxisRoll:
		o.DeltaRoll = degrees
		o.Roll += degrees
	}
}

func (o *Orientation) ClearMovement() {
	o.DeltaYaw, o.DeltaPitch, o.DeltaRoll = 0, 0, 0
}

func (o *Orientation) rotate(axis math.Vec3, degrees float32) {
	if degrees == 0 {
		return
	}
	r := math.Mat4RotationAxis(axis, math.Radians(degrees))
	o.Front = r.TransformDir(o.Front)
	o.Up = r.TransformDir(o.Up)
	o.Right = r.TransformDir(o.Right)
	o.Total = o.Total.Mul(r)
}

// Integrate applies the pending deltas: yaw about the current Up, then
// pitch about the current Right, then roll about the current Front.
func (o *Orientation) Integrate() {
	o.rotate(o.Up, o.DeltaYaw)
	o.rotate(o.Right, o.DeltaPitch)
	o.rotate(o.Front, o.DeltaRoll)

	o.Front = o.Front.Normalize()
	o.Right = o.Front.Cross(o.Up).Normalize()
	o.Up = o.Right.Cross(o.Front).Normalize()

	// Snap Total to the re-orthonormalised basis so rounding never builds up.
	o.Total[0] = [4]float32{o.Front.X, o.Front.Y, o.Front.Z, 0}
	o.Total[1] = [4]float32{o.Up.X, o.Up.Y, o.Up.Z, 0}
	o.Total[2] = [4]float32{o.Right.X, o.Right.Y, o.Right.Z, 0}
}
