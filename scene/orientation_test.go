package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stargate/math"
)

func assertVec(t *testing.T, want, got math.Vec3, msg string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, msg)
	assert.InDelta(t, want.Y, got.Y, 1e-4, msg)
	assert.InDelta(t, want.Z, got.Z, 1e-4, msg)
}

func assertOrthonormal(t *testing.T, o Orientation) {
	t.Helper()
	assert.InDelta(t, 1, o.Front.Length(), 1e-4)
	assert.InDelta(t, 1, o.Up.Length(), 1e-4)
	assert.InDelta(t, 1, o.Right.Length(), 1e-4)
	assert.InDelta(t, 0, o.Front.Dot(o.Up), 1e-4)
	assert.InDelta(t, 0, o.Front.Dot(o.Right), 1e-4)
	assert.InDelta(t, 0, o.Up.Dot(o.Right), 1e-4)
	assertVec(t, o.Front.Cross(o.Up), o.Right, "right = front x up")
}

func TestNewOrientationBasis(t *testing.T) {
	o := NewOrientation()
	assert.Equal(t, math.Vec3UnitX, o.Front)
	assert.Equal(t, math.Vec3UnitY, o.Up)
	assert.Equal(t, o.Front.Cross(o.Up), o.Right)
	assert.Equal(t, math.Mat4Identity(), o.Total)
}

func TestYaw90TurnsFrontTowardsNegativeZ(t *testing.T) {
	o := NewOrientation()
	o.ApplyRotation(AxisYaw, 90)
	o.Integrate()

	assertVec(t, math.Vec3{Z: -1}, o.Front, "front")
	assertVec(t, math.Vec3UnitY, o.Up, "up")
	assertVec(t, math.Vec3UnitX, o.Right, "right")
	assert.Equal(t, float32(90), o.Yaw)
}

func TestTotalMapsModelAxesOntoBasis(t *testing.T) {
	o := NewOrientation()
	o.ApplyRotation(AxisYaw, 30)
	o.ApplyRotation(AxisPitch, -45)
	o.ApplyRotation(AxisRoll, 10)
	o.Integrate()

	assertVec(t, o.Front, o.Total.TransformDir(math.Vec3UnitX), "x -> front")
	assertVec(t, o.Up, o.Total.TransformDir(math.Vec3UnitY), "y -> up")
	assertVec(t, o.Right, o.Total.TransformDir(math.Vec3UnitZ), "z -> right")
}

func TestPitchRotatesAboutRight(t *testing.T) {
	o := NewOrientation()
	o.ApplyRotation(AxisPitch, 90)
	o.Integrate()

	// Right stays put; front swings up.
	assertVec(t, math.Vec3UnitZ, o.Right, "right")
	assertVec(t, math.Vec3UnitY, o.Front, "front")
	assertVec(t, math.Vec3{X: -1}, o.Up, "up")
}

func TestCompositionIsOrderDependent(t *testing.T) {
	a := NewOrientation()
	a.ApplyRotation(AxisYaw, 90)
	a.ApplyRotation(AxisPitch, 90)
	a.Integrate()

	b := NewOrientation()
	b.ApplyRotation(AxisPitch, 90)
	b.Integrate()
	b.ClearMovement()
	b.ApplyRotation(AxisYaw, 90)
	b.Integrate()

	assert.False(t, a.Front.ApproxEqual(b.Front, 1e-3), "yaw then pitch differs from pitch then yaw")
}

func TestBasisStaysOrthonormalOverManyFrames(t *testing.T) {
	o := NewOrientation()
	for i := 0; i < 10000; i++ {
		o.ClearMovement()
		o.ApplyRotation(AxisYaw, 0.37)
		o.ApplyRotation(AxisPitch, -0.21)
		o.ApplyRotation(AxisRoll, 0.53)
		o.Integrate()
	}
	assertOrthonormal(t, o)
}

func TestClearMovementStopsRotation(t *testing.T) {
	o := NewOrientation()
	o.ApplyRotation(AxisRoll, 15)
	o.Integrate()
	before := o.Front

	o.ClearMovement()
	o.Integrate()
	assertVec(t, before, o.Front, "no delta, no change")
	assert.Zero(t, o.DeltaRoll)
	assert.Equal(t, float32(15), o.Roll)
}

func TestApplyRotationLastCallWins(t *testing.T) {
	o := NewOrientation()
	o.ApplyRotation(AxisPitch, 5)
	o.ApplyRotation(AxisPitch, 5)
	assert.Equal(t, float32(5), o.DeltaPitch)

	o.ApplyRotation(AxisYaw, 4)
	o.ApplyRotation(AxisYaw, -4)
	assert.Equal(t, float32(-4), o.DeltaYaw)
	assert.Zero(t, o.Yaw)

	o.Integrate()
	assertOrthonormal(t, o)
}
