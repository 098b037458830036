package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stargate/math"
)

func TestJumperTranslatesAlongBasis(t *testing.T) {
	j := NewJumper(math.Vec3{})
	j.ProcessKeyboard(JumperForward, 1)
	assertVec(t, math.Vec3{X: 12}, j.Position, "forward along front")

	j.ApplyRotation(AxisYaw, 90)
	j.Integrate()
	j.ClearMovement()
	j.ProcessKeyboard(JumperForward, 0.5)
	assertVec(t, math.Vec3{X: 12, Z: -6}, j.Position, "forward after turning")

	j.ProcessKeyboard(JumperUp, 0.25)
	assertVec(t, math.Vec3{X: 12, Y: 3, Z: -6}, j.Position, "up")
}

func TestJumperRotationKeysQueueDeltas(t *testing.T) {
	j := NewJumper(math.Vec3{})
	j.ProcessKeyboard(JumperYawLeft, 0.5)
	j.ProcessKeyboard(JumperPitchDown, 0.25)
	j.ProcessKeyboard(JumperRollRight, 1)
	assert.Equal(t, float32(6), j.DeltaYaw)
	assert.Equal(t, float32(-3), j.DeltaPitch)
	assert.Equal(t, float32(12), j.DeltaRoll)
}

func TestJumperAttach(t *testing.T) {
	j := NewJumper(math.Vec3{X: 1, Y: 2, Z: 3})
	assertVec(t, math.Vec3{X: 6.5, Y: 0.73, Z: 3}, j.Attach(flashlightOffset), "flashlight")

	j.ApplyRotation(AxisYaw, 90)
	j.Integrate()
	// Front is now -Z and Right is +X.
	assertVec(t, math.Vec3{X: 2, Y: 2, Z: 3 - 4}, j.Attach(math.Vec3{X: 1, Z: 4}), "rotated")
}

func TestJumperModelMatrix(t *testing.T) {
	j := NewJumper(math.Vec3{X: 4, Y: -1, Z: 2})
	j.ApplyRotation(AxisRoll, 33)
	j.Integrate()

	m := j.ModelMatrix()
	assert.Equal(t, j.Position, m.Translation())
	assertVec(t, j.Attach(math.Vec3{X: 1, Y: 2, Z: 3}), m.TransformPoint(math.Vec3{X: 3, Y: 2, Z: 1}), "model space x,y,z = front,up,right")

	s := j.ScaledModelMatrix(1.2)
	assertVec(t, j.Position.Add(j.Front.Mul(1.2)), s.TransformPoint(math.Vec3UnitX), "scaled about own origin")
}

func TestMissileFliesStraightAndTimesOut(t *testing.T) {
	j := NewJumper(math.Vec3{})
	m := NewMissile()

	assert.True(t, m.Launch(j, 10))
	assert.False(t, m.Launch(j, 10.5), "one in flight at a time")
	base := m.Base
	assertVec(t, math.Vec3{X: 3, Y: -1.5}, base, "spawn offset")

	// Jumper motion after launch must not steer the missile.
	j.ApplyRotation(AxisYaw, 45)
	j.Integrate()
	j.Position = math.Vec3{Y: 100}

	assert.False(t, m.Update(12))
	assertVec(t, base.Add(math.Vec3{X: 60}), m.Position, "2s at speed 30")
	assert.True(t, m.Launched)

	assert.True(t, m.Update(15.5), "times out after 5s")
	assert.False(t, m.Launched)
	assert.True(t, m.Exploding(15.6))
	assert.InDelta(t, 0.5, m.ExplosionProgress(16.25), 1e-4)
	assert.False(t, m.Exploding(17.1))
	assert.False(t, m.Update(16), "no flight, no transition")

	assert.True(t, m.Launch(j, 20), "can relaunch once the first is gone")
}
