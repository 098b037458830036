package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"stargate/math"
)

func TestNewFreeCameraDefaults(t *testing.T) {
	c := NewFreeCamera(math.Vec3{})
	assertVec(t, math.Vec3{Z: -1}, c.Front, "front")
	assertVec(t, math.Vec3UnitY, c.Up, "up")
	assertVec(t, math.Vec3UnitX, c.Right, "right")
	assert.Equal(t, float32(12), c.Speed)
	assert.Equal(t, float32(0.25), c.Sensitivity)
	assert.Equal(t, float32(40), c.FOV)
}

func TestFreeCameraPitchIsClamped(t *testing.T) {
	c := NewFreeCamera(math.Vec3{})
	c.ProcessMouseMovement(0, 10000)
	assert.Equal(t, float32(89), c.Pitch)
	c.ProcessMouseMovement(0, -100000)
	assert.Equal(t, float32(-89), c.Pitch)
	assert.InDelta(t, 1, c.Front.Length(), 1e-5)
}

func TestFreeCameraMouseUsesSensitivity(t *testing.T) {
	c := NewFreeCamera(math.Vec3{})
	c.ProcessMouseMovement(40, 8)
	assert.Equal(t, float32(-80), c.Yaw)
	assert.Equal(t, float32(2), c.Pitch)
}

func TestFreeCameraZoomBounds(t *testing.T) {
	c := NewFreeCamera(math.Vec3{})
	c.ProcessScroll(5)
	assert.Equal(t, float32(35), c.FOV)
	c.ProcessScroll(100)
	assert.Equal(t, float32(25), c.FOV)
	c.ProcessScroll(-200)
	assert.Equal(t, float32(90), c.FOV)
}

func TestFreeCameraKeyboardAndSprint(t *testing.T) {
	c := NewFreeCamera(math.Vec3{})
	c.ProcessKeyboard(CameraForward, 0.5)
	assertVec(t, math.Vec3{Z: -6}, c.Position, "forward")

	c.SetSprint(true)
	c.ProcessKeyboard(CameraUp, 0.5)
	assertVec(t, math.Vec3{Y: 18, Z: -6}, c.Position, "sprinting up")

	c.SetSprint(false)
	c.ProcessKeyboard(CameraRight, 1)
	assertVec(t, math.Vec3{X: 12, Y: 18, Z: -6}, c.Position, "right")
}

func TestSetInitialLookAtFacesTarget(t *testing.T) {
	c := NewFreeCamera(math.Vec3{X: 22, Y: 16, Z: -2})
	c.SetInitialLookAt(math.Vec3{})

	want := math.Vec3{X: -22, Y: -16, Z: 2}.Normalize()
	assertVec(t, want, c.Front, "front points at origin")
	assert.InDelta(t, 0, c.Front.Dot(c.Up), 1e-4)
}

func TestSetInitialLookAtAnyTarget(t *testing.T) {
	targets := []math.Vec3{
		{X: 0.5, Y: 100, Z: 0.5},
		{Y: -50},
		{X: 3, Y: -4, Z: 12},
		{X: -7, Y: 1, Z: -2},
		{X: 0.1, Y: -30, Z: -0.2},
	}
	for _, target := range targets {
		c := NewFreeCamera(math.Vec3{})
		c.SetInitialLookAt(target)

		want := target.Normalize()
		assert.InDelta(t, want.X, c.Front.X, 1e-3, "target %v", target)
		assert.InDelta(t, want.Y, c.Front.Y, 1e-3, "target %v", target)
		assert.InDelta(t, want.Z, c.Front.Z, 1e-3, "target %v", target)
	}
}

func TestSetInitialLookAtNudgesZeroAxes(t *testing.T) {
	c := NewFreeCamera(math.Vec3{Z: 10})
	c.SetInitialLookAt(math.Vec3{})
	assert.InDelta(t, -1, c.Front.Z, 1e-3)
	assert.False(t, c.Yaw != c.Yaw, "yaw is not NaN")
}

func TestFreeCameraViewNegatesUp(t *testing.T) {
	c := NewFreeCamera(math.Vec3{X: 1, Y: 2, Z: 3})
	c.ProcessMouseMovement(30, 12)
	got := c.ViewMatrix()

	eye := mgl32.Vec3{c.Position.X, c.Position.Y, c.Position.Z}
	front := mgl32.Vec3{c.Front.X, c.Front.Y, c.Front.Z}
	up := mgl32.Vec3{-c.Up.X, -c.Up.Y, -c.Up.Z}
	want := mgl32.LookAtV(eye, eye.Add(front), up)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, want[i*4+j], got[i][j], 1e-4)
		}
	}
}

func TestChaseCameraFollowsJumper(t *testing.T) {
	j := NewJumper(math.Vec3{X: 5})
	c := NewChaseCamera()
	c.Attach(j)

	// Offset is (0, 2.5, -9) in jumper space: behind along Front, above
	// along Up.
	assertVec(t, math.Vec3{X: -4, Y: 2.5}, c.Pos(), "position")

	view := c.ViewMatrix()
	eye := c.Pos()
	want := math.Mat4LookAt(eye, j.Position, j.Up)
	assert.Equal(t, want, view, "chase camera keeps the jumper's up")
	assert.Equal(t, float32(45), c.FOV)
}

func TestChaseCameraCockpitUsesEye(t *testing.T) {
	j := NewJumper(math.Vec3{X: 5})
	j.ApplyRotation(AxisYaw, 90)
	j.Integrate()

	c := NewChaseCamera()
	c.Cockpit = true
	c.Attach(j)

	// Front is (0,0,-1) after the yaw, so the eye sits 5.5 ahead on -Z.
	assertVec(t, math.Vec3{X: 5, Z: -5.5}, c.Pos(), "eye")
	assertVec(t, j.EyePosition(), c.Pos(), "eye matches jumper")
	want := math.Mat4LookAt(c.Pos(), c.Pos().Add(j.Front), j.Up)
	assert.Equal(t, want, c.ViewMatrix())
}

func TestStateToggleCockpit(t *testing.T) {
	s := newTestState(t)
	assert.True(t, s.ToggleCockpit())
	assertVec(t, s.Jumper.EyePosition(), s.Chase.Pos(), "re-seated in cockpit")
	assert.False(t, s.ToggleCockpit())
}
