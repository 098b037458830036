package scene

import (
	"github.com/chewxy/math32"

	"stargate/math"
)

type CameraMove int

const (
	CameraForward CameraMove = iota
	CameraBackward
	CameraLeft
	CameraRight
	CameraUp
	CameraDown
)

const (
	defaultCameraSpeed       = 12
	defaultCameraSensitivity = 0.25
	defaultCameraFOV         = 40
	sprintFactor             = 3

	minFOV   = 25
	maxFOV   = 90
	maxPitch = 89
)

// FreeCamera is the fly-through camera driven by WASD and the mouse.
type FreeCamera struct {
	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3
	Right    math.Vec3
	WorldUp  math.Vec3

	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32
	FOV         float32

	sprint bool
}

func NewFreeCamera(position math.Vec3) *FreeCamera {
	c := &FreeCamera{
		Position:    position,
		WorldUp:     math.Vec3UnitY,
		Yaw:         -90,
		Speed:       defaultCameraSpeed,
		Sensitivity: defaultCameraSensitivity,
		FOV:         defaultCameraFOV,
	}
	c.updateVectors()
	return c
}

func (c *FreeCamera) updateVectors() {
	sy, cy := math32.Sincos(math.Radians(c.Yaw))
	sp, cp := math32.Sincos(math.Radians(c.Pitch))
	c.Front = math.Vec3{X: cy * cp, Y: sp, Z: sy * cp}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func (c *FreeCamera) SetSprint(on bool) { c.sprint = on }

func (c *FreeCamera) ProcessKeyboard(dir CameraMove, dt float32) {
	velocity := c.Speed * dt
	if c.sprint {
		velocity *= sprintFactor
	}
	switch dir {
	case CameraForward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case CameraBackward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case CameraLeft:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case CameraRight:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case CameraUp:
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	case CameraDown:
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
}

func (c *FreeCamera) ProcessMouseMovement(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch = math.Clamp(c.Pitch+dy*c.Sensitivity, -maxPitch, maxPitch)
	c.updateVectors()
}

// ProcessScroll zooms: scrolling up narrows the field of view.
func (c *FreeCamera) ProcessScroll(dy float32) {
	c.FOV = math.Clamp(c.FOV-dy, minFOV, maxFOV)
}

// SetInitialLookAt solves yaw and pitch so the camera faces target. Pitch is
// not clamped here; only mouse input is limited.
func (c *FreeCamera) SetInitialLookAt(target math.Vec3) {
	d := target.Sub(c.Position)
	// Zero components would pin atan2/asin to an axis.
	if d.X == 0 {
		d.X = 0.01
	}
	if d.Y == 0 {
		d.Y = 0.01
	}
	if d.Z == 0 {
		d.Z = 0.01
	}
	d = d.Normalize()
	c.Pitch = math.Degrees(math32.Asin(d.Y))
	c.Yaw = math.Degrees(math32.Atan2(d.Z, d.X))
	c.updateVectors()
}

// ViewMatrix looks along Front with the up vector negated.
func (c *FreeCamera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Position.Add(c.Front), c.Up.Negate())
}

func (c *FreeCamera) Projection(aspect, near, far float32) math.Mat4 {
	return math.Mat4Perspective(math.Radians(c.FOV), aspect, near, far)
}

func (c *FreeCamera) Pos() math.Vec3 { return c.Position }

// ChaseCamera trails the jumper for the picture-in-picture view. Unlike
// FreeCamera it uses the jumper's up vector as is.
type ChaseCamera struct {
	Offset math.Vec3
	FOV    float32

	// Cockpit moves the camera to the pilot's eye, looking along the
	// jumper's front.
	Cockpit bool

	position math.Vec3
	target   math.Vec3
	up       math.Vec3
}

func NewChaseCamera() *ChaseCamera {
	return &ChaseCamera{
		Offset: chaseOffset,
		FOV:    45,
		up:     math.Vec3UnitY,
		target: math.Vec3UnitX,
	}
}

// Attach re-seats the camera behind j, or in its cockpit. Call it every frame before use.
func (c *ChaseCamera) Attach(j *Jumper) {
	c.up = j.Up
	if c.Cockpit {
		c.position = j.EyePosition()
		c.target = c.position.Add(j.Front)
		return
	}
	c.position = j.Attach(c.Offset)
	c.target = j.Position
}

func (c *ChaseCamera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.position, c.target, c.up)
}

func (c *ChaseCamera) Projection(aspect, near, far float32) math.Mat4 {
	return math.Mat4Perspective(math.Radians(c.FOV), aspect, near, far)
}

func (c *ChaseCamera) Pos() math.Vec3 { return c.position }
