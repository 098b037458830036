package scene

import "stargate/math"

type JumperMove int

const (
	JumperForward JumperMove = iota
	JumperBackward
	JumperLeft
	JumperRight
	JumperUp
	JumperDown
	JumperPitchUp
	JumperPitchDown
	JumperRollLeft
	JumperRollRight
	JumperYawLeft
	JumperYawRight
)

// Attachment offsets in the jumper's frame: x along Right, y along Up and
// z along Front.
var (
	flashlightOffset = math.Vec3{Y: -1.27, Z: 5.5}
	eyeOffset        = math.Vec3{Z: 5.5}
	missileOffset    = math.Vec3{Y: -1.5, Z: 3}
	exhaustOffset    = math.Vec3{Z: -4}
	chaseOffset      = math.Vec3{Y: 2.5, Z: -9}
)

const defaultJumperSpeed = 12

// Jumper is the player vehicle.
type Jumper struct {
	Position math.Vec3
	Orientation
	Speed float32
}

func NewJumper(position math.Vec3) *Jumper {
	return &Jumper{
		Position:    position,
		Orientation: NewOrientation(),
		Speed:       defaultJumperSpeed,
	}
}

// ProcessKeyboard moves along the current basis or queues a rotation of
// Speed degrees per second. Rotations take effect on Integrate.
func (j *Jumper) ProcessKeyboard(move JumperMove, dt float32) {
	velocity := j.Speed * dt
	switch move {
	case JumperForward:
		j.Position = j.Position.Add(j.Front.Mul(velocity))
	case JumperBackward:
		j.Position = j.Position.Sub(j.Front.Mul(velocity))
	case JumperLeft:
		j.Position = j.Position.Sub(j.Right.Mul(velocity))
	case JumperRight:
		j.Position = j.Position.Add(j.Right.Mul(velocity))
	case JumperUp:
		j.Position = j.Position.Add(j.Up.Mul(velocity))
	case JumperDown:
		j.Position = j.Position.Sub(j.Up.Mul(velocity))
	case JumperPitchUp:
		j.ApplyRotation(AxisPitch, velocity)
	case JumperPitchDown:
		j.ApplyRotation(AxisPitch, -velocity)
	case JumperRollLeft:
		j.ApplyRotation(AxisRoll, -velocity)
	case JumperRollRight:
		j.ApplyRotation(AxisRoll, velocity)
	case JumperYawLeft:
		j.ApplyRotation(AxisYaw, velocity)
	case JumperYawRight:
		j.ApplyRotation(AxisYaw, -velocity)
	}
}

// Attach maps offset from the jumper's frame into world space. Attached
// objects call it every frame; the result must not be cached.
func (j *Jumper) Attach(offset math.Vec3) math.Vec3 {
	return j.Position.
		Add(j.Right.Mul(offset.X)).
		Add(j.Up.Mul(offset.Y)).
		Add(j.Front.Mul(offset.Z))
}

func (j *Jumper) ModelMatrix() math.Mat4 {
	return j.Total.WithTranslation(j.Position)
}

// ScaledModelMatrix scales about the jumper's own origin before placing it.
func (j *Jumper) ScaledModelMatrix(s float32) math.Mat4 {
	return math.Mat4UniformScale(s).Mul(j.Total).WithTranslation(j.Position)
}

// EyePosition is the first-person viewpoint in the cockpit.
func (j *Jumper) EyePosition() math.Vec3 { return j.Attach(eyeOffset) }
