package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"stargate/core"
	"stargate/math"
)

// MaxLights is the size of the light[] uniform array in the lit shaders.
const MaxLights = 8

const (
	exhaustSpawnPerFrame = 2
	explosionCapacity    = 300
	explosionBurst       = 200
	explosionSpeed       = 8
	gateSpinDegPerSec    = 10
	planetSpinDegPerSec  = 2
)

var (
	cameraStart      = math.Vec3{X: 22, Y: 16, Z: -2}
	stargatePosition = math.Vec3{X: -15, Y: -15, Z: -5}
	planetPosition   = math.Vec3{X: 60, Y: -20, Z: -80}

	flashColor = math.Vec3{X: 0.9, Y: 0.95, Z: 0.4}
)

const planetScale = 20

// Models are the drawables the scene issues calls against. Any of them may
// be nil, in which case that object is skipped.
type Models struct {
	Stargate core.Model
	Jumper   core.Model
	Planet   core.Model
	Missile  core.Model
	Cube     core.Model // light proxies and particles
	Skybox   core.Model
	Asteroid core.InstancedModel
	Stars    core.InstancedModel
}

// Programs are the shaders DrawScene switches between.
type Programs struct {
	Lit       core.Shader
	Instanced core.Shader
	Proxy     core.Shader
	Particle  core.Shader
	Skybox    core.Shader
	Stars     core.Shader
}

// Textures are backend handles bound by DrawScene.
type Textures struct {
	Skybox     uint32 // cube map
	Reflection uint32 // 2D reflection mask for the stargate
}

// State is everything the frame loop updates and draws. It is owned by the
// driver and touched by one goroutine.
type State struct {
	Camera  *FreeCamera
	Chase   *ChaseCamera
	Jumper  *Jumper
	Missile *Missile

	Lights      *Registry
	Sun         *Light
	OrbitLight  *Light // casts the point shadows
	BlueLight   *Light
	CameraFlash *Light
	JumperFlash *Light

	Exhaust   *ParticlePool
	Explosion *ParticlePool

	Asteroids        []math.Mat4
	Stars            []Star
	starTransforms   []math.Mat4
	visibleAsteroids []math.Mat4

	GateAngle float32
	Time      float32

	Models   Models
	Programs Programs
	Textures Textures
}

// NewState builds the fixed scene. Models, programs and textures are
// attached by the caller once the backend exists.
func NewState(cfg core.SceneConfig) (*State, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	s := &State{
		Camera:    NewFreeCamera(cameraStart),
		Chase:     NewChaseCamera(),
		Jumper:    NewJumper(math.Vec3Zero),
		Missile:   NewMissile(),
		Lights:    NewRegistry(MaxLights),
		Exhaust:   NewParticlePool(cfg.Particles, cfg.Seed+1),
		Explosion: NewParticlePool(explosionCapacity, cfg.Seed+2),
		Asteroids: GenerateAsteroids(rng, cfg.Asteroids),
	}
	s.Camera.SetInitialLookAt(math.Vec3Zero)
	s.Chase.Attach(s.Jumper)

	if err := s.registerLights(); err != nil {
		return nil, fmt.Errorf("scene lights: %w", err)
	}

	if cfg.StarFile != "" {
		s.SetStars(LoadStars(cfg.StarFile, cfg.MaxStars, rng))
	} else {
		n := DefaultStarCount
		if cfg.MaxStars > 0 {
			n = cfg.MaxStars
		}
		s.SetStars(GenerateStars(rng, n))
	}
	return s, nil
}

func vec3(x, y, z float32) *math.Vec3 { return &math.Vec3{X: x, Y: y, Z: z} }

func (s *State) registerLights() error {
	var err error
	s.Sun, err = s.Lights.Register(DirectionalLight, LightConfig{
		Direction: math.Vec3{X: -0.2, Y: -1, Z: -0.3},
		Ambient:   vec3(0.05, 0.05, 0.05),
		Diffuse:   vec3(0.3, 0.3, 0.28),
		Specular:  vec3(0.4, 0.4, 0.4),
	})
	if err != nil {
		return err
	}
	s.OrbitLight, err = s.Lights.Register(PointLight, LightConfig{
		Position:    math.Vec3{X: 5, Y: 2, Z: 10},
		Color:       flashColor,
		Attenuation: NewAttenuation(1, 0.082, 0.0019),
		Size:        0.5,
	})
	if err != nil {
		return err
	}
	s.BlueLight, err = s.Lights.Register(PointLight, LightConfig{
		Position:    math.Vec3{X: 8, Y: 4, Z: 2},
		Color:       math.Vec3{Y: 0.3, Z: 0.3},
		Attenuation: NewAttenuation(1, 0.022, 0.0019),
		Size:        0.3,
	})
	if err != nil {
		return err
	}
	s.CameraFlash, err = s.Lights.Register(Spotlight, LightConfig{
		Position:    s.Camera.Position,
		Color:       flashColor,
		Attenuation: NewAttenuation(1, 0.022, 0.0019),
		Spot:        &SpotCone{Direction: s.Camera.Front, InnerDeg: 4.5, OuterDeg: 6.5},
	})
	if err != nil {
		return err
	}
	s.JumperFlash, err = s.Lights.Register(Spotlight, LightConfig{
		Position:    s.Jumper.Attach(flashlightOffset),
		Color:       flashColor,
		Attenuation: NewAttenuation(1, 0.022, 0.0019),
		Spot:        &SpotCone{Direction: s.Jumper.Front, InnerDeg: 8.5, OuterDeg: 12.5},
		Size:        0.2,
	})
	return err
}

// SetStars replaces the star field and rebuilds its instance transforms.
func (s *State) SetStars(stars []Star) {
	s.Stars = stars
	s.starTransforms = make([]math.Mat4, len(stars))
	for i, st := range stars {
		s.starTransforms[i] = st.Transform()
	}
}

type keyBinding[T any] struct {
	key  core.Key
	move T
}

var jumperBindings = []keyBinding[JumperMove]{
	{core.KeyT, JumperForward},
	{core.KeyG, JumperBackward},
	{core.KeyF, JumperLeft},
	{core.KeyH, JumperRight},
	{core.KeyY, JumperUp},
	{core.KeyB, JumperDown},
	{core.KeyUp, JumperPitchUp},
	{core.KeyDown, JumperPitchDown},
	{core.KeyLeft, JumperRollLeft},
	{core.KeyRight, JumperRollRight},
	{core.KeyKPAdd, JumperYawLeft},
	{core.KeyKPSubtract, JumperYawRight},
}

var cameraBindings = []keyBinding[CameraMove]{
	{core.KeyW, CameraForward},
	{core.KeyS, CameraBackward},
	{core.KeyA, CameraLeft},
	{core.KeyD, CameraRight},
	{core.KeySpace, CameraUp},
	{core.KeyX, CameraDown},
}

// Update integrates one frame of input. now is seconds since start.
func (s *State) Update(in core.InputSnapshot, now, dt float32) {
	s.Time = now

	s.Jumper.ClearMovement()
	for _, b := range jumperBindings {
		if in.Held(b.key) {
			s.Jumper.ProcessKeyboard(b.move, dt)
		}
	}
	s.Camera.SetSprint(in.Held(core.KeyLeftShift))
	for _, b := range cameraBindings {
		if in.Held(b.key) {
			s.Camera.ProcessKeyboard(b.move, dt)
		}
	}
	if in.MouseDX != 0 || in.MouseDY != 0 {
		s.Camera.ProcessMouseMovement(in.MouseDX, in.MouseDY)
	}
	if in.Scroll != 0 {
		s.Camera.ProcessScroll(in.Scroll)
	}

	s.Jumper.Integrate()
	s.updateLights(now)

	s.Exhaust.Update(dt, s.Jumper.Attach(exhaustOffset), s.Jumper.Front, exhaustSpawnPerFrame, math.Vec3Zero)
	if s.Missile.Update(now) {
		s.Explosion.Burst(s.Missile.Position, explosionBurst, explosionSpeed)
	}
	s.Explosion.Advance(dt)

	s.GateAngle += gateSpinDegPerSec * dt
}

// OrbitPosition is the path of the shadow-casting light at time t.
func OrbitPosition(t float32) math.Vec3 {
	return math.Vec3{
		X: math32.Sin(0.6*t) * 10,
		Y: math32.Cos(0.3*t) * 7,
		Z: math32.Sin(t) * 8,
	}
}

func (s *State) updateLights(now float32) {
	s.OrbitLight.SetPosition(OrbitPosition(now))
	s.CameraFlash.SetPosition(s.Camera.Position)
	s.CameraFlash.SetDirection(s.Camera.Front)
	s.JumperFlash.SetPosition(s.Jumper.Attach(flashlightOffset))
	s.JumperFlash.SetDirection(s.Jumper.Front)
}

// LaunchMissile fires unless a missile is already in flight.
func (s *State) LaunchMissile(now float32) bool {
	ok := s.Missile.Launch(s.Jumper, now)
	if ok {
		core.LogDebug("missile launched", "pos", s.Missile.Base)
	}
	return ok
}

// ToggleCockpit switches the secondary view between chase and cockpit and
// reports the new mode.
func (s *State) ToggleCockpit() bool {
	s.Chase.Cockpit = !s.Chase.Cockpit
	s.Chase.Attach(s.Jumper)
	return s.Chase.Cockpit
}

func (s *State) ShadowLight() math.Vec3 { return s.OrbitLight.Pos() }

func (s *State) StargateMatrix() math.Mat4 {
	return math.Mat4RotationAxis(math.Vec3UnitZ, math.Radians(s.GateAngle)).WithTranslation(stargatePosition)
}

func (s *State) PlanetMatrix() math.Mat4 {
	spin := math.Mat4RotationAxis(math.Vec3UnitY, math.Radians(s.Time*planetSpinDegPerSec))
	return math.Mat4UniformScale(planetScale).Mul(spin).WithTranslation(planetPosition)
}
