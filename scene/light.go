package scene

import (
	"fmt"
	"strconv"

	"stargate/core"
	"stargate/math"
)

type LightKind int

const (
	PointLight LightKind = iota
	DirectionalLight
	Spotlight
)

func (k LightKind) String() string {
	switch k {
	case PointLight:
		return "point"
	case DirectionalLight:
		return "directional"
	case Spotlight:
		return "spotlight"
	}
	return "light(" + strconv.Itoa(int(k)) + ")"
}

// Attenuation is the constant/linear/quadratic distance falloff.
type Attenuation struct {
	Enabled   bool
	Constant  float32
	Linear    float32
	Quadratic float32
}

func NewAttenuation(constant, linear, quadratic float32) *Attenuation {
	return &Attenuation{Enabled: true, Constant: constant, Linear: linear, Quadratic: quadratic}
}

// SpotCone describes a spotlight; angles are in degrees.
type SpotCone struct {
	Direction math.Vec3
	InnerDeg  float32
	OuterDeg  float32
}

// LightConfig is the single constructor input for every kind of light.
// Color sets all three terms unless one is given explicitly.
type LightConfig struct {
	Position  math.Vec3 // point and spot lights
	Direction math.Vec3 // directional lights

	Color    math.Vec3
	Ambient  *math.Vec3
	Diffuse  *math.Vec3
	Specular *math.Vec3

	Attenuation *Attenuation
	Spot        *SpotCone // required for spotlights
	Size        float32
}

// Spot holds what only spotlights carry. Cutoffs are cosines.
type Spot struct {
	Direction   math.Vec3
	CutOff      float32
	OuterCutOff float32
}

type Light struct {
	Kind  LightKind
	Index int

	// Position is homogeneous: w=1 for positional lights, w=0 for a
	// directional light whose xyz is the direction.
	Position math.Vec4

	Ambient  math.Vec3
	Diffuse  math.Vec3
	Specular math.Vec3

	Attenuation Attenuation
	Spot        *Spot
	Size        float32

	u lightUniforms
}

type lightUniforms struct {
	position, ambient, diffuse, specular    string
	attenuation, constant, linear, quadratic string
	isSpotlight, direction, cutOff, outer    string
}

func newLightUniforms(i int) lightUniforms {
	p := "light[" + strconv.Itoa(i) + "]."
	return lightUniforms{
		position:    p + "position",
		ambient:     p + "ambient",
		diffuse:     p + "diffuse",
		specular:    p + "specular",
		attenuation: p + "attenuation",
		constant:    p + "constant",
		linear:      p + "linear",
		quadratic:   p + "quadratic",
		isSpotlight: p + "isSpotlight",
		direction:   p + "direction",
		cutOff:      p + "cutOff",
		outer:       p + "outerCutOff",
	}
}

func (l *Light) Pos() math.Vec3 { return l.Position.Vec3() }

// SetPosition moves a positional light. Directional lights ignore it.
func (l *Light) SetPosition(p math.Vec3) {
	if l.Kind == DirectionalLight {
		return
	}
	l.Position = p.ToVec4(1)
}

// SetDirection aims a spotlight or a directional light.
func (l *Light) SetDirection(d math.Vec3) {
	switch l.Kind {
	case DirectionalLight:
		l.Position = d.ToVec4(0)
	case Spotlight:
		l.Spot.Direction = d
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// SetShaderParameters writes this light into its light[i] slot. The shader
// must already be bound.
func (l *Light) SetShaderParameters(shader core.Shader) {
	shader.SetVec4(l.u.position, l.Position)
	shader.SetVec3(l.u.ambient, l.Ambient)
	shader.SetVec3(l.u.diffuse, l.Diffuse)
	shader.SetVec3(l.u.specular, l.Specular)

	shader.SetInt(l.u.attenuation, boolInt(l.Attenuation.Enabled))
	shader.SetFloat(l.u.constant, l.Attenuation.Constant)
	shader.SetFloat(l.u.linear, l.Attenuation.Linear)
	shader.SetFloat(l.u.quadratic, l.Attenuation.Quadratic)

	shader.SetInt(l.u.isSpotlight, boolInt(l.Spot != nil))
	var spot Spot
	if l.Spot != nil {
		spot = *l.Spot
	}
	shader.SetVec3(l.u.direction, spot.Direction)
	shader.SetFloat(l.u.cutOff, spot.CutOff)
	shader.SetFloat(l.u.outer, spot.OuterCutOff)
}

// ProxyColor is the diffuse colour scaled so its brightest channel is 1.
// It reports false for a black light, which has no visible proxy.
func (l *Light) ProxyColor() (math.Vec3, bool) {
	m := l.Diffuse.MaxComponent()
	if m <= 0 {
		return math.Vec3{}, false
	}
	return l.Diffuse.Mul(1 / m), true
}

func (l *Light) ProxyTransform() math.Mat4 {
	return math.Mat4UniformScale(l.Size).WithTranslation(l.Pos())
}

// Registry is an append-only, fixed-capacity set of lights. A light's index
// is its uniform array slot and never changes.
type Registry struct {
	lights   []*Light
	capacity int
}

func NewRegistry(capacity int) *Registry {
	return &Registry{lights: make([]*Light, 0, capacity), capacity: capacity}
}

func (r *Registry) Register(kind LightKind, cfg LightConfig) (*Light, error) {
	if len(r.lights) >= r.capacity {
		return nil, fmt.Errorf("register %s light: %w (capacity %d)", kind, core.ErrRegistryFull, r.capacity)
	}
	l := &Light{
		Kind:     kind,
		Index:    len(r.lights),
		Ambient:  cfg.Color,
		Diffuse:  cfg.Color,
		Specular: cfg.Color,
		Size:     cfg.Size,
	}
	if cfg.Ambient != nil {
		l.Ambient = *cfg.Ambient
	}
	if cfg.Diffuse != nil {
		l.Diffuse = *cfg.Diffuse
	}
	if cfg.Specular != nil {
		l.Specular = *cfg.Specular
	}
	if cfg.Attenuation != nil {
		l.Attenuation = *cfg.Attenuation
		l.Attenuation.Enabled = true
	}

	switch kind {
	case DirectionalLight:
		l.Position = cfg.Direction.ToVec4(0)
		l.Attenuation = Attenuation{}
	case Spotlight:
		if cfg.Spot == nil {
			return nil, fmt.Errorf("register spotlight: %w", core.ErrMissingCone)
		}
		l.Position = cfg.Position.ToVec4(1)
		l.Spot = &Spot{
			Direction:   cfg.Spot.Direction,
			CutOff:      math.CosDeg(cfg.Spot.InnerDeg),
			OuterCutOff: math.CosDeg(cfg.Spot.OuterDeg),
		}
	default:
		l.Position = cfg.Position.ToVec4(1)
	}
	l.u = newLightUniforms(l.Index)

	r.lights = append(r.lights, l)
	return l, nil
}

func (r *Registry) Lights() []*Light { return r.lights }

func (r *Registry) Len() int { return len(r.lights) }

// SetShaderParameters writes lightCounter and every slot.
func (r *Registry) SetShaderParameters(shader core.Shader) {
	shader.SetInt("lightCounter", int32(len(r.lights)))
	for _, l := range r.lights {
		l.SetShaderParameters(shader)
	}
}

// DrawProxies draws a small cube at every positional light, tinted with its
// normalised colour. The shader must be bound with view and projection set.
func (r *Registry) DrawProxies(shader core.Shader, cube core.Model) {
	for _, l := range r.lights {
		if l.Kind == DirectionalLight || l.Size <= 0 {
			continue
		}
		color, ok := l.ProxyColor()
		if !ok {
			continue
		}
		shader.SetMat4("model", l.ProxyTransform())
		shader.SetVec3("lightColor", color)
		cube.Draw(shader)
	}
}
