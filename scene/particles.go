package scene

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"stargate/core"
	"stargate/math"
	"stargate/renderer"
)

const (
	particleLife  = 1.0
	particleSpeed = 10
)

// Particle is one slot of a pool. A slot is live while Life > 0.
type Particle struct {
	Position math.Vec3
	Velocity math.Vec3
	Color    core.Color
	Life     float32
}

// ParticlePool is a fixed-size emitter. Dead slots are recycled round-robin
// starting from the last slot handed out.
type ParticlePool struct {
	particles []Particle
	lastUsed  int
	rng       *rand.Rand
}

func NewParticlePool(capacity int, seed uint64) *ParticlePool {
	return &ParticlePool{
		particles: make([]Particle, capacity),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (p *ParticlePool) Cap() int { return len(p.particles) }

func (p *ParticlePool) Particles() []Particle { return p.particles }

// FirstUnused returns a dead slot, or slot 0 when every slot is live. In
// that case slot 0 is overwritten.
func (p *ParticlePool) FirstUnused() int {
	for i := p.lastUsed; i < len(p.particles); i++ {
		if p.particles[i].Life <= 0 {
			p.lastUsed = i
			return i
		}
	}
	for i := 0; i < p.lastUsed; i++ {
		if p.particles[i].Life <= 0 {
			p.lastUsed = i
			return i
		}
	}
	p.lastUsed = 0
	return 0
}

// jitter is a per-axis offset in [-0.25, 0.25).
func (p *ParticlePool) jitter() float32 {
	return float32(p.rng.Intn(100)-50) / 200
}

func (p *ParticlePool) respawn(i int, origin, velocity math.Vec3) {
	p.particles[i] = Particle{
		Position: origin.Add(math.Vec3{X: p.jitter(), Y: p.jitter(), Z: p.jitter()}),
		Velocity: velocity,
		Color:    core.Color{R: 1, G: float32(p.rng.Intn(20)) / 100, B: 0, A: 1},
		Life:     particleLife,
	}
}

// Update spawns spawnCount particles at origin+offset heading along
// velocityDir, then ages every slot. Particles drift against their
// velocity, fade out and shift from red towards yellow.
func (p *ParticlePool) Update(dt float32, origin, velocityDir math.Vec3, spawnCount int, offset math.Vec3) {
	if len(p.particles) == 0 {
		return
	}
	spawnAt := origin.Add(offset)
	velocity := velocityDir.Mul(particleSpeed)
	for n := 0; n < spawnCount; n++ {
		p.respawn(p.FirstUnused(), spawnAt, velocity)
	}
	p.age(dt)
}

// Burst spawns count particles flying out of center in random directions.
func (p *ParticlePool) Burst(center math.Vec3, count int, speed float32) {
	if len(p.particles) == 0 {
		return
	}
	for n := 0; n < count; n++ {
		z := p.rng.Float32()*2 - 1
		theta := p.rng.Float32() * 2 * math32.Pi
		r := math32.Sqrt(1 - z*z)
		s, c := math32.Sincos(theta)
		dir := math.Vec3{X: r * c, Y: r * s, Z: z}
		// Update moves particles against their velocity.
		p.respawn(p.FirstUnused(), center, dir.Mul(-speed))
	}
}

func (p *ParticlePool) age(dt float32) {
	for i := range p.particles {
		pt := &p.particles[i]
		if pt.Life <= 0 {
			continue
		}
		pt.Life -= dt
		if pt.Life <= 0 {
			continue
		}
		pt.Position = pt.Position.Sub(pt.Velocity.Mul(dt * (0.5 + p.rng.Float32())))
		pt.Color.A -= dt * 0.95 * (0.5 + p.rng.Float32())
		pt.Color.G += dt * 0.8 * (0.5 + p.rng.Float32())
	}
}

// Advance ages particles without spawning.
func (p *ParticlePool) Advance(dt float32) { p.age(dt) }

func (p *ParticlePool) Live() int {
	n := 0
	for i := range p.particles {
		if p.particles[i].Life > 0 {
			n++
		}
	}
	return n
}

// Draw renders every live particle with additive blending, then restores
// the regular alpha blend and turns blending off. The shader must be bound
// with view and projection set.
func (p *ParticlePool) Draw(shader core.Shader, cube core.Model, dev renderer.BlendSetter) {
	dev.SetBlend(true)
	dev.BlendFunc(renderer.BlendSrcAlpha, renderer.BlendOne)
	defer func() {
		dev.BlendFunc(renderer.BlendSrcAlpha, renderer.BlendOneMinusSrcAlpha)
		dev.SetBlend(false)
	}()

	for i := range p.particles {
		pt := &p.particles[i]
		if pt.Life <= 0 {
			continue
		}
		shader.SetVec3("offset", pt.Position)
		shader.SetVec4("color", pt.Color.Vec4())
		cube.Draw(shader)
	}
}
