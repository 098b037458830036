package scene

import "stargate/math"

const (
	missileSpeed     = 30
	missileLifetime  = 5
	explosionSeconds = 1.5
)

// Missile flies in a straight line from where it was launched. Later
// jumper motion does not steer it.
type Missile struct {
	Speed     float32
	Lifetime  float32
	Explosion float32

	Launched bool
	Base     math.Vec3
	Dir      math.Vec3
	Position math.Vec3

	basis      math.Mat4
	launchedAt float32
	explodedAt float32
	exploded   bool
}

func NewMissile() *Missile {
	return &Missile{
		Speed:     missileSpeed,
		Lifetime:  missileLifetime,
		Explosion: explosionSeconds,
		basis:     math.Mat4Identity(),
	}
}

// Launch fires from the jumper's launch rail. It reports false when a
// missile is already in flight.
func (m *Missile) Launch(j *Jumper, now float32) bool {
	if m.Launched {
		return false
	}
	m.Launched = true
	m.Base = j.Attach(missileOffset)
	m.Position = m.Base
	m.Dir = j.Front
	m.basis = j.Total
	m.launchedAt = now
	return true
}

// Update advances the flight. It reports true on the frame the missile
// times out and starts exploding.
func (m *Missile) Update(now float32) bool {
	if !m.Launched {
		return false
	}
	elapsed := now - m.launchedAt
	if elapsed > m.Lifetime {
		m.Launched = false
		m.exploded = true
		m.explodedAt = now
		return true
	}
	m.Position = m.Base.Add(m.Dir.Mul(elapsed * m.Speed))
	return false
}

func (m *Missile) Exploding(now float32) bool {
	return m.exploded && now-m.explodedAt < m.Explosion
}

// ExplosionProgress runs from 0 at detonation to 1 when the blast is over.
func (m *Missile) ExplosionProgress(now float32) float32 {
	if !m.exploded {
		return 0
	}
	return math.Clamp((now-m.explodedAt)/m.Explosion, 0, 1)
}

func (m *Missile) ModelMatrix() math.Mat4 {
	return m.basis.WithTranslation(m.Position)
}
