package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stargate/math"
	"stargate/renderer"
)

func TestFirstUnusedScansFromLastUsed(t *testing.T) {
	p := NewParticlePool(4, 1)
	for i := range p.particles {
		p.particles[i].Life = 1
	}
	p.particles[1].Life = 0
	p.particles[3].Life = 0
	p.lastUsed = 2

	assert.Equal(t, 3, p.FirstUnused())
	p.particles[3].Life = 1
	assert.Equal(t, 1, p.FirstUnused(), "wraps to the front")
}

func TestFirstUnusedOverwritesSlotZeroWhenFull(t *testing.T) {
	p := NewParticlePool(3, 1)
	for i := range p.particles {
		p.particles[i].Life = 1
	}
	p.lastUsed = 2
	assert.Equal(t, 0, p.FirstUnused())
	assert.Equal(t, 0, p.lastUsed)
}

func TestUpdateSpawnsAndAges(t *testing.T) {
	p := NewParticlePool(10, 3)
	origin := math.Vec3{X: 1, Y: 2, Z: 3}
	p.Update(0.016, origin, math.Vec3UnitX, 2, math.Vec3{Z: 1})

	assert.Equal(t, 2, p.Live())
	for _, pt := range p.Particles()[:2] {
		assert.InDelta(t, 1-0.016, pt.Life, 1e-6)
		assert.Equal(t, math.Vec3{X: 10}, pt.Velocity)
		assert.Equal(t, float32(1), pt.Color.R)
		assert.Less(t, pt.Color.A, float32(1))
		// Jitter is at most 0.25 per axis; drift is at most 10*0.016*1.5.
		assert.InDelta(t, 1, pt.Position.X, 0.25+0.24+1e-4)
		assert.InDelta(t, 2, pt.Position.Y, 0.25)
		assert.InDelta(t, 4, pt.Position.Z, 0.25)
		assert.Less(t, pt.Position.X, float32(1.25), "drifts against velocity")
	}
}

func TestLiveNeverExceedsCapacity(t *testing.T) {
	p := NewParticlePool(16, 9)
	for i := 0; i < 200; i++ {
		p.Update(0.01, math.Vec3{}, math.Vec3UnitY, 5, math.Vec3{})
		assert.LessOrEqual(t, p.Live(), p.Cap())
		idx := p.FirstUnused()
		assert.True(t, idx >= 0 && idx < p.Cap())
	}
}

func TestParticlesDieAfterOneSecond(t *testing.T) {
	p := NewParticlePool(8, 2)
	p.Update(0.1, math.Vec3{}, math.Vec3UnitX, 4, math.Vec3{})
	for i := 0; i < 10; i++ {
		p.Advance(0.1)
	}
	assert.Zero(t, p.Live())
}

func TestEmptyPoolIsSafe(t *testing.T) {
	p := NewParticlePool(0, 1)
	p.Update(0.1, math.Vec3{}, math.Vec3UnitX, 3, math.Vec3{})
	p.Burst(math.Vec3{}, 3, 1)
	assert.Zero(t, p.Live())
}

func TestBurstSpawnsOutward(t *testing.T) {
	p := NewParticlePool(50, 4)
	p.Burst(math.Vec3{}, 20, 8)
	assert.Equal(t, 20, p.Live())
	for _, pt := range p.Particles()[:20] {
		assert.InDelta(t, 8, pt.Velocity.Length(), 1e-4)
	}
}

func TestDrawUsesAdditiveBlendAndRestores(t *testing.T) {
	p := NewParticlePool(5, 5)
	p.Update(0.01, math.Vec3{}, math.Vec3UnitX, 3, math.Vec3{})

	dev := newFakeDevice()
	sh := newFakeShader()
	cube := &fakeModel{}
	p.Draw(sh, cube, dev)

	assert.Equal(t, 3, cube.draws)
	assert.Equal(t, [][2]renderer.BlendFactor{
		{renderer.BlendSrcAlpha, renderer.BlendOne},
		{renderer.BlendSrcAlpha, renderer.BlendOneMinusSrcAlpha},
	}, dev.blends)
	assert.Equal(t, []bool{true, false}, dev.blendOn)
	assert.Contains(t, sh.vec3s, "offset")
	assert.Contains(t, sh.vec4s, "color")
}
