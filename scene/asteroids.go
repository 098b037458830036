package scene

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"stargate/math"
)

const (
	asteroidRingRadius = 80
	asteroidRingSpread = 15
	asteroidRingHeight = 6
)

// GenerateAsteroids lays out n instance transforms in a ring around the
// origin, each with its own scale and tumble.
func GenerateAsteroids(rng *rand.Rand, n int) []math.Mat4 {
	out := make([]math.Mat4, n)
	for i := range out {
		angle := float32(i)/float32(n)*2*math32.Pi + (rng.Float32()-0.5)*0.05
		radius := asteroidRingRadius + (rng.Float32()*2-1)*asteroidRingSpread
		s, c := math32.Sincos(angle)
		pos := math.Vec3{
			X: c * radius,
			Y: (rng.Float32()*2 - 1) * asteroidRingHeight,
			Z: s * radius,
		}
		axis := math.Vec3{X: rng.Float32() - 0.5, Y: rng.Float32() - 0.5, Z: rng.Float32() - 0.5}
		if axis.Length() < 1e-3 {
			axis = math.Vec3UnitY
		}
		rot := math.Mat4RotationAxis(axis, rng.Float32()*2*math32.Pi)
		scale := 0.2 + rng.Float32()*0.8
		out[i] = math.Mat4UniformScale(scale).Mul(rot).WithTranslation(pos)
	}
	return out
}
