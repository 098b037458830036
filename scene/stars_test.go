package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"stargate/core"
)

func TestGenerateStarsStayOutsideInnerSphere(t *testing.T) {
	stars := GenerateStars(rand.New(rand.NewSource(1)), 500)
	require.Len(t, stars, 500)
	for _, s := range stars {
		assert.Greater(t, s.Position.Length(), float32(2500))
		assert.GreaterOrEqual(t, s.Position.X, float32(-5000))
		assert.Less(t, s.Position.X, float32(5000))
		assert.Contains(t, []float32{0.5, 1, 1.5, 2, 2.5, 3}, s.Size)
	}
}

func TestStarsRoundTripThroughLineFormat(t *testing.T) {
	stars := GenerateStars(rand.New(rand.NewSource(2)), 25)
	var buf bytes.Buffer
	require.NoError(t, WriteStars(&buf, stars))
	assert.Equal(t, 25, strings.Count(buf.String(), "\n"))

	back, err := ReadStars(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, stars, back)
}

func TestReadStarsHonoursLimitAndSkipsComments(t *testing.T) {
	in := "# generated\n1 2 3 0.5\n\n4 5 6 1\n7 8 9 1.5\n"
	stars, err := ReadStars(strings.NewReader(in), 2)
	require.NoError(t, err)
	require.Len(t, stars, 2)
	assert.Equal(t, float32(4), stars[1].Position.X)
	assert.Equal(t, float32(1), stars[1].Size)
}

func TestReadStarsRejectsMalformedLines(t *testing.T) {
	_, err := ReadStars(strings.NewReader("1 2 3\n"), 0)
	assert.ErrorContains(t, err, "line 1")

	_, err = ReadStars(strings.NewReader("1 2 3 0.5\n1 x 3 0.5\n"), 0)
	assert.ErrorContains(t, err, "line 2")
}

func TestLoadStarsFallsBackWhenMissing(t *testing.T) {
	var logs bytes.Buffer
	core.SetLogOutput(&logs)
	t.Cleanup(func() { core.SetLogOutput(os.Stderr) })

	stars := LoadStars(filepath.Join(t.TempDir(), "nope.txt"), 40, rand.New(rand.NewSource(3)))
	assert.Len(t, stars, 40)
	assert.Contains(t, logs.String(), "star file missing")
}

func TestGenerateAsteroidsRing(t *testing.T) {
	mats := GenerateAsteroids(rand.New(rand.NewSource(5)), 100)
	require.Len(t, mats, 100)
	for _, m := range mats {
		p := m.Translation()
		r := p.X*p.X + p.Z*p.Z
		assert.GreaterOrEqual(t, r, float32(65*65)-1)
		assert.LessOrEqual(t, r, float32(95*95)+1)
		assert.LessOrEqual(t, p.Y, float32(6))
		assert.GreaterOrEqual(t, p.Y, float32(-6))
		assert.Equal(t, float32(1), m[3][3])
	}
}

func TestReadStarsCapsAtBufferSize(t *testing.T) {
	var logs bytes.Buffer
	core.SetLogOutput(&logs)
	t.Cleanup(func() { core.SetLogOutput(os.Stderr) })

	data := strings.Repeat("3000 0 0 1\n", MaxStars+5)
	stars, err := ReadStars(strings.NewReader(data), 0)
	require.NoError(t, err)
	assert.Len(t, stars, MaxStars)
	assert.Contains(t, logs.String(), "star file truncated")

	logs.Reset()
	stars, err = ReadStars(strings.NewReader(data), MaxStars*2)
	require.NoError(t, err)
	assert.Len(t, stars, MaxStars, "an explicit limit cannot exceed the buffer")

	logs.Reset()
	exact := strings.Repeat("3000 0 0 1\n", MaxStars) + "\n# end\n"
	stars, err = ReadStars(strings.NewReader(exact), 0)
	require.NoError(t, err)
	assert.Len(t, stars, MaxStars)
	assert.NotContains(t, logs.String(), "truncated")
}
