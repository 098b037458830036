package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"

	"stargate/core"
	"stargate/math"
)

const (
	starExtent       = 5000
	starMinRadius    = 2500
	DefaultStarCount = 10000
	// MaxStars is the size of the star instance buffer.
	MaxStars = 40000
)

// Star is one point of the background field.
type Star struct {
	Position math.Vec3
	Size     float32
}

func (s Star) Transform() math.Mat4 {
	return math.Mat4UniformScale(s.Size).WithTranslation(s.Position)
}

// GenerateStars scatters n stars on integer coordinates inside the
// [-5000, 5000) cube, keeping only those beyond radius 2500 so none sit
// inside the playable area.
func GenerateStars(rng *rand.Rand, n int) []Star {
	stars := make([]Star, 0, n)
	for len(stars) < n {
		p := math.Vec3{
			X: float32(rng.Intn(2*starExtent) - starExtent),
			Y: float32(rng.Intn(2*starExtent) - starExtent),
			Z: float32(rng.Intn(2*starExtent) - starExtent),
		}
		if p.Length() <= starMinRadius {
			continue
		}
		stars = append(stars, Star{Position: p, Size: float32(rng.Intn(6)+1) / 2})
	}
	return stars
}

// WriteStars emits one "x y z size" line per star.
func WriteStars(w io.Writer, stars []Star) error {
	bw := bufio.NewWriter(w)
	for _, s := range stars {
		if _, err := fmt.Fprintf(bw, "%g %g %g %g\n", s.Position.X, s.Position.Y, s.Position.Z, s.Size); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadStars parses "x y z size" lines. Blank lines and lines starting with
// '#' are skipped. limit > 0 stops after that many stars; the count never
// exceeds MaxStars, and a longer file is truncated with a warning.
func ReadStars(r io.Reader, limit int) ([]Star, error) {
	capped := limit <= 0 || limit > MaxStars
	if capped {
		limit = MaxStars
	}
	var stars []Star
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 4 {
			return nil, fmt.Errorf("stars line %d: want 4 fields, got %d", line, len(fields))
		}
		var v [4]float32
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("stars line %d: %w", line, err)
			}
			v[i] = float32(x)
		}
		stars = append(stars, Star{Position: math.Vec3{X: v[0], Y: v[1], Z: v[2]}, Size: v[3]})
		if len(stars) >= limit {
			if capped && hasMoreLines(sc) {
				core.LogWarn("star file truncated", "max", MaxStars)
			}
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stars: %w", err)
	}
	return stars, nil
}

func hasMoreLines(sc *bufio.Scanner) bool {
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text != "" && !strings.HasPrefix(text, "#") {
			return true
		}
	}
	return false
}

// LoadStars reads the star file at path. A missing or unreadable file is
// logged and a field is generated in memory instead.
func LoadStars(path string, limit int, rng *rand.Rand) []Star {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		stars, err := ReadStars(f, limit)
		if err == nil {
			core.LogDebug("stars loaded", "path", path, "count", len(stars))
			return stars
		}
		core.LogWarn("star file unreadable, generating", "path", path, "err", err)
	} else if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("star file missing, generating", "path", path)
	} else {
		core.LogWarn("star file unreadable, generating", "path", path, "err", err)
	}

	n := DefaultStarCount
	if limit > 0 && limit < n {
		n = limit
	}
	return GenerateStars(rng, n)
}
