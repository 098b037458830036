//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"golang.org/x/exp/rand"

	"stargate/scene"
)

var Default = Build

// Build compiles the stargate binary into bin/.
func Build() error {
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", "stargate"), "./cmd/stargate"), withStream())
	return err
}

// Test runs every package test.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

type Shaders mg.Namespace

// Validate compiles each GLSL stage with glslangValidator when it is on
// PATH.
func (Shaders) Validate() error {
	files, err := filepath.Glob(filepath.Join("shaders", "*.*"))
	if err != nil {
		return err
	}
	for _, f := range files {
		if filepath.Ext(f) == ".go" {
			continue
		}
		if _, err := executeCmd("glslangValidator", withArgs(f)); err != nil {
			return err
		}
	}
	return nil
}

type Stars mg.Namespace

// Generate writes assets/stars.txt. STARS_COUNT and STARS_SEED override
// the defaults.
func (Stars) Generate() error {
	n := scene.DefaultStarCount
	if v := os.Getenv("STARS_COUNT"); v != "" {
		if _, err := fmt.Sscan(v, &n); err != nil {
			return fmt.Errorf("STARS_COUNT: %w", err)
		}
	}
	seed := uint64(42)
	if v := os.Getenv("STARS_SEED"); v != "" {
		if _, err := fmt.Sscan(v, &seed); err != nil {
			return fmt.Errorf("STARS_SEED: %w", err)
		}
	}

	path := filepath.Join("assets", "stars.txt")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := scene.WriteStars(f, scene.GenerateStars(rand.New(rand.NewSource(seed)), n)); err != nil {
		return err
	}
	fmt.Printf("wrote %d stars to %s\n", n, path)
	return nil
}
