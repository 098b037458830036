package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"stargate/core"
	"stargate/shaders"
)

// ShaderSource reads GLSL from dir when it is set, else from the sources
// compiled into the binary.
type ShaderSource struct {
	Dir string
}

func (s ShaderSource) Read(name string) (string, error) {
	var (
		b   []byte
		err error
	)
	if s.Dir != "" {
		b, err = os.ReadFile(filepath.Join(s.Dir, name))
	} else {
		b, err = fs.ReadFile(shaders.FS, name)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("shader %q: %w", name, core.ErrAssetNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("shader %q: %w", name, err)
	}
	return string(b), nil
}

// ProgramSources names the stages of one program. Geometry is optional.
type ProgramSources struct {
	Vertex   string
	Fragment string
	Geometry string
}

// Files lists the non-empty stage file names.
func (p ProgramSources) Files() []string {
	out := []string{p.Vertex, p.Fragment}
	if p.Geometry != "" {
		out = append(out, p.Geometry)
	}
	return out
}

// Uses reports whether file is one of p's stages.
func (p ProgramSources) Uses(file string) bool {
	for _, f := range p.Files() {
		if f == file {
			return true
		}
	}
	return false
}

// StageSources holds the GLSL text of each stage.
type StageSources struct {
	Vertex   string
	Fragment string
	Geometry string
}

func (s ShaderSource) Load(p ProgramSources) (StageSources, error) {
	var out StageSources
	var err error
	if out.Vertex, err = s.Read(p.Vertex); err != nil {
		return out, err
	}
	if out.Fragment, err = s.Read(p.Fragment); err != nil {
		return out, err
	}
	if p.Geometry != "" {
		if out.Geometry, err = s.Read(p.Geometry); err != nil {
			return out, err
		}
	}
	return out, nil
}
