package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"stargate/assets"
	"stargate/core"
	"stargate/math"
)

var _ core.Shader = (*Program)(nil)

// Program is a linked GL program built from named stage files. Uniform
// locations are looked up once per name and cached until the next Reload.
type Program struct {
	Name  string
	ID    uint32
	Files assets.ProgramSources

	uniforms map[string]int32
}

// NewProgram reads the stages of files from src and links them.
func NewProgram(name string, src assets.ShaderSource, files assets.ProgramSources) (*Program, error) {
	p := &Program{Name: name, Files: files}
	if err := p.Reload(src); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload recompiles every stage. On failure the previous program stays
// bound to p and the error is returned.
func (p *Program) Reload(src assets.ShaderSource) error {
	stages, err := src.Load(p.Files)
	if err != nil {
		return fmt.Errorf("program %s: %w", p.Name, err)
	}
	id, err := linkProgram(stages)
	if err != nil {
		return fmt.Errorf("program %s: %w", p.Name, err)
	}
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
	}
	p.ID = id
	p.uniforms = make(map[string]int32)
	return nil
}

func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func (p *Program) Use() { gl.UseProgram(p.ID) }

// location returns -1 for names the linker dropped; GL ignores writes to -1.
func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(cString(name)))
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetInt(name string, v int32) { gl.Uniform1i(p.location(name), v) }

func (p *Program) SetFloat(name string, v float32) { gl.Uniform1f(p.location(name), v) }

func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.location(name), v.X, v.Y, v.Z)
}

func (p *Program) SetVec4(name string, v math.Vec4) {
	gl.Uniform4f(p.location(name), v.X, v.Y, v.Z, v.W)
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, m.Flat())
}

func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func linkProgram(stages assets.StageSources) (uint32, error) {
	type stage struct {
		name string
		src  string
		kind uint32
	}
	list := []stage{
		{"vertex", stages.Vertex, gl.VERTEX_SHADER},
		{"fragment", stages.Fragment, gl.FRAGMENT_SHADER},
	}
	if stages.Geometry != "" {
		list = append(list, stage{"geometry", stages.Geometry, gl.GEOMETRY_SHADER})
	}

	prog := gl.CreateProgram()
	var compiled []uint32
	defer func() {
		for _, s := range compiled {
			gl.DeleteShader(s)
		}
	}()
	for _, st := range list {
		s, err := compileShader(st.src, st.kind)
		if err != nil {
			gl.DeleteProgram(prog)
			return 0, fmt.Errorf("%s: %w", st.name, err)
		}
		gl.AttachShader(prog, s)
		compiled = append(compiled, s)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: %s", core.ErrShaderLink, strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(cString(src))
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", core.ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
