package main

import (
	"path/filepath"

	"stargate/assets"
	"stargate/core"
	"stargate/internal/opengl"
	"stargate/renderer"
	"stargate/scene"
)

// programFiles maps each program to its stage files under the shader
// source.
var programFiles = map[string]assets.ProgramSources{
	"lit":       {Vertex: "lit.vert", Fragment: "lit.frag"},
	"instanced": {Vertex: "instanced.vert", Fragment: "lit.frag"},
	"depth":     {Vertex: "depth.vert", Fragment: "depth.frag", Geometry: "depth.geom"},
	"proxy":     {Vertex: "proxy.vert", Fragment: "proxy.frag"},
	"outline":   {Vertex: "proxy.vert", Fragment: "outline.frag"},
	"particle":  {Vertex: "particle.vert", Fragment: "particle.frag"},
	"skybox":    {Vertex: "skybox.vert", Fragment: "skybox.frag"},
	"stars":     {Vertex: "stars.vert", Fragment: "stars.frag"},
	"post":      {Vertex: "post.vert", Fragment: "post.frag"},
}

var clearColor = core.Color{R: 0.02, G: 0.02, B: 0.04, A: 1}

// The picture-in-picture quad sits in the top right corner, in NDC.
const (
	pipX0, pipY0 = 0.5, 0.5
	pipX1, pipY1 = 1.0, 1.0
)

const shadowNear = 1.0

// backend owns every GL resource. A resource that fails to build is logged
// and left nil; the pipeline and scene skip what is missing.
type backend struct {
	source   assets.ShaderSource
	programs map[string]*opengl.Program
	textures *opengl.TextureCache
	models   []*opengl.MeshModel

	skybox     uint32
	reflection uint32
	shadow     *opengl.CubeDepthTarget
	offscreen  *opengl.OffscreenTarget

	cube *opengl.MeshModel
	quad *opengl.MeshModel
}

func newBackend(cfg core.Config, width, height int) *backend {
	b := &backend{
		source:   assets.ShaderSource{Dir: cfg.Assets.ShaderDir},
		programs: make(map[string]*opengl.Program, len(programFiles)),
		textures: opengl.NewTextureCache(),
	}
	for name, files := range programFiles {
		p, err := opengl.NewProgram(name, b.source, files)
		if err != nil {
			core.LogError("continuing without program", "program", name, "err", err)
			continue
		}
		b.programs[name] = p
	}

	dir := cfg.Assets.Dir
	var err error
	if b.skybox, err = opengl.LoadCubeMap(filepath.Join(dir, "CubeMap")); err != nil {
		core.LogError("continuing without skybox", "err", err)
	}
	b.reflection = b.textures.Get(filepath.Join(dir, "Models", "reflectionMapJumper.png"))

	if cfg.Render.ShadowSize > 0 {
		if b.shadow, err = opengl.NewCubeDepthTarget(cfg.Render.ShadowSize); err != nil {
			core.LogError("continuing without shadows", "err", err)
		}
	}
	if b.offscreen, err = opengl.NewOffscreenTarget(width, height); err != nil {
		core.LogError("continuing without picture-in-picture", "err", err)
	}

	b.cube = b.track(opengl.NewCubeModel(2))
	b.quad = b.track(opengl.NewQuadModel(pipX0, pipY0, pipX1, pipY1))
	return b
}

func (b *backend) track(m *opengl.MeshModel) *opengl.MeshModel {
	b.models = append(b.models, m)
	return m
}

// shader returns a nil interface, not a typed nil, for missing programs.
func (b *backend) shader(name string) core.Shader {
	if p, ok := b.programs[name]; ok {
		return p
	}
	return nil
}

// Attach hands models, programs and textures to the scene.
func (b *backend) Attach(s *scene.State, assetDir string) {
	dir := filepath.Join(assetDir, "Models")
	s.Models = scene.Models{
		Stargate: b.track(opengl.LoadMeshModel(filepath.Join(dir, "Stargate.obj"), b.textures)),
		Jumper:   b.track(opengl.LoadMeshModel(filepath.Join(dir, "jumper.obj"), b.textures)),
		Planet: b.track(opengl.NewMeshModel("planet",
			[]*core.Mesh{core.NewSphereMesh("planet", 1, 48, 24)}, b.textures)),
		Missile: b.track(opengl.NewMeshModel("missile",
			[]*core.Mesh{core.NewCubeMesh("missile", 0.4)}, b.textures)),
		Cube:   b.cube,
		Skybox: b.cube,
		Asteroid: b.track(opengl.NewMeshModel("asteroid",
			[]*core.Mesh{core.NewSphereMesh("asteroid", 1, 8, 6)}, b.textures)),
		Stars: b.track(opengl.NewPointsModel()),
	}
	s.Programs = scene.Programs{
		Lit:       b.shader("lit"),
		Instanced: b.shader("instanced"),
		Proxy:     b.shader("proxy"),
		Particle:  b.shader("particle"),
		Skybox:    b.shader("skybox"),
		Stars:     b.shader("stars"),
	}
	s.Textures = scene.Textures{Skybox: b.skybox, Reflection: b.reflection}
}

// Pipeline builds the pass sequence over whatever targets exist.
func (b *backend) Pipeline(cfg core.RenderConfig, width, height int) *renderer.Pipeline {
	p := &renderer.Pipeline{
		Screen:         renderer.Framebuffer{Width: int32(width), Height: int32(height)},
		Outline:        b.shader("outline"),
		ClearColor:     clearColor,
		Near:           cfg.Near,
		Far:            cfg.Far,
		ShadowsEnabled: cfg.Shadows,
		PiPEnabled:     cfg.PiP,
		OutlineEnabled: cfg.Outline,
	}
	if depth := b.shader("depth"); depth != nil && b.shadow != nil {
		p.Shadow = &renderer.ShadowPass{
			Target: b.shadow.Framebuffer(),
			Shader: depth,
			Near:   shadowNear,
			Far:    cfg.ShadowFar,
		}
	}
	if b.offscreen != nil {
		p.Offscreen = b.offscreen.Framebuffer()
		if post := b.shader("post"); post != nil {
			p.Composite = renderer.CompositeStage{Shader: post, Quad: b.quad}
		}
	}
	return p
}

// Reload recompiles every program that reads one of files. A program
// that fails keeps running its previous build.
func (b *backend) Reload(files []string) {
	for _, f := range files {
		for name, p := range b.programs {
			if !p.Files.Uses(f) {
				continue
			}
			if err := p.Reload(b.source); err != nil {
				core.LogError("shader reload failed, keeping previous", "program", name, "err", err)
				continue
			}
			core.LogInfo("shader reloaded", "program", name, "file", f)
		}
	}
}

func (b *backend) Delete() {
	for _, p := range b.programs {
		p.Delete()
	}
	for _, m := range b.models {
		m.Delete()
	}
	b.textures.Delete()
	opengl.DeleteTexture(&b.skybox)
	if b.shadow != nil {
		b.shadow.Delete()
	}
	if b.offscreen != nil {
		b.offscreen.Delete()
	}
}
