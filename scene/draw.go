package scene

import (
	"stargate/core"
	"stargate/math"
	"stargate/renderer"
)

var (
	_ renderer.SceneDrawer = (*State)(nil)
	_ renderer.Camera      = (*FreeCamera)(nil)
	_ renderer.Camera      = (*ChaseCamera)(nil)
)

var outlineColor = math.Vec3{X: 0.2, Y: 0.8, Z: 1}

const (
	shininessShip     = 64
	shininessRock     = 8
	particleCubeScale = 0.08
)

func drawWith(shader core.Shader, model core.Model, m math.Mat4) {
	if model == nil {
		return
	}
	shader.SetMat4("model", m)
	model.Draw(shader)
}

// DrawCasters issues the depth-only draws for the shadow cube map. Only
// objects within reach of the orbiting light are included.
func (s *State) DrawCasters(shader core.Shader) {
	drawWith(shader, s.Models.Stargate, s.StargateMatrix())
	drawWith(shader, s.Models.Jumper, s.Jumper.ModelMatrix())
	if s.Missile.Launched {
		drawWith(shader, s.Models.Missile, s.Missile.ModelMatrix())
	}
}

func (s *State) AttachChaseCamera() {
	s.Chase.Attach(s.Jumper)
}

// DrawScene draws everything visible from ctx's camera. On the onscreen
// pass the jumper is the only draw that writes the stencil buffer.
func (s *State) DrawScene(dev renderer.Device, ctx renderer.RenderContext) {
	s.drawSkybox(dev, ctx)
	s.drawStars(ctx)

	if lit := s.Programs.Lit; lit != nil {
		lit.Use()
		ctx.SetCommon(dev, lit)
		s.Lights.SetShaderParameters(lit)
		lit.SetInt("skybox", int32(renderer.UnitSkybox))
		lit.SetInt("reflectionMap", int32(renderer.UnitReflection))
		dev.BindTexture(renderer.UnitSkybox, renderer.TextureCubeMap, s.Textures.Skybox)
		dev.BindTexture(renderer.UnitReflection, renderer.Texture2D, s.Textures.Reflection)

		lit.SetFloat("material.shininess", shininessShip)
		lit.SetInt("reflective", 1)
		drawWith(lit, s.Models.Stargate, s.StargateMatrix())
		lit.SetInt("reflective", 0)

		lit.SetFloat("material.shininess", shininessRock)
		drawWith(lit, s.Models.Planet, s.PlanetMatrix())

		lit.SetFloat("material.shininess", shininessShip)
		if s.Missile.Launched {
			drawWith(lit, s.Models.Missile, s.Missile.ModelMatrix())
		}
		renderer.MarkStencil(dev, ctx, func() {
			drawWith(lit, s.Models.Jumper, s.Jumper.ModelMatrix())
		})
	}

	if inst := s.Programs.Instanced; inst != nil && s.Models.Asteroid != nil && len(s.Asteroids) > 0 {
		inst.Use()
		ctx.SetCommon(dev, inst)
		s.Lights.SetShaderParameters(inst)
		inst.SetFloat("material.shininess", shininessRock)
		frustum := FrustumFromViewProjection(ctx.View.Mul(ctx.Projection))
		s.visibleAsteroids = CullInstances(s.visibleAsteroids[:0], &frustum, s.Asteroids)
		s.Models.Asteroid.DrawInstanced(inst, s.visibleAsteroids)
	}

	if proxy := s.Programs.Proxy; proxy != nil && s.Models.Cube != nil {
		proxy.Use()
		proxy.SetMat4("view", ctx.View)
		proxy.SetMat4("projection", ctx.Projection)
		s.Lights.DrawProxies(proxy, s.Models.Cube)
	}

	if p := s.Programs.Particle; p != nil && s.Models.Cube != nil {
		p.Use()
		p.SetMat4("view", ctx.View)
		p.SetMat4("projection", ctx.Projection)
		p.SetFloat("scale", particleCubeScale)
		s.Exhaust.Draw(p, s.Models.Cube, dev)
		if s.Missile.Exploding(s.Time) {
			s.Explosion.Draw(p, s.Models.Cube, dev)
		}
	}
}

// drawSkybox renders the cube map behind everything with depth writes off
// and the camera translation stripped. The box is seen from inside, so face
// culling is off, and it sits at depth 1 so the test must pass on equal.
func (s *State) drawSkybox(dev renderer.Device, ctx renderer.RenderContext) {
	sh := s.Programs.Skybox
	if sh == nil || s.Models.Skybox == nil {
		return
	}
	dev.SetCullFace(false)
	dev.DepthFunc(renderer.CompareLessEqual)
	dev.SetDepthMask(false)
	sh.Use()
	sh.SetMat4("view", ctx.View.Mat3())
	sh.SetMat4("projection", ctx.Projection)
	sh.SetInt("skybox", int32(renderer.UnitSkybox))
	dev.BindTexture(renderer.UnitSkybox, renderer.TextureCubeMap, s.Textures.Skybox)
	s.Models.Skybox.Draw(sh)
	dev.SetDepthMask(true)
	dev.DepthFunc(renderer.CompareLess)
}

func (s *State) drawStars(ctx renderer.RenderContext) {
	sh := s.Programs.Stars
	if sh == nil || s.Models.Stars == nil || len(s.starTransforms) == 0 {
		return
	}
	sh.Use()
	sh.SetMat4("view", ctx.View)
	sh.SetMat4("projection", ctx.Projection)
	s.Models.Stars.DrawInstanced(sh, s.starTransforms)
}

// DrawOutline draws the jumper enlarged by scale in a flat colour. The
// pipeline has already bound shader and set the stencil test.
func (s *State) DrawOutline(_ renderer.RenderContext, shader core.Shader, scale float32) {
	shader.SetVec3("outlineColor", outlineColor)
	drawWith(shader, s.Models.Jumper, s.Jumper.ScaledModelMatrix(scale))
}
