package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"

	"stargate/core"
	"stargate/renderer"
)

// CubeDepthTarget is a depth-only framebuffer whose attachment is a whole
// cube map, so a layered draw fills all six faces.
type CubeDepthTarget struct {
	ID       uuid.UUID
	FBO      uint32
	DepthTex uint32
	Size     int32
}

func NewCubeDepthTarget(size int) (*CubeDepthTarget, error) {
	t := &CubeDepthTarget{ID: uuid.New(), Size: int32(size)}

	gl.GenTextures(1, &t.DepthTex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, t.DepthTex)
	for i := uint32(0); i < 6; i++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i, 0, gl.DEPTH_COMPONENT,
			t.Size, t.Size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &t.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, t.DepthTex, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Delete()
		return nil, incomplete("shadow cube", t.ID, status)
	}
	core.LogDebug("render target created", "kind", "shadow cube", "id", t.ID, "size", size)
	return t, nil
}

func (t *CubeDepthTarget) Framebuffer() renderer.Framebuffer {
	return renderer.Framebuffer{FBO: t.FBO, Width: t.Size, Height: t.Size, DepthTex: t.DepthTex}
}

func (t *CubeDepthTarget) Delete() {
	if t.FBO != 0 {
		gl.DeleteFramebuffers(1, &t.FBO)
		t.FBO = 0
	}
	DeleteTexture(&t.DepthTex)
}

// OffscreenTarget is a colour texture with a combined depth-stencil
// renderbuffer. The chase view renders into it and the composite pass
// samples the colour.
type OffscreenTarget struct {
	ID       uuid.UUID
	FBO      uint32
	ColorTex uint32
	RBO      uint32
	Width    int32
	Height   int32
}

func NewOffscreenTarget(width, height int) (*OffscreenTarget, error) {
	t := &OffscreenTarget{ID: uuid.New(), Width: int32(width), Height: int32(height)}

	gl.GenFramebuffers(1, &t.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)

	gl.GenTextures(1, &t.ColorTex)
	gl.BindTexture(gl.TEXTURE_2D, t.ColorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, t.Width, t.Height, 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.ColorTex, 0)

	gl.GenRenderbuffers(1, &t.RBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.RBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, t.Width, t.Height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, t.RBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Delete()
		return nil, incomplete("offscreen", t.ID, status)
	}
	core.LogDebug("render target created", "kind", "offscreen", "id", t.ID, "width", width, "height", height)
	return t, nil
}

func (t *OffscreenTarget) Framebuffer() renderer.Framebuffer {
	return renderer.Framebuffer{FBO: t.FBO, Width: t.Width, Height: t.Height, ColorTex: t.ColorTex}
}

func (t *OffscreenTarget) Delete() {
	if t.FBO != 0 {
		gl.DeleteFramebuffers(1, &t.FBO)
		t.FBO = 0
	}
	if t.RBO != 0 {
		gl.DeleteRenderbuffers(1, &t.RBO)
		t.RBO = 0
	}
	DeleteTexture(&t.ColorTex)
}

func incomplete(kind string, id uuid.UUID, status uint32) error {
	err := fmt.Errorf("%s target %s: %w: status=0x%X", kind, id, core.ErrFramebufferIncomplete, status)
	core.LogError("framebuffer incomplete", "kind", kind, "id", id, "status", fmt.Sprintf("0x%X", status))
	return err
}
