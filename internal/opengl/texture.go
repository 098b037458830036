package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"stargate/assets"
	"stargate/core"
)

// UploadTexture uploads img as a mipmapped, repeating 2D texture. Rows are
// flipped so UV (0,0) samples the bottom-left pixel.
func UploadTexture(img *assets.Image) (uint32, error) {
	if img == nil || len(img.Pixels) == 0 {
		return 0, fmt.Errorf("texture has no pixel data")
	}
	if len(img.Pixels) != img.Width*img.Height*4 {
		return 0, fmt.Errorf("texture %q: %d bytes for %dx%d", img.Name, len(img.Pixels), img.Width, img.Height)
	}
	pixels := flipRows(img.Pixels, img.Width*4, img.Height)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Width), int32(img.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// UploadCubeMap uploads six faces in GL order (+X, -X, +Y, -Y, +Z, -Z).
// Cube map faces keep their top-down row order.
func UploadCubeMap(faces [6]*assets.Image) (uint32, error) {
	for i, f := range faces {
		if f == nil || len(f.Pixels) != f.Width*f.Height*4 {
			return 0, fmt.Errorf("cube map face %s: %w", assets.CubeFaceNames[i], core.ErrAssetNotFound)
		}
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, f := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, int32(f.Width), int32(f.Height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pixels))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id, nil
}

// LoadCubeMap loads and uploads the skybox in dir. Missing faces are
// magenta; the load error is logged by assets.
func LoadCubeMap(dir string) (uint32, error) {
	faces, _ := assets.LoadCubeMapFaces(dir)
	return UploadCubeMap(faces)
}

func DeleteTexture(id *uint32) {
	if id == nil || *id == 0 {
		return
	}
	gl.DeleteTextures(1, id)
	*id = 0
}

func flipRows(pix []byte, stride, rows int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < rows; y++ {
		copy(out[(rows-1-y)*stride:(rows-y)*stride], pix[y*stride:(y+1)*stride])
	}
	return out
}

// TextureCache uploads each texture path once. The empty path maps to a
// 1x1 white texture so untextured meshes sample their lighting unchanged.
type TextureCache struct {
	byPath map[string]uint32
}

func NewTextureCache() *TextureCache {
	return &TextureCache{byPath: make(map[string]uint32)}
}

// Get never fails: upload errors are logged and the magenta placeholder
// is used instead.
func (c *TextureCache) Get(path string) uint32 {
	if id, ok := c.byPath[path]; ok {
		return id
	}
	var img *assets.Image
	if path == "" {
		img = assets.Placeholder("white", core.ColorWhite)
	} else {
		img = assets.LoadTexture(path)
	}
	id, err := UploadTexture(img)
	if err != nil {
		core.LogWarn("texture upload failed", "path", path, "err", err)
		id, _ = UploadTexture(assets.Placeholder(path, core.ColorMagenta))
	}
	c.byPath[path] = id
	return id
}

func (c *TextureCache) Delete() {
	for path, id := range c.byPath {
		DeleteTexture(&id)
		delete(c.byPath, path)
	}
}
