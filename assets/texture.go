package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"stargate/core"
)

// Image is decoded RGBA8 pixel data, rows top to bottom.
type Image struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
}

// Placeholder returns a 1x1 image of c, used in place of a texture that
// failed to load.
func Placeholder(name string, c core.Color) *Image {
	b := func(f float32) byte { return byte(f*255 + 0.5) }
	return &Image{Name: name, Width: 1, Height: 1, Pixels: []byte{b(c.R), b(c.G), b(c.B), b(c.A)}}
}

// DecodeImage reads png, jpeg, bmp or tiff data.
func DecodeImage(name string, r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	b := src.Bounds()
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}
	return &Image{Name: name, Width: b.Dx(), Height: b.Dy(), Pixels: rgba.Pix}, nil
}

func ReadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()
	return DecodeImage(path, f)
}

// LoadTexture never fails: a missing or corrupt file is logged and a
// magenta placeholder is returned so the frame still renders.
func LoadTexture(path string) *Image {
	img, err := ReadImage(path)
	if err != nil {
		core.LogWarn("texture load failed, using placeholder", "path", path, "err", err)
		return Placeholder(path, core.ColorMagenta)
	}
	return img
}

// CubeFaceNames are the skybox face files in GL face order.
var CubeFaceNames = [6]string{"posx", "negx", "posy", "negy", "posz", "negz"}

var imageExts = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

func findFace(dir, face string) (string, error) {
	for _, ext := range imageExts {
		p := filepath.Join(dir, face+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("cube face %q in %q: %w", face, dir, core.ErrAssetNotFound)
}

// LoadCubeMapFaces loads the six faces from dir. Missing faces become
// placeholders; the returned error reports the first one.
func LoadCubeMapFaces(dir string) ([6]*Image, error) {
	var faces [6]*Image
	var firstErr error
	for i, name := range CubeFaceNames {
		path, err := findFace(dir, name)
		if err == nil {
			faces[i], err = ReadImage(path)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			core.LogWarn("cube map face missing, using placeholder", "dir", dir, "face", name, "err", err)
			faces[i] = Placeholder(name, core.ColorMagenta)
		}
	}
	return faces, firstErr
}
