package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"stargate/core"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{B: 255, A: 255})
	return img
}

func TestPlaceholderIsOnePixel(t *testing.T) {
	img := Placeholder("x", core.ColorMagenta)
	assert.Equal(t, 1, img.Width)
	assert.Equal(t, []byte{255, 0, 255, 255}, img.Pixels)
}

func TestDecodeImageConvertsToRGBA(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	img, err := DecodeImage("t.png", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, img.Pixels)
}

func TestDecodeImageReadsBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage()))

	img, err := DecodeImage("t.bmp", &buf)
	require.NoError(t, err)
	assert.Len(t, img.Pixels, 8)
	assert.Equal(t, byte(255), img.Pixels[0])
}

func TestLoadTextureFallsBackToMagenta(t *testing.T) {
	logs := captureLogs(t)
	img := LoadTexture(filepath.Join(t.TempDir(), "nope.png"))
	assert.Equal(t, []byte{255, 0, 255, 255}, img.Pixels)
	assert.Contains(t, logs.String(), "texture load failed")
}

func TestLoadCubeMapFacesReportsMissingFace(t *testing.T) {
	captureLogs(t)
	dir := t.TempDir()
	for _, name := range CubeFaceNames[:5] {
		f, err := os.Create(filepath.Join(dir, name+".png"))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, testImage()))
		require.NoError(t, f.Close())
	}

	faces, err := LoadCubeMapFaces(dir)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 2, faces[i].Width, CubeFaceNames[i])
	}
	assert.Equal(t, 1, faces[5].Width, "negz is a placeholder")
}
