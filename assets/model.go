package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"stargate/core"
)

// ReadModel loads a model by extension: .obj through the OBJ parser and
// .gltf/.glb through qmuntal/gltf.
func ReadModel(path string) ([]*core.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("model %q: unsupported format %q: %w", path, ext, core.ErrAssetNotFound)
	}
}

// LoadModel never fails: on error it logs and returns a unit cube so the
// object stays visible and the frame loop keeps running.
func LoadModel(path string) []*core.Mesh {
	meshes, err := ReadModel(path)
	if err != nil {
		core.LogWarn("model load failed, using placeholder cube", "path", path, "err", err)
		return []*core.Mesh{core.NewCubeMesh("placeholder:"+filepath.Base(path), 1)}
	}
	core.LogDebug("model loaded", "path", path, "meshes", len(meshes))
	return meshes
}
