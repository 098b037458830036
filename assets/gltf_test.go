package assets

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stargate/core"
	"stargate/math"
)

func TestQuatToMat4MatchesMathgl(t *testing.T) {
	q := mgl32.QuatRotate(0.7, mgl32.Vec3{1, 2, 3}.Normalize())
	got := quatToMat4(q.V[0], q.V[1], q.V[2], q.W)
	ref := q.Mat4()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, ref[i*4+j], got[i][j], 1e-5, "m[%d][%d]", i, j)
		}
	}
}

func writeTriangleGLB(t *testing.T) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		}},
	})
	doc.Nodes = append(doc.Nodes,
		&gltf.Node{Name: "root", Translation: [3]float64{10, 0, 0}, Children: []int{1}},
		&gltf.Node{Name: "child", Mesh: gltf.Index(0), Translation: [3]float64{0, 5, 0}},
	)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLTFBakesNodeHierarchy(t *testing.T) {
	meshes, err := LoadGLTF(writeTriangleGLB(t))
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, "tri_p0", m.Name)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, math.Vec3{X: 10, Y: 5}, m.Vertices[0].Position)
	assert.Equal(t, math.Vec3{X: 11, Y: 5}, m.Vertices[1].Position)
	// No NORMAL attribute: generated from the winding.
	assert.InDelta(t, 1, m.Vertices[0].Normal.Z, 1e-6)
}

func TestReadModelDispatchesGLB(t *testing.T) {
	meshes, err := ReadModel(writeTriangleGLB(t))
	require.NoError(t, err)
	assert.Len(t, meshes, 1)
}

func TestLoadGLTFWithoutGeometry(t *testing.T) {
	doc := gltf.NewDocument()
	path := filepath.Join(t.TempDir(), "empty.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	_, err := LoadGLTF(path)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestGLTFRootsWithoutScene(t *testing.T) {
	doc := &gltf.Document{Nodes: []*gltf.Node{{Children: []int{2}}, {}, {}}}
	assert.Equal(t, []int{0, 1}, gltfRoots(doc))
}
