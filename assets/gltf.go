package assets

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"stargate/core"
	"stargate/math"
)

// LoadGLTF flattens a .gltf or .glb scene into meshes in model space. Node
// transforms are baked into the vertices so each primitive can be drawn
// with the object's single model matrix.
func LoadGLTF(path string) ([]*core.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	textures := gltfTexturePaths(doc, dir)
	var meshes []*core.Mesh

	var visit func(idx int, parent math.Mat4)
	visit = func(idx int, parent math.Mat4) {
		if idx < 0 || idx >= len(doc.Nodes) {
			return
		}
		n := doc.Nodes[idx]
		world := nodeTransform(n).Mul(parent)
		if n.Mesh != nil && *n.Mesh < len(doc.Meshes) {
			gm := doc.Meshes[*n.Mesh]
			for pi, prim := range gm.Primitives {
				m, err := gltfPrimitive(doc, gm.Name, pi, prim, world)
				if err != nil {
					core.LogWarn("gltf primitive skipped", "path", path, "mesh", gm.Name, "prim", pi, "err", err)
					continue
				}
				applyGLTFMaterial(doc, prim, m, textures)
				meshes = append(meshes, m)
			}
		}
		for _, c := range n.Children {
			visit(c, world)
		}
	}
	for _, root := range gltfRoots(doc) {
		visit(root, math.Mat4Identity())
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("gltf %q: no geometry: %w", path, core.ErrAssetNotFound)
	}
	return meshes, nil
}

// gltfRoots returns the default scene's nodes, or every parentless node
// when the file has no default scene.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeTransform composes scale, rotation and translation in row-vector
// order.
func nodeTransform(n *gltf.Node) math.Mat4 {
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()

	scale := math.Mat4Scale(math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])})
	rot := quatToMat4(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))
	return scale.Mul(rot).WithTranslation(math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])})
}

// quatToMat4 converts a unit quaternion (x, y, z, w) to a row-vector
// rotation matrix.
func quatToMat4(x, y, z, w float32) math.Mat4 {
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	return math.Mat4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

func gltfPrimitive(doc *gltf.Document, meshName string, idx int, prim *gltf.Primitive, world math.Mat4) (*core.Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, idx)

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if i, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[i], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if i, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[i], nil); err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
	}

	m := &core.Mesh{Name: name, Shininess: 32, Vertices: make([]core.Vertex, len(positions))}
	for i, p := range positions {
		v := core.Vertex{
			Position: world.TransformPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]}),
			Normal:   math.Vec3UnitY,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = world.TransformDir(math.Vec3{X: n[0], Y: n[1], Z: n[2]}).Normalize()
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		m.Vertices[i] = v
	}

	if prim.Indices != nil {
		if m.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		m.Indices = make([]uint32, len(positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}
	if len(normals) == 0 {
		generateNormals(m)
	}
	return m, nil
}

// gltfTexturePaths resolves each texture to a file on disk. Textures
// embedded in the binary chunk map to "".
func gltfTexturePaths(doc *gltf.Document, dir string) []string {
	out := make([]string, len(doc.Textures))
	for i, t := range doc.Textures {
		if t.Source == nil || *t.Source >= len(doc.Images) {
			continue
		}
		img := doc.Images[*t.Source]
		if img.URI == "" || img.IsEmbeddedResource() {
			core.LogDebug("gltf embedded image ignored", "texture", i)
			continue
		}
		out[i] = filepath.Join(dir, img.URI)
	}
	return out
}

// applyGLTFMaterial maps base colour texture and roughness onto the Phong
// inputs the lit shader reads.
func applyGLTFMaterial(doc *gltf.Document, prim *gltf.Primitive, m *core.Mesh, textures []string) {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil {
		return
	}
	if pbr.BaseColorTexture != nil && pbr.BaseColorTexture.Index < len(textures) {
		m.DiffuseTexture = textures[pbr.BaseColorTexture.Index]
	}
	rough := float32(pbr.RoughnessFactorOrDefault())
	m.Shininess = (1-rough)*(1-rough)*128 + 1
}
