package assets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"stargate/core"
	"stargate/math"
)

// objFace is one triangle; indices are 0-based and -1 when absent.
type objFace struct {
	v, vt, vn [3]int
}

type objVertexRef struct{ v, vt, vn int }

type objGroup struct {
	name     string
	material string
	faces    []objFace
}

type objMaterial struct {
	diffuseTexture string
	shininess      float32
}

// LoadOBJ parses a Wavefront .obj file into one mesh per object or group.
// Materials from a referenced .mtl contribute the diffuse texture and the
// shininess.
func LoadOBJ(path string) ([]*core.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	meshes, err := parseOBJ(f, filepath.Dir(path), func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(filepath.Dir(path), name))
	})
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return meshes, nil
}

func parseFloats(fields []string, n int) ([]float32, bool) {
	if len(fields) < n {
		return nil, false
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		x, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, false
		}
		out[i] = float32(x)
	}
	return out, true
}

// parseOBJ reads OBJ text from r. openMTL resolves mtllib names; dir is
// where texture paths are made relative to.
func parseOBJ(r io.Reader, dir string, openMTL func(string) (io.ReadCloser, error)) ([]*core.Mesh, error) {
	var (
		positions []math.Vec3
		normals   []math.Vec3
		uvs       []math.Vec2
		groups    []objGroup
	)
	materials := map[string]objMaterial{}
	cur := objGroup{name: "default"}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if v, ok := parseFloats(fields[1:], 3); ok {
				positions = append(positions, math.Vec3{X: v[0], Y: v[1], Z: v[2]})
			}
		case "vn":
			if v, ok := parseFloats(fields[1:], 3); ok {
				normals = append(normals, math.Vec3{X: v[0], Y: v[1], Z: v[2]})
			}
		case "vt":
			if v, ok := parseFloats(fields[1:], 2); ok {
				uvs = append(uvs, math.Vec2{X: v[0], Y: v[1]})
			}
		case "o", "g":
			if len(cur.faces) > 0 {
				groups = append(groups, cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = objGroup{name: name, material: cur.material}
		case "usemtl":
			if len(fields) > 1 {
				cur.material = fields[1]
			}
		case "mtllib":
			if len(fields) < 2 || openMTL == nil {
				continue
			}
			rc, err := openMTL(fields[1])
			if err != nil {
				core.LogWarn("obj material library missing", "mtllib", fields[1], "err", err)
				continue
			}
			for k, v := range parseMTL(rc, dir) {
				materials[k] = v
			}
			rc.Close()
		case "f":
			if len(fields) < 4 {
				continue
			}
			refs := make([]objVertexRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				refs = append(refs, parseFaceVertex(tok, len(positions), len(uvs), len(normals)))
			}
			// fan: 0-1-2, 0-2-3, ...
			for i := 1; i+1 < len(refs); i++ {
				a, b, c := refs[0], refs[i], refs[i+1]
				cur.faces = append(cur.faces, objFace{
					v:  [3]int{a.v, b.v, c.v},
					vt: [3]int{a.vt, b.vt, c.vt},
					vn: [3]int{a.vn, b.vn, c.vn},
				})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(cur.faces) > 0 {
		groups = append(groups, cur)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no geometry: %w", core.ErrAssetNotFound)
	}

	meshes := make([]*core.Mesh, 0, len(groups))
	for _, g := range groups {
		m := buildOBJMesh(g, positions, normals, uvs)
		if mat, ok := materials[g.material]; ok {
			m.DiffuseTexture = mat.diffuseTexture
			m.Shininess = mat.shininess
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// parseFaceVertex reads "v", "v/vt", "v//vn" or "v/vt/vn". Negative
// indices count back from the end of each list.
func parseFaceVertex(tok string, nv, nvt, nvn int) objVertexRef {
	idx := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return -1
		case i > 0:
			return i - 1
		case i < 0:
			return n + i
		}
		return -1
	}
	parts := strings.Split(tok, "/")
	ref := objVertexRef{v: -1, vt: -1, vn: -1}
	ref.v = idx(parts[0], nv)
	if len(parts) > 1 {
		ref.vt = idx(parts[1], nvt)
	}
	if len(parts) > 2 {
		ref.vn = idx(parts[2], nvn)
	}
	return ref
}

func buildOBJMesh(g objGroup, positions, normals []math.Vec3, uvs []math.Vec2) *core.Mesh {
	seen := map[objVertexRef]uint32{}
	m := &core.Mesh{Name: g.name, Shininess: 32}

	for _, f := range g.faces {
		for c := 0; c < 3; c++ {
			ref := objVertexRef{f.v[c], f.vt[c], f.vn[c]}
			if i, ok := seen[ref]; ok {
				m.Indices = append(m.Indices, i)
				continue
			}
			v := core.Vertex{Normal: math.Vec3UnitY}
			if ref.v >= 0 && ref.v < len(positions) {
				v.Position = positions[ref.v]
			}
			if ref.vn >= 0 && ref.vn < len(normals) {
				v.Normal = normals[ref.vn]
			}
			if ref.vt >= 0 && ref.vt < len(uvs) {
				v.UV = uvs[ref.vt]
			}
			i := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, v)
			seen[ref] = i
			m.Indices = append(m.Indices, i)
		}
	}
	if len(normals) == 0 {
		generateNormals(m)
	}
	return m
}

// generateNormals replaces vertex normals with area-weighted face normals.
func generateNormals(m *core.Mesh) {
	acc := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0 := m.Vertices[i0].Position
		n := m.Vertices[i1].Position.Sub(p0).Cross(m.Vertices[i2].Position.Sub(p0))
		acc[i0] = acc[i0].Add(n)
		acc[i1] = acc[i1].Add(n)
		acc[i2] = acc[i2].Add(n)
	}
	for i := range m.Vertices {
		if acc[i].Length() > 0 {
			m.Vertices[i].Normal = acc[i].Normalize()
		}
	}
}

func parseMTL(r io.Reader, dir string) map[string]objMaterial {
	mats := map[string]objMaterial{}
	var name string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			name = fields[1]
			mats[name] = objMaterial{shininess: 32}
		case "Ns":
			if name == "" {
				continue
			}
			if v, ok := parseFloats(fields[1:], 1); ok {
				m := mats[name]
				m.shininess = math.Clamp(v[0], 1, 1000)
				mats[name] = m
			}
		case "map_Kd":
			if name == "" {
				continue
			}
			m := mats[name]
			// Options such as -s may precede the file name.
			m.diffuseTexture = filepath.Join(dir, fields[len(fields)-1])
			mats[name] = m
		}
	}
	return mats
}
