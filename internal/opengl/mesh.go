package opengl

import (
	"path/filepath"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"stargate/assets"
	"stargate/core"
	"stargate/math"
	"stargate/renderer"
)

var _ core.InstancedModel = (*MeshModel)(nil)

// Attribute locations shared by every program. The instance matrix takes
// four consecutive slots.
const (
	attribPosition = 0
	attribNormal   = 1
	attribUV       = 2
	attribInstance = 3
)

// gpuMesh holds the buffer objects of one uploaded mesh.
type gpuMesh struct {
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IndexCount  int32
	VertexCount int32
	HasIndices  bool
	InstanceVBO uint32 // 0 until the first instanced draw
	InstanceCap int
	Texture     uint32
}

// MeshModel draws a list of CPU meshes, uploading each one the first time
// it is drawn.
type MeshModel struct {
	Name string
	Mode uint32 // gl.TRIANGLES unless built as points

	meshes   []*core.Mesh
	gpu      []*gpuMesh
	textures *TextureCache
	scratch  []float32
}

// NewMeshModel wraps meshes. Diffuse textures come from textures; a nil
// cache leaves the meshes untextured.
func NewMeshModel(name string, meshes []*core.Mesh, textures *TextureCache) *MeshModel {
	return &MeshModel{
		Name:     name,
		Mode:     gl.TRIANGLES,
		meshes:   meshes,
		gpu:      make([]*gpuMesh, len(meshes)),
		textures: textures,
	}
}

// LoadMeshModel loads path through assets.LoadModel, so a broken file
// still yields a drawable placeholder.
func LoadMeshModel(path string, textures *TextureCache) *MeshModel {
	return NewMeshModel(filepath.Base(path), assets.LoadModel(path), textures)
}

// NewCubeModel is a cube of the given edge centred on the origin. With edge
// 2 it doubles as the skybox.
func NewCubeModel(edge float32) *MeshModel {
	return NewMeshModel("cube", []*core.Mesh{core.NewCubeMesh("cube", edge)}, nil)
}

// NewQuadModel covers the NDC rectangle (x0,y0)-(x1,y1) with UVs 0..1. The
// composite pass draws it in the top right corner.
func NewQuadModel(x0, y0, x1, y1 float32) *MeshModel {
	return NewMeshModel("quad", []*core.Mesh{quadMesh(x0, y0, x1, y1)}, nil)
}

// NewPointsModel is a single vertex at the origin drawn as GL points; the
// instance matrix places and sizes each one.
func NewPointsModel() *MeshModel {
	m := NewMeshModel("points", []*core.Mesh{{Name: "point", Vertices: []core.Vertex{{}}}}, nil)
	m.Mode = gl.POINTS
	return m
}

func quadMesh(x0, y0, x1, y1 float32) *core.Mesh {
	n := math.Vec3{Z: 1}
	return &core.Mesh{
		Name: "quad",
		Vertices: []core.Vertex{
			{Position: math.Vec3{X: x0, Y: y0}, Normal: n, UV: math.Vec2{X: 0, Y: 0}},
			{Position: math.Vec3{X: x1, Y: y0}, Normal: n, UV: math.Vec2{X: 1, Y: 0}},
			{Position: math.Vec3{X: x1, Y: y1}, Normal: n, UV: math.Vec2{X: 1, Y: 1}},
			{Position: math.Vec3{X: x0, Y: y1}, Normal: n, UV: math.Vec2{X: 0, Y: 1}},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// Draw binds each mesh's diffuse texture on the diffuse unit and draws it
// with the program already in use.
func (m *MeshModel) Draw(shader core.Shader) {
	for i := range m.meshes {
		gpu := m.upload(i)
		if gpu == nil {
			continue
		}
		m.bindDiffuse(shader, gpu)
		gl.BindVertexArray(gpu.VAO)
		if gpu.HasIndices {
			gl.DrawElements(m.Mode, gpu.IndexCount, gl.UNSIGNED_INT, nil)
		} else {
			gl.DrawArrays(m.Mode, 0, gpu.VertexCount)
		}
	}
	gl.BindVertexArray(0)
}

// DrawInstanced streams transforms into each mesh's instance buffer and
// draws every copy in one call per mesh.
func (m *MeshModel) DrawInstanced(shader core.Shader, transforms []math.Mat4) {
	if len(transforms) == 0 {
		return
	}
	m.scratch = flattenMatrices(m.scratch[:0], transforms)
	count := int32(len(transforms))
	for i := range m.meshes {
		gpu := m.upload(i)
		if gpu == nil {
			continue
		}
		uploadInstanceVBO(gpu, m.scratch, len(transforms))
		m.bindDiffuse(shader, gpu)
		gl.BindVertexArray(gpu.VAO)
		if gpu.HasIndices {
			gl.DrawElementsInstanced(m.Mode, gpu.IndexCount, gl.UNSIGNED_INT, nil, count)
		} else {
			gl.DrawArraysInstanced(m.Mode, 0, gpu.VertexCount, count)
		}
	}
	gl.BindVertexArray(0)
}

func (m *MeshModel) bindDiffuse(shader core.Shader, gpu *gpuMesh) {
	if m.textures == nil {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + renderer.UnitDiffuse)
	gl.BindTexture(gl.TEXTURE_2D, gpu.Texture)
	shader.SetInt("material.diffuse", int32(renderer.UnitDiffuse))
}

// upload returns nil for meshes without vertices.
func (m *MeshModel) upload(i int) *gpuMesh {
	if m.gpu[i] != nil {
		return m.gpu[i]
	}
	mesh := m.meshes[i]
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &gpuMesh{
		IndexCount:  int32(len(mesh.Indices)),
		VertexCount: int32(len(mesh.Vertices)),
		HasIndices:  len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))
	gl.EnableVertexAttribArray(attribUV)
	gl.VertexAttribPointer(attribUV, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	if m.textures != nil {
		gpu.Texture = m.textures.Get(mesh.DiffuseTexture)
	}
	m.gpu[i] = gpu
	return gpu
}

// flattenMatrices appends 16 floats per transform. Row-major Mat4 storage
// is already the column layout the instance attributes read.
func flattenMatrices(dst []float32, transforms []math.Mat4) []float32 {
	for _, t := range transforms {
		for r := 0; r < 4; r++ {
			dst = append(dst, t[r][:]...)
		}
	}
	return dst
}

// uploadInstanceVBO creates the instance buffer on first use and wires the
// matrix into attribute slots 3 to 6 of the mesh VAO.
func uploadInstanceVBO(gpu *gpuMesh, buf []float32, count int) {
	const stride = int32(16 * 4)

	if gpu.InstanceVBO == 0 {
		gl.GenBuffers(1, &gpu.InstanceVBO)
		gl.BindVertexArray(gpu.VAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, gpu.InstanceVBO)
		for i := uint32(0); i < 4; i++ {
			gl.EnableVertexAttribArray(attribInstance + i)
			gl.VertexAttribPointer(attribInstance+i, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(i)*16))
			gl.VertexAttribDivisor(attribInstance+i, 1)
		}
		gl.BindVertexArray(0)
	}

	byteSize := len(buf) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.InstanceVBO)
	if count > gpu.InstanceCap {
		gl.BufferData(gl.ARRAY_BUFFER, byteSize, gl.Ptr(buf), gl.DYNAMIC_DRAW)
		gpu.InstanceCap = count
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, byteSize, gl.Ptr(buf))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Delete frees the GPU buffers. Textures belong to the cache.
func (m *MeshModel) Delete() {
	for i, gpu := range m.gpu {
		if gpu == nil {
			continue
		}
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		if gpu.EBO != 0 {
			gl.DeleteBuffers(1, &gpu.EBO)
		}
		if gpu.InstanceVBO != 0 {
			gl.DeleteBuffers(1, &gpu.InstanceVBO)
		}
		m.gpu[i] = nil
	}
}
