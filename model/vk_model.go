package model

import (
	"GPU_blackhole_render/common"
	vk "github.com/goki/vulkan"
	vm "local/vector_math"
)

// Model ties a mesh to the GPU-side objects required to draw it. The vertex
// buffer handle and its backing device memory are owned exclusively by this
// instance and must be released exactly once, when the model leaves the
// scene. Until the scene uploads the mesh, both handles are null.
type Model struct {
	Mesh            *Mesh
	Name            string
	VertexBuffer    vk.Buffer
	VertexBufferMem vk.DeviceMemory
}

func NewModel(m *Mesh, n string) *Model {
	return &Model{
		Name: n,
		Mesh: m,
	}
}

// ModelPushConstantsSize reports the memory size required for all push constants that the Model expects to
// get bound. The actual layout for the constants in memory is decided by the render pipeline. For now only
// the Mesh.ModelMat (4x4) needs to be provided.
func ModelPushConstantsSize() uint32 {
	mat := vm.NewUnitMat(4)
	return uint32(mat.ByteSize())
}

func (m *Model) VertexCount() uint32 {
	return uint32(len(m.Mesh.Vertices))
}

// GetVBufferSize returns the size required for keeping this model in device memory.
// Mainly used to determine the buffer size before moving the mesh onto the device.
func (m *Model) GetVBufferSize() int {
	return len(m.GetVBufferBytes())
}

// GetVBufferBytes returns the raw bytes representing all vertices for this model.
// Mainly used to execute vk.Memcopy(..., src []byte) to move memory from CPU to GPU
func (m *Model) GetVBufferBytes() []byte {
	return common.RawBytes(m.Mesh.Vertices)
}

// DrawRecorder is the call-level contract between a model and the rendering
// collaborator recording its draw commands. The recorder carries the current
// bind target explicitly, so no caller has to reason about leftover global
// pipeline state.
type DrawRecorder interface {
	// BindVertexBuffer makes buf the vertex input of subsequent draws.
	BindVertexBuffer(buf vk.Buffer)
	// DrawFan issues a single triangle-fan draw over count vertices of the
	// currently bound vertex input, starting at vertex 0.
	DrawFan(count uint32)
}

// RecordDraw binds the model's vertex buffer and issues exactly one
// triangle-fan draw spanning all of its vertices.
func (m *Model) RecordDraw(r DrawRecorder) {
	r.BindVertexBuffer(m.VertexBuffer)
	r.DrawFan(m.VertexCount())
}
