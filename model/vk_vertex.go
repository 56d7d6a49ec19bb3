package model

import (
	vk "github.com/goki/vulkan"
	"local/vector_math"
	"unsafe"
)

// Vertex is a single mesh point as it is laid out in GPU memory. The disk
// pipeline consumes positions only, so a vertex is three tightly packed
// float32 values (12 Byte, no interleaved normals, UVs or colors).
type Vertex struct {
	Pos vector_math.Vec3
}

func GetVertexBindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    uint32(unsafe.Sizeof(Vertex{})),
		InputRate: vk.VertexInputRateVertex,
	}
}

func GetVertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Location: 0,
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
	}
}
