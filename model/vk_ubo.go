package model

import (
	"GPU_blackhole_render/common"
	vk "github.com/goki/vulkan"
	"local/vector_math"
)

// UniformBufferObject is the per-frame uniform data of the render pipeline,
// tightly packed in the layout the vertex shader expects.
type UniformBufferObject struct {
	View       vector_math.Mat
	Projection vector_math.Mat
}

// SizeOfUbo returns the size of the UniformBufferObject under the assumption
// that view and projection are 4x4 matrices. This is done as the Mat type
// would otherwise require fixed arrays instead of slices to measure itself.
func SizeOfUbo() vk.DeviceSize {
	m, _ := vector_math.NewMat(4, 4)
	return vk.DeviceSize(m.ByteSize() * 2)
}

func (u *UniformBufferObject) Bytes() []byte {
	return append(common.ToByteArr(u.View.Unroll()), common.ToByteArr(u.Projection.Unroll())...)
}
