package renderer

import (
	vk "github.com/goki/vulkan"
)

// fanRecorder translates the draw sequence of a model into commands on a Vulkan command buffer.
// It satisfies model.DrawRecorder, keeping the models free of any direct command buffer access.
type fanRecorder struct {
	buf vk.CommandBuffer
}

func (r *fanRecorder) BindVertexBuffer(buf vk.Buffer) {
	vertBuffers := []vk.Buffer{buf}
	offsets := []vk.DeviceSize{0}
	vk.CmdBindVertexBuffers(r.buf, 0, uint32(len(vertBuffers)), vertBuffers, offsets)
}

// DrawFan issues a single non indexed draw. With the pipeline's triangle fan topology the count
// vertices come out as count-2 triangles sharing vertex 0.
func (r *fanRecorder) DrawFan(count uint32) {
	vk.CmdDraw(r.buf, count, 1, 0, 0)
}
