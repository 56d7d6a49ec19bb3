package renderer

import (
	com "GPU_blackhole_render/common"
	"fmt"
	"log"

	vk "github.com/goki/vulkan"
)

// BufferAllocator hands out device local vertex buffers for raw vertex payloads and takes them
// back again. The renderer Core is the production implementation, tests substitute their own.
// Each successful allocation yields two handles, the buffer and its backing memory, both of
// which must be released exactly once via FreeVertexBuffer.
type BufferAllocator interface {
	AllocateVertexBuffer(payload []byte) (vk.Buffer, vk.DeviceMemory, error)
	FreeVertexBuffer(buf vk.Buffer, mem vk.DeviceMemory)
}

// AllocateVertexBuffer uploads the payload into a device local vertex buffer by staging it in
// host visible memory first and issuing a copy command on the graphics queue.
func (c *Core) AllocateVertexBuffer(payload []byte) (vk.Buffer, vk.DeviceMemory, error) {
	bufSize := vk.DeviceSize(uint64(len(payload)))

	// Create staging buffer
	stgBuf, err := com.CreateBuffer(
		c.device,
		bufSize,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
	)
	if err != nil {
		return vk.NullBuffer, vk.NullDeviceMemory, fmt.Errorf("staging buffer: %w", err)
	}
	defer com.DestroyBuffer(c.device, stgBuf)

	// Copy our vertex data into staging (device) memory
	err = com.CopyToDeviceBuffer(c.device, stgBuf, payload)
	if err != nil {
		return vk.NullBuffer, vk.NullDeviceMemory, err
	}

	// Create vertex buffer
	vertBuf, err := com.CreateBuffer(
		c.device,
		bufSize,
		vk.BufferUsageFlags(vk.BufferUsageTransferDstBit|vk.BufferUsageVertexBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
	)
	if err != nil {
		return vk.NullBuffer, vk.NullDeviceMemory, fmt.Errorf("vertex buffer: %w", err)
	}
	log.Printf(
		"Created vertex buffer [handleRef@%p, bufferRef@%p, Size: %d Byte]",
		&vertBuf.Handle, &vertBuf.DeviceMem, bufSize,
	)

	// Move memory to vertex buffer
	c.copyBuffer(stgBuf, vertBuf, bufSize)
	return vertBuf.Handle, vertBuf.DeviceMem, nil
}

// FreeVertexBuffer releases both handles of a vertex buffer previously handed out by
// AllocateVertexBuffer. The device is drained first as the buffer may still be referenced by an
// in flight command buffer.
func (c *Core) FreeVertexBuffer(buf vk.Buffer, mem vk.DeviceMemory) {
	vk.DeviceWaitIdle(c.device.D)
	vk.DestroyBuffer(c.device.D, buf, nil)
	vk.FreeMemory(c.device.D, mem, nil)
}
