package renderer

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestFrameDescriptorSetStaysWithinFrameResources(t *testing.T) {
	// Only MAX_FRAMES_IN_FLIGHT descriptor sets exist, while a swapchain commonly hands out
	// minImageCount+1 images. The selected set must stay bounded by the frame counter no matter
	// how many frames have been presented.
	c := &Core{descriptorSets: make([]vk.DescriptorSet, MAX_FRAMES_IN_FLIGHT)}
	for i := 0; i < 2*(MAX_FRAMES_IN_FLIGHT+1); i++ {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Descriptor set selection panicked on frame %d: %v", i, r)
				}
			}()
			_ = c.frameDescriptorSet()
		}()
		c.currentFrameIdx = (c.currentFrameIdx + 1) % MAX_FRAMES_IN_FLIGHT
	}
}
