package renderer

import (
	com "GPU_blackhole_render/common"
	"GPU_blackhole_render/model"
	"errors"
	"fmt"
	"testing"

	vk "github.com/goki/vulkan"
	vm "local/vector_math"
)

// countingAllocator stands in for the render core. It tracks how often buffers are handed out
// and taken back so the scene's ownership bookkeeping can be checked without a device.
type countingAllocator struct {
	allocs      int
	frees       int
	lastPayload []byte
	failWith    error
}

func (a *countingAllocator) AllocateVertexBuffer(payload []byte) (vk.Buffer, vk.DeviceMemory, error) {
	if a.failWith != nil {
		return vk.NullBuffer, vk.NullDeviceMemory, a.failWith
	}
	a.allocs++
	a.lastPayload = payload
	return vk.NullBuffer, vk.NullDeviceMemory, nil
}

func (a *countingAllocator) FreeVertexBuffer(buf vk.Buffer, mem vk.DeviceMemory) {
	a.frees++
}

func mustDisk(t *testing.T, name string) *model.Disk {
	t.Helper()
	d, err := model.NewDisk(name, vm.Vec3{}, 1)
	if err != nil {
		t.Fatalf("NewDisk returned error: %v", err)
	}
	return d
}

func TestSceneAddUploadsVertexData(t *testing.T) {
	alloc := &countingAllocator{}
	s := NewScene(alloc)
	d := mustDisk(t, "blackhole")

	if err := s.Add(d.Model); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if alloc.allocs != 1 {
		t.Errorf("Expected exactly 1 buffer allocation, got %d", alloc.allocs)
	}
	if len(alloc.lastPayload) != d.GetVBufferSize() {
		t.Errorf("Uploaded %d Byte, want the full %d Byte vertex payload", len(alloc.lastPayload), d.GetVBufferSize())
	}
	if len(s.Models()) != 1 {
		t.Errorf("Expected 1 model in scene, got %d", len(s.Models()))
	}
}

func TestSceneRemoveFreesExactlyOnce(t *testing.T) {
	alloc := &countingAllocator{}
	s := NewScene(alloc)
	d := mustDisk(t, "blackhole")

	if err := s.Add(d.Model); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	s.Remove(d.Model)
	if alloc.frees != 1 {
		t.Errorf("Expected exactly 1 buffer release, got %d", alloc.frees)
	}
	if len(s.Models()) != 0 {
		t.Errorf("Expected empty scene after Remove, got %d models", len(s.Models()))
	}

	// Removing again must not release the buffers a second time
	s.Remove(d.Model)
	if alloc.frees != 1 {
		t.Errorf("Second Remove released buffers again, frees = %d", alloc.frees)
	}
}

func TestSceneClearReleasesAllBuffers(t *testing.T) {
	alloc := &countingAllocator{}
	s := NewScene(alloc)
	for i := 0; i < 3; i++ {
		d := mustDisk(t, fmt.Sprintf("disk-%d", i))
		if err := s.Add(d.Model); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	s.Clear()
	if alloc.frees != alloc.allocs {
		t.Errorf("Clear released %d of %d allocated buffers", alloc.frees, alloc.allocs)
	}
	if len(s.Models()) != 0 {
		t.Errorf("Expected empty scene after Clear, got %d models", len(s.Models()))
	}
}

func TestSceneAddSurfacesAllocationFailure(t *testing.T) {
	alloc := &countingAllocator{
		failWith: fmt.Errorf("%w: out of device memory", com.ErrDeviceAllocation),
	}
	s := NewScene(alloc)
	d := mustDisk(t, "blackhole")

	err := s.Add(d.Model)
	if err == nil {
		t.Fatalf("Add should fail when the allocator fails")
	}
	if !errors.Is(err, com.ErrDeviceAllocation) {
		t.Errorf("Add should surface the allocation error kind, got: %v", err)
	}
	if len(s.Models()) != 0 {
		t.Errorf("Failed Add must not leave the model in the scene")
	}
	if alloc.frees != 0 {
		t.Errorf("Nothing was allocated, nothing should be freed, frees = %d", alloc.frees)
	}
}

func TestSceneFind(t *testing.T) {
	alloc := &countingAllocator{}
	s := NewScene(alloc)
	d := mustDisk(t, "blackhole")
	if err := s.Add(d.Model); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	found, err := s.Find("blackhole")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if found != d.Model {
		t.Errorf("Find returned a different model")
	}

	_, err = s.Find("nope")
	if err == nil {
		t.Errorf("Find should fail for unknown names")
	}
}
