package renderer

import (
	"GPU_blackhole_render/model"
	"fmt"

	vm "local/vector_math"
)

// Scene owns the list of models currently shown in the 3D world and the device buffers backing
// them. It is deliberately decoupled from the Core via the BufferAllocator interface so its
// bookkeeping (no leaked buffers, no double frees) can be exercised without a device. In the
// future this could grow into a proper scene tree and its corresponding functionality.

type Scene struct {
	alloc  BufferAllocator
	models []*model.Model
}

func NewScene(alloc BufferAllocator) *Scene {
	return &Scene{alloc: alloc}
}

// Models returns the scene content in insertion order. The returned slice is shared, callers
// must not modify it.
func (s *Scene) Models() []*model.Model {
	return s.models
}

func (s *Scene) Find(name string) (*model.Model, error) {
	for i, v := range s.models {
		if v.Name == name {
			return s.models[i], nil
		}
	}
	return nil, fmt.Errorf("model '%s' not found", name)
}

// Add uploads the model's vertex data and hands ownership of the resulting buffer handles to the
// model. If the device cannot back the buffer the model stays out of the scene and the error is
// returned to the caller.
func (s *Scene) Add(m *model.Model) error {
	// Careful, we set references for device memory on an object outside the scene.
	// If the object is dereferenced we will not be able to recover this memory.
	vBuf, vMem, err := s.alloc.AllocateVertexBuffer(m.GetVBufferBytes())
	if err != nil {
		return fmt.Errorf("adding '%s' to scene: %w", m.Name, err)
	}
	m.VertexBuffer = vBuf
	m.VertexBufferMem = vMem
	s.models = append(s.models, m)
	return nil
}

// Remove drops the reference to a model found in the scene and releases its buffers exactly
// once. Comparison is done naively by name until more sophisticated methods are required.
func (s *Scene) Remove(m *model.Model) {
	for i, v := range s.models {
		if v.Name == m.Name {
			s.alloc.FreeVertexBuffer(v.VertexBuffer, v.VertexBufferMem)
			s.models = append(s.models[:i], s.models[i+1:]...)
			return
		}
	}
}

func (s *Scene) Clear() {
	for len(s.models) > 0 {
		s.Remove(s.models[0])
	}
}

// Core delegation, keeps the external API of the render core in one place.

func (c *Core) DefaultCam() {
	cam := model.NewCamera(45, 0.1, 100)
	cam.ProjectionType = model.CAM_PERSPECTIVE_PROJECTION
	cam.Move(vm.Vec3{X: 0, Z: -2})
	c.Cam = cam
}

func (c *Core) FindInScene(name string) (*model.Model, error) {
	return c.scene.Find(name)
}

func (c *Core) AddToScene(m *model.Model) error {
	return c.scene.Add(m)
}

func (c *Core) RemoveFromScene(m *model.Model) {
	c.scene.Remove(m)
}

func (c *Core) ClearScene() {
	c.scene.Clear()
}
