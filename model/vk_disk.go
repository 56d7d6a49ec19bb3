package model

import (
	"errors"
	"time"

	"github.com/chewxy/math32"
	vm "local/vector_math"
)

// DISK_VERTEX_COUNT is the fixed subdivision of every disk fan: one center
// vertex plus 99 rim vertices. The rim step divides the full turn by
// DISK_VERTEX_COUNT-2, so the last rim vertex lands on 2π again and
// duplicates the first one, closing the fan without a seam.
const DISK_VERTEX_COUNT = 100

var ErrInvalidRadius = errors.New("disk radius must be a positive number")

// Disk is a flat circular mesh approximating a filled circle, drawn as a
// single triangle fan. It is the visual stand-in for the blackhole itself.
type Disk struct {
	*Model
	Center vm.Vec3
	Radius float32
}

// NewDisk constructs a disk of the given radius lying in the z = center.Z
// plane. The vertex sequence is generated once here and never mutated
// afterwards. A radius that is not strictly positive and finite is rejected
// instead of producing a degenerate fan.
func NewDisk(name string, center vm.Vec3, radius float32) (*Disk, error) {
	if math32.IsNaN(radius) || math32.IsInf(radius, 0) || radius <= 0 {
		return nil, ErrInvalidRadius
	}
	return &Disk{
		Model:  NewModel(NewMesh(diskFan(center, radius)), name),
		Center: center,
		Radius: radius,
	}, nil
}

// diskFan generates the fan vertex sequence: index 0 is the pivot at the
// circle's center, the remaining vertices sit on the rim, evenly spaced by
// 2π/(DISK_VERTEX_COUNT-2) radians starting at angle 0.
func diskFan(center vm.Vec3, radius float32) []Vertex {
	v := make([]Vertex, DISK_VERTEX_COUNT)
	v[0] = Vertex{Pos: center}
	for i := 1; i < DISK_VERTEX_COUNT; i++ {
		angle := 2 * math32.Pi * float32(i-1) / float32(DISK_VERTEX_COUNT-2)
		v[i] = Vertex{Pos: vm.Vec3{
			X: center.X + radius*math32.Cos(angle),
			Y: center.Y + radius*math32.Sin(angle),
			Z: center.Z,
		}}
	}
	return v
}

// Update advances the disk's per-frame state. Nothing is animated yet.
// TODO: pull the rim vertices towards the center over time to visualize
// gravitational lensing.
func (d *Disk) Update(elapsed time.Duration) {
}
