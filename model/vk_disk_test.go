package model

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	vk "github.com/goki/vulkan"
	vm "local/vector_math"
)

func TestNewDiskVertexLayout(t *testing.T) {
	center := vm.Vec3{X: 1, Y: 2, Z: 3}
	d, err := NewDisk("d", center, 2.5)
	if err != nil {
		t.Fatalf("NewDisk returned error: %v", err)
	}
	if len(d.Mesh.Vertices) != DISK_VERTEX_COUNT {
		t.Errorf("Expected %d vertices, got %d", DISK_VERTEX_COUNT, len(d.Mesh.Vertices))
	}
	if d.Mesh.Vertices[0].Pos != center {
		t.Errorf("Vertex 0 should be the center %v, got %v", center, d.Mesh.Vertices[0].Pos)
	}
	for i := 1; i < len(d.Mesh.Vertices); i++ {
		p := d.Mesh.Vertices[i].Pos
		if p.Z != center.Z {
			t.Errorf("Vertex %d left the disk plane: z = %f, want %f", i, p.Z, center.Z)
		}
		dist := p.Dist(center)
		if math32.Abs(dist-2.5) > 1e-5 {
			t.Errorf("Vertex %d should sit on the rim at distance 2.5, got %f", i, dist)
		}
	}
}

func TestNewDiskRimIsEvenlySpaced(t *testing.T) {
	d, err := NewDisk("d", vm.Vec3{}, 1)
	if err != nil {
		t.Fatalf("NewDisk returned error: %v", err)
	}
	// The full turn is divided into DISK_VERTEX_COUNT-2 steps
	step := 2 * math32.Pi / float32(DISK_VERTEX_COUNT-2)
	for i := 1; i < len(d.Mesh.Vertices); i++ {
		angle := step * float32(i-1)
		want := vm.Vec3{X: math32.Cos(angle), Y: math32.Sin(angle)}
		got := d.Mesh.Vertices[i].Pos
		if got.Dist(want) > 1e-5 {
			t.Errorf("Rim vertex %d at %v, want %v", i, got, want)
		}
	}
}

func TestNewDiskFanClosesOnItself(t *testing.T) {
	d, err := NewDisk("d", vm.Vec3{}, 1)
	if err != nil {
		t.Fatalf("NewDisk returned error: %v", err)
	}
	first := d.Mesh.Vertices[1].Pos
	last := d.Mesh.Vertices[DISK_VERTEX_COUNT-1].Pos
	if first.Dist(last) > 1e-5 {
		t.Errorf("Last rim vertex %v should duplicate the first %v to close the fan", last, first)
	}
}

func TestNewDiskUnitLandmarks(t *testing.T) {
	d, err := NewDisk("d", vm.Vec3{}, 1)
	if err != nil {
		t.Fatalf("NewDisk returned error: %v", err)
	}
	v1 := d.Mesh.Vertices[1].Pos
	if v1.Dist(vm.Vec3{X: 1}) > 1e-5 {
		t.Errorf("First rim vertex should be (1,0,0), got %v", v1)
	}
	// Index 50 sits at angle pi, exactly opposite the first rim vertex
	v50 := d.Mesh.Vertices[50].Pos
	if v50.Dist(vm.Vec3{X: -1}) > 1e-5 {
		t.Errorf("Halfway rim vertex should be (-1,0,0), got %v", v50)
	}
}

func TestNewDiskRejectsBadRadius(t *testing.T) {
	for _, r := range []float32{0, -1, -0.0001, math32.NaN(), math32.Inf(1), math32.Inf(-1)} {
		d, err := NewDisk("d", vm.Vec3{}, r)
		if d != nil {
			t.Errorf("NewDisk(%f) should not return a disk", r)
		}
		if !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("NewDisk(%f) should fail with ErrInvalidRadius, got: %v", r, err)
		}
	}
}

func TestDiskVertexBufferSize(t *testing.T) {
	d, err := NewDisk("d", vm.Vec3{}, 1)
	if err != nil {
		t.Fatalf("NewDisk returned error: %v", err)
	}
	// 100 vertices of 3 float32 each, tightly packed
	want := DISK_VERTEX_COUNT * 3 * 4
	if d.GetVBufferSize() != want {
		t.Errorf("Expected a %d Byte vertex payload, got %d", want, d.GetVBufferSize())
	}
}

type recordedDraw struct {
	boundBuffers []vk.Buffer
	fanCounts    []uint32
}

func (r *recordedDraw) BindVertexBuffer(buf vk.Buffer) {
	r.boundBuffers = append(r.boundBuffers, buf)
}

func (r *recordedDraw) DrawFan(count uint32) {
	r.fanCounts = append(r.fanCounts, count)
}

func TestDiskRecordDrawIssuesSingleFan(t *testing.T) {
	d, err := NewDisk("d", vm.Vec3{}, 1)
	if err != nil {
		t.Fatalf("NewDisk returned error: %v", err)
	}
	rec := &recordedDraw{}
	d.RecordDraw(rec)

	if len(rec.boundBuffers) != 1 {
		t.Fatalf("Expected exactly 1 vertex buffer bind, got %d", len(rec.boundBuffers))
	}
	if rec.boundBuffers[0] != d.VertexBuffer {
		t.Errorf("Bound buffer does not match the model's vertex buffer")
	}
	if len(rec.fanCounts) != 1 {
		t.Fatalf("Expected exactly 1 fan draw, got %d", len(rec.fanCounts))
	}
	if rec.fanCounts[0] != DISK_VERTEX_COUNT {
		t.Errorf("Fan draw should cover %d vertices, got %d", DISK_VERTEX_COUNT, rec.fanCounts[0])
	}
}

func TestDiskUpdateLeavesMeshUntouched(t *testing.T) {
	d, err := NewDisk("d", vm.Vec3{}, 1)
	if err != nil {
		t.Fatalf("NewDisk returned error: %v", err)
	}
	before := make([]Vertex, len(d.Mesh.Vertices))
	copy(before, d.Mesh.Vertices)

	d.Update(0)
	d.Update(1500000000)

	for i := range before {
		if d.Mesh.Vertices[i] != before[i] {
			t.Errorf("Update changed vertex %d from %v to %v", i, before[i], d.Mesh.Vertices[i])
		}
	}
}
