package main

import (
	"testing"

	"GPU_blackhole_render/renderer"

	"github.com/veandco/go-sdl2/sdl"
	vm "local/vector_math"
)

func TestCameraResetReturnsToSpawnPosition(t *testing.T) {
	c := &renderer.Core{}
	c.DefaultCam()
	spawnPos := c.Cam.Pos
	spawnDir := c.Cam.LookDir

	// Wander off and lock onto a target
	c.Cam.Move(vm.Vec3{X: 4, Z: 7})
	c.Cam.SetTarget(vm.Vec3{X: 1})

	onIteration(&sdl.KeyboardEvent{
		Type:   sdl.KEYUP,
		Keysym: sdl.Keysym{Sym: sdl.K_3},
	}, c)

	if c.Cam.Pos != spawnPos {
		t.Errorf("Reset camera position is %v, spawn position is %v", c.Cam.Pos, spawnPos)
	}
	if c.Cam.LookDir != spawnDir {
		t.Errorf("Reset camera look direction is %v, spawn direction is %v", c.Cam.LookDir, spawnDir)
	}
	if c.Cam.LookTarget != nil {
		t.Errorf("Reset camera should drop its look target")
	}
}
