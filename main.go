package main

import "C"
import (
	"GPU_blackhole_render/model"
	"GPU_blackhole_render/renderer"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	vm "local/vector_math"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Println("Starting blackhole render")
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

var blackhole *model.Disk

func onIteration(event sdl.Event, c *renderer.Core) {
	switch ev := event.(type) {
	case *sdl.KeyboardEvent:
		if ev.Type == sdl.KEYUP {
			switch ev.Keysym.Sym {
			case sdl.K_1:
				var newProj int
				if c.Cam.ProjectionType == model.CAM_PERSPECTIVE_PROJECTION {
					newProj = model.CAM_ORTHOGRAPHIC_PROJECTION
				} else {
					newProj = model.CAM_PERSPECTIVE_PROJECTION
				}
				log.Printf("Switching projection to -> %d", newProj)
				c.Cam.ProjectionType = newProj
			case sdl.K_2:
				if c.Cam.LookTarget != nil {
					c.Cam.LookTarget = nil
				} else {
					c.Cam.SetTarget(vm.Vec3{})
				}
			case sdl.K_3:
				// Reset camera to where DefaultCam spawned it
				c.Cam.Pos = vm.Vec3{Z: -2}
				c.Cam.LookDir = vm.Vec3{Z: 1}
				c.Cam.LookTarget = nil
			case sdl.K_w:
				c.Cam.Move(vm.Vec3{Z: 1})
			case sdl.K_a:
				c.Cam.Move(vm.Vec3{X: -1})
			case sdl.K_s:
				c.Cam.Move(vm.Vec3{Z: -1})
			case sdl.K_d:
				c.Cam.Move(vm.Vec3{X: 1})
			}
		}
	}
}

func onDraw(elapsed time.Duration, c *renderer.Core) {
	blackhole.Update(elapsed)
}

func main() {
	core := renderer.NewRenderCore()
	core.DefaultCam()
	core.Cam.SetTarget(vm.Vec3{})

	var err error
	blackhole, err = model.NewDisk("blackhole", vm.Vec3{}, 1)
	if err != nil {
		log.Panicf("Failed to build blackhole disk: %s", err)
	}
	// Tilt the disk slightly so the camera does not look at it edge on
	m := vm.NewUnitMat(4)
	m, err = m.Rotate(vm.ToRad(60), vm.Vec3{X: 1})
	if err != nil {
		log.Panicf("Failed to orient blackhole disk: %s", err)
	}
	blackhole.Mesh.ModelMat = m

	err = core.AddToScene(blackhole.Model)
	if err != nil {
		log.Panicf("Failed to upload blackhole disk: %s", err)
	}

	core.Loop(
		onIteration,
		onDraw,
	)
	core.RemoveFromScene(blackhole.Model)
	core.Destroy()
}
