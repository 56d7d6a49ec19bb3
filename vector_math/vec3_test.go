package vector_math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestCross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	z := x.Cross(y)
	if z != (Vec3{Z: 1}) {
		t.Errorf("x cross y should be the z unit vector but was %v", z)
	}
	zInv := y.Cross(x)
	if zInv != (Vec3{Z: -1}) {
		t.Errorf("y cross x should be the negative z unit vector but was %v", zInv)
	}
}

func TestDot(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}
	w := Vec3{X: -2, Y: 0.5, Z: 1}
	if v.Dot(w) != 2 {
		t.Errorf("v dot w should be 2 but was %f", v.Dot(w))
	}
}

func TestNorm(t *testing.T) {
	v := Vec3{X: 3, Y: 4}
	n := v.Norm()
	if math32.Abs(n.Len()-1) > 1e-6 {
		t.Errorf("Normalized vector should have length 1 but was %f", n.Len())
	}
	if n != (Vec3{X: 0.6, Y: 0.8}) {
		t.Errorf("Normalized vector should be (0.6, 0.8, 0) but was %v", n)
	}
}

func TestDist(t *testing.T) {
	v := Vec3{X: 1, Y: 1, Z: 1}
	w := Vec3{X: 1, Y: 1, Z: 3}
	if v.Dist(w) != 2 {
		t.Errorf("Distance should be 2 but was %f", v.Dist(w))
	}
}
