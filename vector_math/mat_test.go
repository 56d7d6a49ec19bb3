package vector_math

import (
	"testing"
)

// TestNewMat calls NewMat and confirms some general size constraints
func TestNewMat(t *testing.T) {
	mat0, _ := NewMat(0, 0)
	if mat0 != nil {
		t.Errorf("Should not be able to create mat0: %s", mat0.ToString())
	}
	for s := uint(1); s <= 6; s++ {
		m, err := NewMat(s, s)
		if err != nil {
			t.Errorf("Error creating matrix of size %dx%d: %s", s, s, err)
		}
		wantBytes := int(s * s * 4)
		if m.ByteSize() != wantBytes {
			t.Errorf("mat%d should have byte size: %d but was %d", s, wantBytes, m.ByteSize())
		}
	}
}

func TestRotationX(t *testing.T) {
	mrx := New4x4RotXMat(ToRad(90))
	mrxComplex := NewRotation(ToRad(90), Vec3{X: 1})

	if !mrx.Equals(&mrxComplex) {
		t.Errorf(
			"RotX not equal to generic roation around X. RotX: \n%s\n Rotation around x-axis: \n%s",
			mrx.ToString(),
			mrxComplex.ToString(),
		)
	}
}

func TestRotationY(t *testing.T) {
	mry := New4x4RotYMat(ToRad(90))
	mryComplex := NewRotation(ToRad(90), Vec3{Y: 1})

	if !mry.Equals(&mryComplex) {
		t.Errorf(
			"RotY not equal to generic roation around Y. RotY: \n%s\n Rotation around y-axis: \n%s",
			mry.ToString(),
			mryComplex.ToString(),
		)
	}
}

func TestRotationZ(t *testing.T) {
	mrz := New4x4RotZMat(ToRad(90))
	mrzComplex := NewRotation(ToRad(90), Vec3{Z: 1})

	if !mrz.Equals(&mrzComplex) {
		t.Errorf(
			"RotZ not equal to generic roation around Z. RotZ: \n%s\n Rotation around z-axis: \n%s",
			mrz.ToString(),
			mrzComplex.ToString(),
		)
	}
}

func TestMultIdentity(t *testing.T) {
	um := NewUnitMat(4)
	tm := NewTranslation(Vec3{X: 1, Y: 2, Z: 3})
	res, err := tm.Mult(&um)
	if err != nil {
		t.Errorf("Error multiplying 4x4 matrices: %s", err)
	}
	if !res.Equals(&tm) {
		t.Errorf(
			"Multiplication with identity changed the matrix. expectation: \n%s\n actual: \n%s",
			tm.ToString(),
			res.ToString(),
		)
	}
}

func TestTranslateAppliesToPoints(t *testing.T) {
	um := NewUnitMat(4)
	moved, err := um.Translate(Vec3{X: 1, Y: -2, Z: 3})
	if err != nil {
		t.Errorf("Error translating unit matrix: %s", err)
	}

	p := Apply(Vec3{X: 1, Y: 1, Z: 1}, 1, moved)
	want := Vec3{X: 2, Y: -1, Z: 4}
	if p != want {
		t.Errorf("Translated point should be %v but was %v", want, p)
	}

	// Directions (w = 0) must not be affected by translation
	d := Apply(Vec3{X: 1, Y: 1, Z: 1}, 0, moved)
	want = Vec3{X: 1, Y: 1, Z: 1}
	if d != want {
		t.Errorf("Translated direction should be %v but was %v", want, d)
	}
}

func TestUnrollIsRowMajor(t *testing.T) {
	m, _ := NewMat(2, 2)
	m[0][0] = 0
	m[0][1] = 1
	m[1][0] = 2
	m[1][1] = 3

	f := m.Unroll()
	for i := range f {
		if f[i] != float32(i) {
			t.Errorf("Unroll()[%d] should be %d but was %f", i, i, f[i])
		}
	}
}
