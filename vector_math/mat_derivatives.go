package vector_math

import "github.com/chewxy/math32"

func New4x4RotXMat(rad float64) Mat {
	m, _ := NewMat(4, 4)
	m[0][0] = 1
	m[1][1] = math32.Cos(float32(rad))
	m[1][2] = -math32.Sin(float32(rad))
	m[2][1] = math32.Sin(float32(rad))
	m[2][2] = math32.Cos(float32(rad))
	m[3][3] = 1
	return m
}

func New4x4RotYMat(rad float64) Mat {
	m, _ := NewMat(4, 4)
	m[0][0] = math32.Cos(float32(rad))
	m[0][2] = math32.Sin(float32(rad))
	m[1][1] = 1
	m[2][0] = -math32.Sin(float32(rad))
	m[2][2] = math32.Cos(float32(rad))
	m[3][3] = 1
	return m
}

func New4x4RotZMat(rad float64) Mat {
	m, _ := NewMat(4, 4)
	m[0][0] = math32.Cos(float32(rad))
	m[0][1] = -math32.Sin(float32(rad))
	m[1][0] = math32.Sin(float32(rad))
	m[1][1] = math32.Cos(float32(rad))
	m[2][2] = 1
	m[3][3] = 1
	return m
}

func NewUnitMat(s uint) Mat {
	um, _ := NewMat(s, s)
	for i := range um {
		um[i][i] = 1
	}
	return um
}

// NewRotation constructs a rotation of rad radians around an arbitrary axis
// through the origin. The axis is normalized if it is not already.
func NewRotation(rad float64, axis Vec3) Mat {
	ux := axis.X
	uy := axis.Y
	uz := axis.Z
	if (ux*ux)+(uy*uy)+(uz*uz) != 1 {
		norm := axis.Norm()
		ux = norm.X
		uy = norm.Y
		uz = norm.Z
	}
	cosT := math32.Cos(float32(rad))
	sinT := math32.Sin(float32(rad))
	rm := NewUnitMat(4)
	rm[0][0] = cosT + ((ux * ux) * (1 - cosT))
	rm[0][1] = (ux*uy)*(1-cosT) - (uz * sinT)
	rm[0][2] = (ux*uz)*(1-cosT) + (uy * sinT)

	rm[1][0] = (uy*ux)*(1-cosT) + (uz * sinT)
	rm[1][1] = cosT + (uy*uy)*(1-cosT)
	rm[1][2] = (uy*uz)*(1-cosT) - (ux * sinT)

	rm[2][0] = (uz*ux)*(1-cosT) - (uy * sinT)
	rm[2][1] = (uz*uy)*(1-cosT) + (ux * sinT)
	rm[2][2] = cosT + (uz*uz)*(1-cosT)

	return rm
}

func NewScale(s Vec3) Mat {
	sm := NewUnitMat(4)
	sm[0][0] = s.X
	sm[1][1] = s.Y
	sm[2][2] = s.Z
	return sm
}

func NewTranslation(t Vec3) Mat {
	tm := NewUnitMat(4)
	tm[0][3] = t.X
	tm[1][3] = t.Y
	tm[2][3] = t.Z
	return tm
}
