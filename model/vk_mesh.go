package model

import "local/vector_math"

// Mesh holds the CPU-side vertex sequence of a drawable object together with
// its model matrix. The vertex order is significant: meshes are drawn as
// triangle fans, so the first vertex is the shared pivot of every triangle.
type Mesh struct {
	Vertices []Vertex
	ModelMat vector_math.Mat
}

func NewMesh(v []Vertex) *Mesh {
	return &Mesh{
		Vertices: v,
		ModelMat: vector_math.NewUnitMat(4),
	}
}
