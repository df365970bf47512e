package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	// Normals is a pool of vertex normals. NormalIndices parallels the face
	// index list; a triangle whose three corners all have a normal index is
	// smooth-shaded, the rest are flat.
	Normals       []core.Tuple
	NormalIndices []int

	Material *material.Material // Defaults to material.New()

	// Groups with more children than this are split into a hierarchy of
	// subgroups. 0 keeps a flat group.
	LeafThreshold int
}

// NewTriangleMesh creates a group of triangle leaves from vertices and face
// indices, each group of 3 indices forming a triangle
func NewTriangleMesh(vertices []core.Tuple, faces []int, options *TriangleMeshOptions) (*Object, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if options.NormalIndices != nil && len(options.NormalIndices) != len(faces) {
		return nil, fmt.Errorf("normal indices (%d) must match face indices (%d)", len(options.NormalIndices), len(faces))
	}

	mat := material.New()
	if options.Material != nil {
		mat = *options.Material
	}

	group := NewGroup()
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range [0, %d)", i/3, idx, len(vertices))
			}
		}

		var tri *Object
		if n0, n1, n2, ok := triangleNormals(options, i); ok {
			tri = NewSmoothTriangleObject(vertices[i0], vertices[i1], vertices[i2], n0, n1, n2)
		} else {
			tri = NewTriangleObject(vertices[i0], vertices[i1], vertices[i2])
		}
		tri.material = mat
		group.AddChild(tri)
	}

	if options.LeafThreshold > 0 {
		group.Divide(options.LeafThreshold)
	}
	return group, nil
}

func triangleNormals(options *TriangleMeshOptions, faceStart int) (n0, n1, n2 core.Tuple, ok bool) {
	if options.NormalIndices == nil {
		return n0, n1, n2, false
	}
	var ns [3]core.Tuple
	for k := 0; k < 3; k++ {
		idx := options.NormalIndices[faceStart+k]
		if idx < 0 || idx >= len(options.Normals) {
			return n0, n1, n2, false
		}
		ns[k] = options.Normals[idx]
	}
	return ns[0], ns[1], ns[2], true
}
