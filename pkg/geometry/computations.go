package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Computations holds the shading geometry derived for one hit. The normal
// always faces the eye; Inside records that it was flipped.
type Computations struct {
	T             float64
	Object        SimpleObject
	Hit           Intersection
	Point         core.Tuple
	EyeVector     core.Tuple
	NormalVector  core.Tuple
	Inside        bool
	ReflectVector core.Tuple

	// Point nudged along the normal for shadow and reflection rays, and
	// against it for refraction rays
	OverPoint  core.Tuple
	UnderPoint core.Tuple

	// Refractive indices on the incoming and outgoing sides
	N1, N2 float64
}

// PrepareComputations derives the shading geometry for hit. xs must be every
// intersection along ray sorted by t; it is used to find the refractive
// indices on either side of the surface.
func PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) Computations {
	comps := Computations{
		T:         hit.T,
		Object:    hit.Object,
		Hit:       hit,
		Point:     ray.Position(hit.T),
		EyeVector: ray.Direction.Negate(),
	}

	comps.NormalVector = hit.Object.NormalAt(comps.Point, hit)
	if comps.NormalVector.Dot(comps.EyeVector) < 0 {
		comps.Inside = true
		comps.NormalVector = comps.NormalVector.Negate()
	}

	comps.ReflectVector = ray.Direction.Reflect(comps.NormalVector)
	offset := comps.NormalVector.Multiply(core.Epsilon)
	comps.OverPoint = comps.Point.Add(offset)
	comps.UnderPoint = comps.Point.Subtract(offset)
	comps.N1, comps.N2 = refractiveIndices(hit, xs)

	return comps
}

// refractiveIndices walks xs keeping the list of objects the ray is inside.
// n1 is the innermost object's index before crossing hit, n2 after. An empty
// list means vacuum.
func refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = 1.0, 1.0
	var containers []*Object

	for _, i := range xs {
		isHit := i.Same(hit)
		if isHit {
			n1 = innermostIndex(containers)
		}

		if idx := indexOfLeaf(containers, i.Object.Leaf); idx >= 0 {
			containers = append(containers[:idx], containers[idx+1:]...)
		} else {
			containers = append(containers, i.Object.Leaf)
		}

		if isHit {
			n2 = innermostIndex(containers)
			break
		}
	}
	return n1, n2
}

func innermostIndex(containers []*Object) float64 {
	if len(containers) == 0 {
		return 1.0
	}
	return containers[len(containers)-1].material.RefractiveIndex
}

func indexOfLeaf(containers []*Object, leaf *Object) int {
	for i, c := range containers {
		if c == leaf {
			return i
		}
	}
	return -1
}

// Schlick approximates the Fresnel reflectance at the hit. Total internal
// reflection returns exactly 1.
func (c Computations) Schlick() float64 {
	cos := c.EyeVector.Dot(c.NormalVector)

	if c.N1 > c.N2 {
		n := c.N1 / c.N2
		sin2t := n * n * (1 - cos*cos)
		if sin2t > 1 {
			return 1.0
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := (c.N1 - c.N2) / (c.N1 + c.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}

// RefractionDirection returns the transmitted direction by Snell's law. The
// second result is false under total internal reflection.
func (c Computations) RefractionDirection() (core.Tuple, bool) {
	nRatio := c.N1 / c.N2
	cosI := c.EyeVector.Dot(c.NormalVector)
	sin2t := nRatio * nRatio * (1 - cosI*cosI)
	if sin2t > 1 {
		return core.Tuple{}, false
	}

	cosT := math.Sqrt(1 - sin2t)
	direction := c.NormalVector.Multiply(nRatio*cosI - cosT).
		Subtract(c.EyeVector.Multiply(nRatio))
	return direction, true
}
