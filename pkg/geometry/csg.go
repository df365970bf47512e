package geometry

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CSGOperation selects how a CSG node combines its two operands
type CSGOperation int

const (
	CSGUnion CSGOperation = iota
	CSGIntersection
	CSGDifference
)

func (op CSGOperation) String() string {
	switch op {
	case CSGUnion:
		return "union"
	case CSGIntersection:
		return "intersection"
	case CSGDifference:
		return "difference"
	}
	return fmt.Sprintf("CSGOperation(%d)", int(op))
}

// ParseCSGOperation maps "union", "intersection" or "difference" to an operation
func ParseCSGOperation(name string) (CSGOperation, error) {
	switch strings.ToLower(name) {
	case "union":
		return CSGUnion, nil
	case "intersection":
		return CSGIntersection, nil
	case "difference":
		return CSGDifference, nil
	}
	return 0, fmt.Errorf("unknown CSG operation %q", name)
}

// Allowed reports whether a boundary crossing is a visible surface of the
// combined solid. leftHit says which operand was crossed; inLeft and inRight
// are the containment states before the crossing.
func (op CSGOperation) Allowed(leftHit, inLeft, inRight bool) bool {
	switch op {
	case CSGUnion:
		return (leftHit && !inRight) || (!leftHit && !inLeft)
	case CSGIntersection:
		return (leftHit && inRight) || (!leftHit && inLeft)
	case CSGDifference:
		return (leftHit && !inRight) || (!leftHit && inLeft)
	}
	return false
}

// contains reports whether a point inside/outside the operands as given is
// inside the combined solid
func (op CSGOperation) contains(inLeft, inRight bool) bool {
	switch op {
	case CSGUnion:
		return inLeft || inRight
	case CSGIntersection:
		return inLeft && inRight
	case CSGDifference:
		return inLeft && !inRight
	}
	return false
}

// NewUnion creates a CSG node keeping everything in either operand
func NewUnion(left, right *Object) *Object {
	return newCSG(CSGUnion, left, right)
}

// NewCSGIntersection creates a CSG node keeping only what both operands share
func NewCSGIntersection(left, right *Object) *Object {
	return newCSG(CSGIntersection, left, right)
}

// NewDifference creates a CSG node keeping the left operand minus the right
func NewDifference(left, right *Object) *Object {
	return newCSG(CSGDifference, left, right)
}

// NewCSG creates a CSG node for op
func NewCSG(op CSGOperation, left, right *Object) *Object {
	return newCSG(op, left, right)
}

func newCSG(op CSGOperation, left, right *Object) *Object {
	o := newNode(KindCSG)
	o.op = op
	o.adopt(left)
	o.adopt(right)
	o.left = left
	o.right = right
	return o
}

// Operation returns the CSG operation of a CSG node
func (o *Object) Operation() CSGOperation {
	return o.op
}

// Left returns the left operand of a CSG node
func (o *Object) Left() *Object {
	return o.left
}

// Right returns the right operand of a CSG node
func (o *Object) Right() *Object {
	return o.right
}

func (o *Object) intersectCSG(local core.Ray) Intersections {
	xs := append(o.left.Intersect(local), o.right.Intersect(local)...)
	xs.Sort()
	return o.filterIntersections(xs)
}

// filterIntersections scans t-sorted hits of both operands, tracking whether
// the ray is inside each, and keeps the crossings op allows.
//
// Crossings of both operands within Epsilon of each other are one
// simultaneous event: it is kept, as its first allowed crossing, only when it
// changes whether the ray is inside the combined solid. This keeps A-A empty
// and A∪A a single shell. Runs of crossings from one operand alone, such as
// a tangent double root, go through Allowed one at a time.
func (o *Object) filterIntersections(xs Intersections) Intersections {
	var inLeft, inRight bool
	var result Intersections

	cross := func(leftHit bool) {
		if leftHit {
			inLeft = !inLeft
		} else {
			inRight = !inRight
		}
	}

	for start := 0; start < len(xs); {
		end := start + 1
		for end < len(xs) && xs[end].T-xs[start].T < core.Epsilon {
			end++
		}

		leftHits := make([]bool, end-start)
		mixed := false
		for k := start; k < end; k++ {
			leftHits[k-start] = o.left.Includes(xs[k].Object)
			if leftHits[k-start] != leftHits[0] {
				mixed = true
			}
		}

		if !mixed {
			for k := start; k < end; k++ {
				leftHit := leftHits[k-start]
				if o.op.Allowed(leftHit, inLeft, inRight) {
					result = append(result, xs[k])
				}
				cross(leftHit)
			}
			start = end
			continue
		}

		before := o.op.contains(inLeft, inRight)
		keep := -1
		for k := start; k < end; k++ {
			leftHit := leftHits[k-start]
			if keep < 0 && o.op.Allowed(leftHit, inLeft, inRight) {
				keep = k
			}
			cross(leftHit)
		}

		if before != o.op.contains(inLeft, inRight) {
			if keep < 0 {
				keep = start
			}
			result = append(result, xs[keep])
		}
		start = end
	}
	return result
}
