package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Kind distinguishes the three kinds of scene tree node
type Kind int

const (
	KindLeaf Kind = iota
	KindGroup
	KindCSG
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	case KindCSG:
		return "csg"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Object is a node in the scene tree: a transformed primitive with a
// material, a transformed group of children, or a CSG combination of two
// subtrees. Every node has at most one parent.
//
// Objects are assembled once and must not be mutated after rendering starts.
type Object struct {
	Name string // Optional label reported by inspection

	kind      Kind
	transform core.Matrix // object-to-parent
	inverse   core.Matrix
	identity  bool

	// Leaf
	shape    Shape
	material material.Material

	// Group
	children []*Object

	// CSG
	op          CSGOperation
	left, right *Object

	parent      *Object
	bounds      core.BoundingBox // parent space
	boundsValid bool
}

func newNode(kind Kind) *Object {
	return &Object{
		kind:      kind,
		transform: core.Identity(),
		inverse:   core.Identity(),
		identity:  true,
	}
}

// NewObject creates a leaf with the default material
func NewObject(shape Shape) *Object {
	o := newNode(KindLeaf)
	o.shape = shape
	o.material = material.New()
	return o
}

// NewSphere creates a unit sphere leaf
func NewSphere() *Object {
	return NewObject(&Sphere{})
}

// NewGlassSphere creates a unit sphere with a glass material
func NewGlassSphere() *Object {
	o := NewSphere()
	o.material = material.Glass()
	return o
}

// NewPlane creates an xz plane leaf
func NewPlane() *Object {
	return NewObject(&Plane{})
}

// NewCube creates a [-1, 1]³ cube leaf
func NewCube() *Object {
	return NewObject(&Cube{})
}

// NewCylinder creates a cylinder leaf spanning (min, max) on y
func NewCylinder(min, max float64, closed bool) *Object {
	return NewObject(&Cylinder{Minimum: min, Maximum: max, Closed: closed})
}

// NewCone creates a double cone leaf spanning (min, max) on y
func NewCone(min, max float64, closed bool) *Object {
	return NewObject(&Cone{Minimum: min, Maximum: max, Closed: closed})
}

// NewTriangleObject creates a flat triangle leaf
func NewTriangleObject(p1, p2, p3 core.Tuple) *Object {
	return NewObject(NewTriangle(p1, p2, p3))
}

// NewSmoothTriangleObject creates a smooth triangle leaf
func NewSmoothTriangleObject(p1, p2, p3, n1, n2, n3 core.Tuple) *Object {
	return NewObject(NewSmoothTriangle(p1, p2, p3, n1, n2, n3))
}

// NewGroup creates a group owning the given children
func NewGroup(children ...*Object) *Object {
	g := newNode(KindGroup)
	for _, c := range children {
		g.AddChild(c)
	}
	return g
}

// Kind returns the node kind
func (o *Object) Kind() Kind {
	return o.kind
}

// Shape returns the primitive of a leaf, nil otherwise
func (o *Object) Shape() Shape {
	return o.shape
}

// Parent returns the owning node, nil for a root
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the children of a group
func (o *Object) Children() []*Object {
	return o.children
}

// Transform returns the object-to-parent matrix
func (o *Object) Transform() core.Matrix {
	return o.transform
}

// InverseTransform returns the parent-to-object matrix
func (o *Object) InverseTransform() core.Matrix {
	return o.inverse
}

// SetTransform sets the object-to-parent matrix. A singular matrix is a
// scene construction error and panics.
func (o *Object) SetTransform(m core.Matrix) {
	o.inverse = m.MustInverse()
	o.transform = m
	o.identity = m == core.Identity()
	o.invalidateBounds()
}

// Material returns the material of a leaf, nil for groups and CSG nodes
func (o *Object) Material() *material.Material {
	if o.kind != KindLeaf {
		return nil
	}
	return &o.material
}

// SetMaterial replaces a leaf's material. On groups and CSG nodes it copies
// the material onto every descendant leaf.
func (o *Object) SetMaterial(m material.Material) {
	switch o.kind {
	case KindLeaf:
		o.material = m
	case KindGroup:
		for _, c := range o.children {
			c.SetMaterial(m)
		}
	case KindCSG:
		o.left.SetMaterial(m)
		o.right.SetMaterial(m)
	}
}

// AddChild appends child to a group. Adding to a non-group, or adding an
// object that already has a parent, panics.
func (o *Object) AddChild(child *Object) {
	if o.kind != KindGroup {
		panic(fmt.Sprintf("geometry: cannot add a child to a %s", o.kind))
	}
	o.adopt(child)
	o.children = append(o.children, child)
	o.invalidateBounds()
}

func (o *Object) adopt(child *Object) {
	if child == nil {
		panic("geometry: nil child")
	}
	if child.parent != nil {
		panic("geometry: object already has a parent")
	}
	for p := o; p != nil; p = p.parent {
		if p == child {
			panic("geometry: object cannot contain itself")
		}
	}
	child.parent = o
}

func (o *Object) invalidateBounds() {
	for p := o; p != nil; p = p.parent {
		p.boundsValid = false
	}
}

// Bounds returns the node's bounding box in its parent's space
func (o *Object) Bounds() core.BoundingBox {
	if !o.boundsValid {
		o.bounds = o.localBounds().Transform(o.transform)
		o.boundsValid = true
	}
	return o.bounds
}

// localBounds returns the box in this node's own space
func (o *Object) localBounds() core.BoundingBox {
	switch o.kind {
	case KindLeaf:
		return o.shape.localBounds()
	case KindGroup:
		box := core.EmptyBoundingBox()
		for _, c := range o.children {
			box = box.Union(c.Bounds())
		}
		return box
	default:
		return o.left.Bounds().Union(o.right.Bounds())
	}
}

// Intersect returns every intersection of the ray, given in parent space,
// with this subtree. Each result carries its leaf's transform composed up
// to this node.
func (o *Object) Intersect(ray core.Ray) Intersections {
	if !o.Bounds().Intersects(ray) {
		return nil
	}

	local := ray
	if !o.identity {
		local = ray.Transform(o.inverse)
	}

	var xs Intersections
	switch o.kind {
	case KindLeaf:
		hits := o.shape.localIntersect(local)
		if len(hits) == 0 {
			return nil
		}
		view := o.view()
		xs = make(Intersections, len(hits))
		for i, h := range hits {
			xs[i] = Intersection{T: h.t, U: h.u, V: h.v, HasUV: h.hasUV, Object: view}
		}
		return xs
	case KindGroup:
		for _, c := range o.children {
			xs = append(xs, c.Intersect(local)...)
		}
	case KindCSG:
		xs = o.intersectCSG(local)
	}

	if !o.identity {
		for i := range xs {
			xs[i].Object = xs[i].Object.compose(o.transform, o.inverse)
		}
	}
	return xs
}

func (o *Object) view() SimpleObject {
	return SimpleObject{Leaf: o, Transform: o.transform, Inverse: o.inverse}
}

// Includes reports whether the leaf behind s belongs to this subtree
func (o *Object) Includes(s SimpleObject) bool {
	switch o.kind {
	case KindLeaf:
		return o == s.Leaf
	case KindGroup:
		for _, c := range o.children {
			if c.Includes(s) {
				return true
			}
		}
		return false
	default:
		return o.left.Includes(s) || o.right.Includes(s)
	}
}

// Walk calls fn for this node and every descendant, parents first
func (o *Object) Walk(fn func(*Object)) {
	fn(o)
	switch o.kind {
	case KindGroup:
		for _, c := range o.children {
			c.Walk(fn)
		}
	case KindCSG:
		o.left.Walk(fn)
		o.right.Walk(fn)
	}
}

// LeafCount returns the number of primitives in the subtree
func (o *Object) LeafCount() int {
	n := 0
	o.Walk(func(node *Object) {
		if node.kind == KindLeaf {
			n++
		}
	})
	return n
}

// SimpleObject is a non-owning view of one leaf with its transform composed
// up to the node that produced the intersection. Two views are the same
// object when they refer to the same leaf.
type SimpleObject struct {
	Leaf      *Object
	Transform core.Matrix // leaf-to-world
	Inverse   core.Matrix // world-to-leaf
}

// Equal reports whether both views refer to the same leaf
func (s SimpleObject) Equal(other SimpleObject) bool {
	return s.Leaf == other.Leaf
}

// Material returns the leaf's material
func (s SimpleObject) Material() *material.Material {
	return &s.Leaf.material
}

// Shape returns the leaf's primitive
func (s SimpleObject) Shape() Shape {
	return s.Leaf.shape
}

// WorldToObject maps a world-space point into the leaf's local space
func (s SimpleObject) WorldToObject(point core.Tuple) core.Tuple {
	return s.Inverse.MultiplyTuple(point)
}

// NormalAt returns the unit world-space surface normal at worldPoint. The
// local normal is carried back with the inverse transpose so non-uniform
// scaling stays correct.
func (s SimpleObject) NormalAt(worldPoint core.Tuple, hit Intersection) core.Tuple {
	localPoint := s.Inverse.MultiplyTuple(worldPoint)
	localNormal := s.Leaf.shape.localNormalAt(localPoint, hit)
	worldNormal := s.Inverse.Transpose().MultiplyTuple(localNormal)
	worldNormal.W = 0
	return worldNormal.Normalize()
}

func (s SimpleObject) compose(parent, parentInverse core.Matrix) SimpleObject {
	return SimpleObject{
		Leaf:      s.Leaf,
		Transform: parent.Multiply(s.Transform),
		Inverse:   s.Inverse.Multiply(parentInverse),
	}
}

// WorldView returns a leaf's view with its transform composed through every
// ancestor up to the root
func (o *Object) WorldView() SimpleObject {
	v := o.view()
	for p := o.parent; p != nil; p = p.parent {
		v = v.compose(p.transform, p.inverse)
	}
	return v
}
