package geometry

import "sort"

// Divide splits every group in the subtree with more than threshold children
// into two subgroups along the longest axis of the children's bounds, at the
// median centroid. Children with unbounded extents stay in place. The
// rendered result is unchanged; only the amount of box pruning changes.
func (o *Object) Divide(threshold int) {
	if threshold < 2 {
		threshold = 2
	}
	o.divide(threshold)
}

func (o *Object) divide(threshold int) {
	switch o.kind {
	case KindGroup:
		if len(o.children) > threshold {
			o.partitionChildren()
		}
		for _, c := range o.children {
			c.divide(threshold)
		}
	case KindCSG:
		o.left.divide(threshold)
		o.right.divide(threshold)
	}
}

func (o *Object) partitionChildren() {
	var finite, unbounded []*Object
	for _, c := range o.children {
		if c.Bounds().IsFinite() {
			finite = append(finite, c)
		} else {
			unbounded = append(unbounded, c)
		}
	}
	if len(finite) < 2 {
		return
	}

	box := finite[0].Bounds()
	for _, c := range finite[1:] {
		box = box.Union(c.Bounds())
	}
	axis := box.LongestAxis()

	sort.SliceStable(finite, func(i, j int) bool {
		return finite[i].Bounds().Center().Axis(axis) < finite[j].Bounds().Center().Axis(axis)
	})
	mid := len(finite) / 2

	for _, c := range o.children {
		c.parent = nil
	}
	o.children = nil
	for _, c := range unbounded {
		o.AddChild(c)
	}
	o.AddChild(NewGroup(finite[:mid]...))
	o.AddChild(NewGroup(finite[mid:]...))
}
