package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	white = core.White()
	black = core.Black()
)

func TestStripe(t *testing.T) {
	p := NewStripe(white, black)

	tests := []struct {
		name     string
		point    core.Tuple
		expected core.Color
	}{
		{"constant in y", core.Point(0, 2, 0), white},
		{"constant in z", core.Point(0, 0, 2), white},
		{"x=0", core.Point(0, 0, 0), white},
		{"x=0.9", core.Point(0.9, 0, 0), white},
		{"x=1", core.Point(1, 0, 0), black},
		{"x=-0.1", core.Point(-0.1, 0, 0), black},
		{"x=-1", core.Point(-1, 0, 0), black},
		{"x=-1.1", core.Point(-1.1, 0, 0), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ColorAt(tt.point); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPatternAtObject_Transforms(t *testing.T) {
	tests := []struct {
		name             string
		objectTransform  core.Matrix
		patternTransform core.Matrix
		point            core.Tuple
	}{
		{"object transform", core.Scaling(2, 2, 2), core.Identity(), core.Point(1.5, 0, 0)},
		{"pattern transform", core.Identity(), core.Scaling(2, 2, 2), core.Point(1.5, 0, 0)},
		{"both transforms", core.Scaling(2, 2, 2), core.Translation(0.5, 0, 0), core.Point(2.5, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewStripe(white, black)
			p.SetTransform(tt.patternTransform)
			got := PatternAtObject(p, tt.objectTransform.MustInverse(), tt.point)
			if got != white {
				t.Errorf("Expected white, got %v", got)
			}
		})
	}
}

func TestGradient(t *testing.T) {
	p := NewGradient(white, black)

	tests := []struct {
		point    core.Tuple
		expected core.Color
	}{
		{core.Point(0, 0, 0), white},
		{core.Point(0.25, 0, 0), core.NewColor(0.75, 0.75, 0.75)},
		{core.Point(0.5, 0, 0), core.NewColor(0.5, 0.5, 0.5)},
		{core.Point(0.75, 0, 0), core.NewColor(0.25, 0.25, 0.25)},
	}
	for _, tt := range tests {
		if got := p.ColorAt(tt.point); !got.ApproxEqual(tt.expected) {
			t.Errorf("At %v expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}

func TestRing(t *testing.T) {
	p := NewRing(white, black)

	tests := []struct {
		point    core.Tuple
		expected core.Color
	}{
		{core.Point(0, 0, 0), white},
		{core.Point(1, 0, 0), black},
		{core.Point(0, 0, 1), black},
		{core.Point(0.708, 0, 0.708), black},
	}
	for _, tt := range tests {
		if got := p.ColorAt(tt.point); got != tt.expected {
			t.Errorf("At %v expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}

func TestCheckers(t *testing.T) {
	p := NewCheckers(white, black)

	tests := []struct {
		name     string
		point    core.Tuple
		expected core.Color
	}{
		{"x below edge", core.Point(0.99, 0, 0), white},
		{"x past edge", core.Point(1.01, 0, 0), black},
		{"y below edge", core.Point(0, 0.99, 0), white},
		{"y past edge", core.Point(0, 1.01, 0), black},
		{"z below edge", core.Point(0, 0, 0.99), white},
		{"z past edge", core.Point(0, 0, 1.01), black},
		{"negative cell", core.Point(-0.5, 0, 0), black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ColorAt(tt.point); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBlend(t *testing.T) {
	a := NewStripe(white, black)
	b := NewStripe(white, black)
	b.SetTransform(core.RotationY(1.5707963267948966))

	p := NewBlend(a, b)

	// Inside stripe 0 of a and stripe -1 of b after the rotation
	got := p.ColorAt(core.Point(0.5, 0, 0.5))
	if !got.ApproxEqual(core.NewColor(0.5, 0.5, 0.5)) {
		t.Errorf("Expected grey where the blended stripes disagree, got %v", got)
	}
	if got := p.ColorAt(core.Point(0.5, 0, -0.5)); !got.ApproxEqual(white) {
		t.Errorf("Expected white where both stripes agree, got %v", got)
	}

	solid := NewSolid(core.NewColor(0.2, 0.4, 0.6))
	if got := PatternAt(solid, core.Point(10, -3, 7)); got != solid.Color {
		t.Errorf("Expected solid color everywhere, got %v", got)
	}
}

func TestPattern_SetTransform(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
	}{
		{"solid", NewSolid(white)},
		{"stripe", NewStripe(white, black)},
		{"gradient", NewGradient(white, black)},
		{"ring", NewRing(white, black)},
		{"checkers", NewCheckers(white, black)},
		{"blend", NewBlend(NewStripe(white, black), NewSolid(white))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pattern.Transform().IsIdentity() {
				t.Fatalf("Expected a new pattern to start at the identity")
			}
			tt.pattern.SetTransform(core.Scaling(2, 2, 2))
			if tt.pattern.Transform() != core.Scaling(2, 2, 2) {
				t.Errorf("Expected the scaling to be stored, got %v", tt.pattern.Transform())
			}
			if !tt.pattern.InverseTransform().ApproxEqual(core.Scaling(0.5, 0.5, 0.5)) {
				t.Errorf("Expected the inverse scaling, got %v", tt.pattern.InverseTransform())
			}
		})
	}
}
