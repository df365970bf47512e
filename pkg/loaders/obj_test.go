package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestParseOBJ_IgnoresUnknownStatements(t *testing.T) {
	input := `There was a young lady named Bright
who traveled much faster than light.
She set out one day
in a relative way,
and came back the previous night.
`
	logger := &recordingLogger{}
	data, err := ParseOBJ(strings.NewReader(input), logger)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(data.Vertices) != 0 || len(data.Groups) != 0 {
		t.Errorf("Expected no geometry, got %d vertices and %d groups", len(data.Vertices), len(data.Groups))
	}

	total := 0
	for _, n := range data.Ignored {
		total += n
	}
	if total != 5 {
		t.Errorf("Expected 5 ignored statements, got %d", total)
	}
	if len(logger.lines) != 1 {
		t.Errorf("Expected ignored statements to be logged once, got %d lines", len(logger.lines))
	}
}

func TestParseOBJ_Vertices(t *testing.T) {
	input := `v -1 1 0
v -1.0000 0.5000 0.0000
v 1 0 0
v 1 1 0
`
	data, err := ParseOBJ(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	expected := []core.Tuple{
		core.Point(-1, 1, 0),
		core.Point(-1, 0.5, 0),
		core.Point(1, 0, 0),
		core.Point(1, 1, 0),
	}
	if len(data.Vertices) != len(expected) {
		t.Fatalf("Expected %d vertices, got %d", len(expected), len(data.Vertices))
	}
	for i, want := range expected {
		if !data.Vertices[i].ApproxEqual(want) {
			t.Errorf("Vertex %d: expected %v, got %v", i, want, data.Vertices[i])
		}
	}
}

func TestParseOBJ_Faces(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		groups        []string
		faces         [][]int
		normalIndices [][]int
	}{
		{
			name: "triangles",
			input: `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0

f 1 2 3
f 1 3 4
`,
			groups:        []string{DefaultGroupName},
			faces:         [][]int{{0, 1, 2, 0, 2, 3}},
			normalIndices: [][]int{{-1, -1, -1, -1, -1, -1}},
		},
		{
			name: "polygon fan",
			input: `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0
v 0 2 0

f 1 2 3 4 5
`,
			groups:        []string{DefaultGroupName},
			faces:         [][]int{{0, 1, 2, 0, 2, 3, 0, 3, 4}},
			normalIndices: [][]int{{-1, -1, -1, -1, -1, -1, -1, -1, -1}},
		},
		{
			name: "named groups",
			input: `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0
g FirstGroup
f 1 2 3
g SecondGroup
f 1 3 4
`,
			groups:        []string{"FirstGroup", "SecondGroup"},
			faces:         [][]int{{0, 1, 2}, {0, 2, 3}},
			normalIndices: [][]int{{-1, -1, -1}, {-1, -1, -1}},
		},
		{
			name: "normal references",
			input: `v 0 1 0
v -1 0 0
v 1 0 0
vn -1 0 0
vn 1 0 0
vn 0 1 0
f 1//3 2//1 3//2
f 1/0/3 2/102/1 3/14/2
`,
			groups:        []string{DefaultGroupName},
			faces:         [][]int{{0, 1, 2, 0, 1, 2}},
			normalIndices: [][]int{{2, 0, 1, 2, 0, 1}},
		},
		{
			name: "relative indices",
			input: `v 0 1 0
v -1 0 0
v 1 0 0
f -3 -2 -1
`,
			groups:        []string{DefaultGroupName},
			faces:         [][]int{{0, 1, 2}},
			normalIndices: [][]int{{-1, -1, -1}},
		},
		{
			name: "reopened group",
			input: `v 0 1 0
v -1 0 0
v 1 0 0
g a
f 1 2 3
g b
f 3 2 1
g a
f 2 3 1
`,
			groups:        []string{"a", "b"},
			faces:         [][]int{{0, 1, 2, 1, 2, 0}, {2, 1, 0}},
			normalIndices: [][]int{{-1, -1, -1, -1, -1, -1}, {-1, -1, -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ParseOBJ(strings.NewReader(tt.input), nil)
			if err != nil {
				t.Fatalf("ParseOBJ failed: %v", err)
			}

			if len(data.Groups) != len(tt.groups) {
				t.Fatalf("Expected %d groups, got %d", len(tt.groups), len(data.Groups))
			}
			for i, g := range data.Groups {
				if g.Name != tt.groups[i] {
					t.Errorf("Group %d: expected name %q, got %q", i, tt.groups[i], g.Name)
				}
				if fmt.Sprint(g.Faces) != fmt.Sprint(tt.faces[i]) {
					t.Errorf("Group %q: expected faces %v, got %v", g.Name, tt.faces[i], g.Faces)
				}
				if fmt.Sprint(g.NormalIndices) != fmt.Sprint(tt.normalIndices[i]) {
					t.Errorf("Group %q: expected normal indices %v, got %v", g.Name, tt.normalIndices[i], g.NormalIndices)
				}
			}
		})
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"vertex out of range", "v 0 0 0\nv 1 0 0\nf 1 2 3\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"normal out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n"},
		{"relative too far", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -4 -2 -1\n"},
		{"two vertices", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad coordinate", "v 0 zero 0\n"},
		{"short vertex", "v 0 0\n"},
		{"bad reference", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.input), nil); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

func TestOBJData_ToGroup(t *testing.T) {
	input := `v -1 1 0
v -1 0 0
v 1 0 0
v 1 1 0
vn 0 0 -1
# The first group has normals on every corner
g Smooth
f 1//1 2//1 3//1
g Flat
f 1 3 4
f 1//1 3 4//1
`
	data, err := ParseOBJ(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	root, err := data.ToGroup(nil)
	if err != nil {
		t.Fatalf("ToGroup failed: %v", err)
	}

	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("Expected 2 subgroups, got %d", len(children))
	}

	tests := []struct {
		name   string
		leaves int
		smooth int
	}{
		{"Smooth", 1, 1},
		{"Flat", 2, 0},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := children[i]
			if sub.Name != tt.name {
				t.Errorf("Expected subgroup %q, got %q", tt.name, sub.Name)
			}
			if sub.LeafCount() != tt.leaves {
				t.Errorf("Expected %d triangles, got %d", tt.leaves, sub.LeafCount())
			}

			smooth := 0
			sub.Walk(func(o *geometry.Object) {
				if tri, ok := o.Shape().(*geometry.Triangle); ok && tri.Smooth {
					smooth++
				}
			})
			if smooth != tt.smooth {
				t.Errorf("Expected %d smooth triangles, got %d", tt.smooth, smooth)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	content := "# one triangle\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write OBJ file: %v", err)
	}

	logger := &recordingLogger{}
	data, err := LoadOBJ(path, logger)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if data.TriangleCount() != 1 {
		t.Errorf("Expected 1 triangle, got %d", data.TriangleCount())
	}
	if len(logger.lines) != 1 {
		t.Errorf("Expected one summary log line, got %v", logger.lines)
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"), nil); err == nil {
		t.Error("Expected error for missing file")
	}
}
