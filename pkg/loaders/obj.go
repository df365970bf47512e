package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// DefaultGroupName collects faces that appear before any "g" statement
const DefaultGroupName = "default"

// OBJGroup is a named run of triangles. Faces and NormalIndices hold three
// entries per triangle; a normal index of -1 means the corner has none.
type OBJGroup struct {
	Name          string
	Faces         []int
	NormalIndices []int
}

// OBJData contains the geometry loaded from a Wavefront OBJ file
type OBJData struct {
	Vertices []core.Tuple
	Normals  []core.Tuple
	Groups   []*OBJGroup // In order of first appearance

	// Ignored counts statements that were skipped, by keyword
	Ignored map[string]int
}

// LoadOBJ loads an OBJ file
func LoadOBJ(filename string, logger core.Logger) (*OBJData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if logger != nil {
		logger.Printf("Loaded OBJ data: %d vertices, %d triangles, %d groups in %v\n",
			len(data.Vertices), data.TriangleCount(), len(data.Groups), time.Since(startTime))
	}
	return data, nil
}

// ParseOBJ reads vertices, vertex normals, faces and groups. Other
// statements are counted and logged once at the end.
func ParseOBJ(r io.Reader, logger core.Logger) (*OBJData, error) {
	data := &OBJData{Ignored: make(map[string]int)}
	groups := make(map[string]*OBJGroup)

	var active *OBJGroup
	selectGroup := func(name string) {
		g, ok := groups[name]
		if !ok {
			g = &OBJGroup{Name: name}
			groups[name] = g
			data.Groups = append(data.Groups, g)
		}
		active = g
	}
	current := func() *OBJGroup {
		if active == nil {
			selectGroup(DefaultGroupName)
		}
		return active
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			x, y, z, err := parseTriple(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNum, err)
			}
			data.Vertices = append(data.Vertices, core.Point(x, y, z))
		case "vn":
			x, y, z, err := parseTriple(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNum, err)
			}
			data.Normals = append(data.Normals, core.Vector(x, y, z))
		case "f":
			if err := data.addFace(current(), fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNum, err)
			}
		case "g":
			name := DefaultGroupName
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
			selectGroup(name)
		default:
			data.Ignored[fields[0]]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}

	if logger != nil && len(data.Ignored) > 0 {
		keys := make([]string, 0, len(data.Ignored))
		total := 0
		for k, n := range data.Ignored {
			keys = append(keys, k)
			total += n
		}
		sort.Strings(keys)
		logger.Printf("OBJ: ignored %d unsupported statements (%s)\n", total, strings.Join(keys, ", "))
	}

	return data, nil
}

func parseTriple(fields []string) (x, y, z float64, err error) {
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var v [3]float64
	for i := range v {
		v[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid coordinate %q", fields[i])
		}
	}
	return v[0], v[1], v[2], nil
}

// addFace resolves the corner references of one polygon and fans it into
// triangles
func (d *OBJData) addFace(g *OBJGroup, refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("polygon needs at least 3 vertices, got %d", len(refs))
	}

	verts := make([]int, len(refs))
	norms := make([]int, len(refs))
	for i, ref := range refs {
		v, n, err := d.parseRef(ref)
		if err != nil {
			return err
		}
		verts[i], norms[i] = v, n
	}

	for k := 1; k+1 < len(refs); k++ {
		g.Faces = append(g.Faces, verts[0], verts[k], verts[k+1])
		g.NormalIndices = append(g.NormalIndices, norms[0], norms[k], norms[k+1])
	}
	return nil
}

// parseRef parses v, v/vt, v//vn or v/vt/vn into zero-based indices. The
// normal index is -1 when absent. Texture coordinates are ignored.
func (d *OBJData) parseRef(ref string) (vertex, normal int, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return 0, 0, fmt.Errorf("invalid vertex reference %q", ref)
	}

	vertex, err = resolveIndex(parts[0], len(d.Vertices))
	if err != nil {
		return 0, 0, fmt.Errorf("vertex reference %q: %w", ref, err)
	}

	normal = -1
	if len(parts) == 3 && parts[2] != "" {
		normal, err = resolveIndex(parts[2], len(d.Normals))
		if err != nil {
			return 0, 0, fmt.Errorf("normal reference %q: %w", ref, err)
		}
	}
	return vertex, normal, nil
}

// resolveIndex converts a one-based (or negative, relative) OBJ index
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (%d defined)", i, count)
}

// TriangleCount returns the number of triangles across all groups
func (d *OBJData) TriangleCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Faces) / 3
	}
	return n
}

// ToGroup builds a group holding one named subgroup per OBJ group. Faces
// with a normal on every corner become smooth triangles.
func (d *OBJData) ToGroup(options *geometry.TriangleMeshOptions) (*geometry.Object, error) {
	opts := geometry.TriangleMeshOptions{}
	if options != nil {
		opts = *options
	}
	opts.Normals = d.Normals

	root := geometry.NewGroup()
	for _, g := range d.Groups {
		if len(g.Faces) == 0 {
			continue
		}
		opts.NormalIndices = g.NormalIndices
		sub, err := geometry.NewTriangleMesh(d.Vertices, g.Faces, &opts)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		sub.Name = g.Name
		root.AddChild(sub)
	}
	return root, nil
}
