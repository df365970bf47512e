package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
	HasNormals  bool
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the geometry loaded from a PLY file
type PLYData struct {
	Vertices []core.Tuple // Vertex positions
	Faces    []int        // Triangle indices (3 per triangle), polygons fanned
	Normals  []core.Tuple // Per-vertex normals, empty if not present
}

// LoadPLY loads a PLY file
func LoadPLY(filename string, logger core.Logger) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if logger != nil {
		logger.Printf("Loaded PLY data: %d vertices, %d triangles in %v\n",
			len(data.Vertices), len(data.Faces)/3, time.Since(startTime))
	}
	return data, nil
}

// ParsePLY reads an ASCII or binary PLY stream. Only the vertex positions,
// optional normals and the face vertex lists are kept.
func ParsePLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var src valueSource
	switch header.Format {
	case "ascii":
		src = &asciiSource{scanner: newWordScanner(reader)}
	case "binary_little_endian":
		src = &binarySource{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		src = &binarySource{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	data, err := readPLYBody(src, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return data, nil
}

// parsePLYHeader parses the header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string
	first := true

	for {
		raw, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || raw == "") {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		line := strings.TrimSpace(raw)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}

			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}

			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
				if prop.Name == "nx" {
					header.HasNormals = true
				}
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}

	if header.VertexCount > 0 {
		for _, name := range [3]string{"x", "y", "z"} {
			if header.vertexPropIndex(name) < 0 {
				return nil, fmt.Errorf("vertex element has no %q property", name)
			}
		}
	}
	if header.FaceCount > 0 && header.facePropIndex() < 0 {
		return nil, fmt.Errorf("face element has no vertex_indices list")
	}
	return header, nil
}

func (h *PLYHeader) vertexPropIndex(name string) int {
	for i, p := range h.VertexProps {
		if p.Name == name && !p.IsList {
			return i
		}
	}
	return -1
}

func (h *PLYHeader) facePropIndex() int {
	for i, p := range h.FaceProps {
		if p.IsList && (p.Name == "vertex_indices" || p.Name == "vertex_index") {
			return i
		}
	}
	return -1
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported list types %s %s", prop.ListType, prop.DataType)
		}
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
		if getTypeSize(prop.Type) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported data type: %s", prop.Type)
		}
	}

	return prop, nil
}

// getTypeSize returns the size in bytes of a PLY data type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// valueSource yields successive scalar values of the body regardless of
// encoding
type valueSource interface {
	next(dataType string) (float64, error)
}

type binarySource struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binarySource) next(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.reader, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "char", "int8":
		return float64(int8(buf[0])), nil
	default:
		return float64(buf[0]), nil
	}
}

type asciiSource struct {
	scanner *bufio.Scanner
}

func newWordScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	return s
}

func (a *asciiSource) next(string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", a.scanner.Text())
	}
	return v, nil
}

// readPLYBody reads the vertex then face elements
func readPLYBody(src valueSource, header *PLYHeader) (*PLYData, error) {
	data := &PLYData{
		Vertices: make([]core.Tuple, 0, header.VertexCount),
		Faces:    make([]int, 0, header.FaceCount*3),
	}
	if header.HasNormals {
		data.Normals = make([]core.Tuple, 0, header.VertexCount)
	}

	values := make(map[string]float64, len(header.VertexProps))
	for i := 0; i < header.VertexCount; i++ {
		for _, prop := range header.VertexProps {
			if prop.IsList {
				if _, err := readList(src, prop); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			v, err := src.next(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}
			values[prop.Name] = v
		}

		data.Vertices = append(data.Vertices, core.Point(values["x"], values["y"], values["z"]))
		if header.HasNormals {
			data.Normals = append(data.Normals, core.Vector(values["nx"], values["ny"], values["nz"]))
		}
	}

	faceProp := header.facePropIndex()
	for i := 0; i < header.FaceCount; i++ {
		for j, prop := range header.FaceProps {
			var list []int
			var err error
			if prop.IsList {
				list, err = readList(src, prop)
			} else {
				_, err = src.next(prop.Type)
			}
			if err != nil {
				return nil, fmt.Errorf("face %d property %s: %w", i, prop.Name, err)
			}
			if j != faceProp {
				continue
			}

			if len(list) < 3 {
				return nil, fmt.Errorf("face %d has %d vertices", i, len(list))
			}
			for k := 1; k+1 < len(list); k++ {
				data.Faces = append(data.Faces, list[0], list[k], list[k+1])
			}
		}
	}

	return data, nil
}

func readList(src valueSource, prop PLYProperty) ([]int, error) {
	n, err := src.next(prop.ListType)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative list length %v", n)
	}

	list := make([]int, int(n))
	for k := range list {
		v, err := src.next(prop.DataType)
		if err != nil {
			return nil, err
		}
		list[k] = int(v)
	}
	return list, nil
}

// ToGroup builds a group of triangles. Vertex normals, when present, make
// every triangle smooth.
func (d *PLYData) ToGroup(options *geometry.TriangleMeshOptions) (*geometry.Object, error) {
	opts := geometry.TriangleMeshOptions{}
	if options != nil {
		opts = *options
	}
	if len(d.Normals) > 0 {
		opts.Normals = d.Normals
		opts.NormalIndices = d.Faces
	}
	return geometry.NewTriangleMesh(d.Vertices, d.Faces, &opts)
}
