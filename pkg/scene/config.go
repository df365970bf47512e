package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// DefaultFOVDeg is used when the camera omits fovDeg
const DefaultFOVDeg = 60

// Vec3 is an (x, y, z) triple or an (r, g, b) colour in JSON
type Vec3 [3]float64

func (v Vec3) point() core.Tuple  { return core.Point(v[0], v[1], v[2]) }
func (v Vec3) vector() core.Tuple { return core.Vector(v[0], v[1], v[2]) }
func (v Vec3) color() core.Color  { return core.NewColor(v[0], v[1], v[2]) }

// Config is a JSON scene description
type Config struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	MaxDepth    int                    `json:"maxDepth,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Lights      []LightCfg             `json:"lights"`
	Materials   map[string]MaterialCfg `json:"materials,omitempty"`
	Objects     []ObjectCfg            `json:"objects"`

	baseDir string // Mesh files are resolved against this
}

type CameraCfg struct {
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	FOVDeg float64 `json:"fovDeg,omitempty"`
	From   Vec3    `json:"from"`
	To     Vec3    `json:"to"`
	Up     *Vec3   `json:"up,omitempty"` // defaults to +y
}

type LightCfg struct {
	Position  Vec3  `json:"position"`
	Intensity *Vec3 `json:"intensity,omitempty"` // defaults to white
}

// MaterialCfg overrides fields of a base material. Omitted fields keep the
// base value.
type MaterialCfg struct {
	Base            string      `json:"base,omitempty"` // "default", "glass", "mirror" or a named material
	Color           *Vec3       `json:"color,omitempty"`
	Ambient         *float64    `json:"ambient,omitempty"`
	Diffuse         *float64    `json:"diffuse,omitempty"`
	Specular        *float64    `json:"specular,omitempty"`
	Shininess       *float64    `json:"shininess,omitempty"`
	Reflective      *float64    `json:"reflective,omitempty"`
	Transparency    *float64    `json:"transparency,omitempty"`
	RefractiveIndex *float64    `json:"refractiveIndex,omitempty"`
	CastsShadows    *bool       `json:"castsShadows,omitempty"`
	Pattern         *PatternCfg `json:"pattern,omitempty"`
}

type PatternCfg struct {
	Type      string         `json:"type"` // solid, stripe, gradient, ring, checkers, blend
	A         Vec3           `json:"a"`
	B         Vec3           `json:"b"`
	Patterns  []PatternCfg   `json:"patterns,omitempty"` // The two inputs of a blend
	Transform []TransformCfg `json:"transform,omitempty"`
}

// TransformCfg is one step of a transform list; exactly one field is set.
// Steps apply in list order. Rotations are in degrees.
type TransformCfg struct {
	Translate *Vec3       `json:"translate,omitempty"`
	Scale     *Vec3       `json:"scale,omitempty"`
	RotateX   *float64    `json:"rotateX,omitempty"`
	RotateY   *float64    `json:"rotateY,omitempty"`
	RotateZ   *float64    `json:"rotateZ,omitempty"`
	Shear     *[6]float64 `json:"shear,omitempty"` // xy, xz, yx, yz, zx, zy
}

type ObjectCfg struct {
	Type        string         `json:"type"`
	Name        string         `json:"name,omitempty"`
	Material    string         `json:"material,omitempty"`    // Named material
	MaterialDef *MaterialCfg   `json:"materialDef,omitempty"` // Inline material
	Transform   []TransformCfg `json:"transform,omitempty"`

	// cylinder, cone
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Closed bool     `json:"closed,omitempty"`

	// triangle
	Points  []Vec3 `json:"points,omitempty"`
	Normals []Vec3 `json:"normals,omitempty"` // Three normals make it smooth

	// group
	Children []ObjectCfg `json:"children,omitempty"`

	// union, intersection, difference
	Left  *ObjectCfg `json:"left,omitempty"`
	Right *ObjectCfg `json:"right,omitempty"`

	// obj, ply
	File          string `json:"file,omitempty"`
	LeafThreshold int    `json:"leafThreshold,omitempty"`
}

// LoadConfig reads a JSON scene file
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cfg, nil
}

// ParseConfig decodes a JSON scene description. Unknown fields are errors.
func ParseConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}
	return &cfg, nil
}

// Build validates the description and assembles the scene. Defaults are
// applied here: camera size and field of view, +y up, white lights.
func (c *Config) Build(logger core.Logger) (*Scene, error) {
	if len(c.Lights) == 0 {
		return nil, fmt.Errorf("config has no lights")
	}
	if c.MaxDepth < 0 {
		return nil, fmt.Errorf("maxDepth must not be negative, got %d", c.MaxDepth)
	}

	camera, err := c.Camera.Build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	b := &builder{
		cfg:       c,
		logger:    logger,
		materials: make(map[string]material.Material, len(c.Materials)),
		resolving: make(map[string]bool),
	}
	for name := range c.Materials {
		if _, err := b.namedMaterial(name); err != nil {
			return nil, err
		}
	}

	w := world.New()
	if c.MaxDepth > 0 {
		w.MaxDepth = c.MaxDepth
	}
	for _, l := range c.Lights {
		w.AddLight(l.Build())
	}
	for i, oc := range c.Objects {
		o, err := b.object(oc, nil, fmt.Sprintf("objects[%d]", i))
		if err != nil {
			return nil, err
		}
		w.AddObject(o)
	}

	name := c.Name
	if name == "" {
		name = "custom"
	}
	return &Scene{Name: name, World: w, Camera: camera}, nil
}

func (cc CameraCfg) Build() (*renderer.Camera, error) {
	if cc.Width == 0 {
		cc.Width = DefaultWidth
	}
	if cc.Height == 0 {
		cc.Height = DefaultHeight
	}
	if cc.FOVDeg == 0 {
		cc.FOVDeg = DefaultFOVDeg
	}
	up := Vec3{0, 1, 0}
	if cc.Up != nil {
		up = *cc.Up
	}
	return NewCamera(CameraConfig{
		Width:       cc.Width,
		Height:      cc.Height,
		FieldOfView: cc.FOVDeg * math.Pi / 180,
		From:        cc.From.point(),
		To:          cc.To.point(),
		Up:          up.vector(),
	})
}

func (lc LightCfg) Build() lights.PointLight {
	intensity := core.White()
	if lc.Intensity != nil {
		intensity = lc.Intensity.color()
	}
	return lights.NewPointLight(lc.Position.point(), intensity)
}

// TransformCfgs is an ordered transform list
type TransformCfgs []TransformCfg

// Matrix composes the steps in list order and rejects a singular result
func (ts TransformCfgs) Matrix() (core.Matrix, error) {
	steps := make([]core.Matrix, 0, len(ts))
	for i, t := range ts {
		m, err := t.matrix()
		if err != nil {
			return core.Matrix{}, fmt.Errorf("transform[%d]: %w", i, err)
		}
		steps = append(steps, m)
	}
	m := core.Chain(steps...)
	if _, ok := m.Inverse(); !ok {
		return core.Matrix{}, fmt.Errorf("transform is not invertible")
	}
	return m, nil
}

func (t TransformCfg) matrix() (core.Matrix, error) {
	const deg = math.Pi / 180
	var m core.Matrix
	set := 0
	if t.Translate != nil {
		m, set = core.Translation(t.Translate[0], t.Translate[1], t.Translate[2]), set+1
	}
	if t.Scale != nil {
		m, set = core.Scaling(t.Scale[0], t.Scale[1], t.Scale[2]), set+1
	}
	if t.RotateX != nil {
		m, set = core.RotationX(*t.RotateX*deg), set+1
	}
	if t.RotateY != nil {
		m, set = core.RotationY(*t.RotateY*deg), set+1
	}
	if t.RotateZ != nil {
		m, set = core.RotationZ(*t.RotateZ*deg), set+1
	}
	if t.Shear != nil {
		s := t.Shear
		m, set = core.Shearing(s[0], s[1], s[2], s[3], s[4], s[5]), set+1
	}
	if set != 1 {
		return core.Matrix{}, fmt.Errorf("each step needs exactly one operation, got %d", set)
	}
	return m, nil
}

func (pc PatternCfg) Build() (material.Pattern, error) {
	a, b := pc.A.color(), pc.B.color()

	var p material.Pattern
	switch pc.Type {
	case "solid":
		p = material.NewSolid(a)
	case "stripe":
		p = material.NewStripe(a, b)
	case "gradient":
		p = material.NewGradient(a, b)
	case "ring":
		p = material.NewRing(a, b)
	case "checkers":
		p = material.NewCheckers(a, b)
	case "blend":
		if len(pc.Patterns) != 2 {
			return nil, fmt.Errorf("blend needs exactly 2 patterns, got %d", len(pc.Patterns))
		}
		first, err := pc.Patterns[0].Build()
		if err != nil {
			return nil, fmt.Errorf("blend[0]: %w", err)
		}
		second, err := pc.Patterns[1].Build()
		if err != nil {
			return nil, fmt.Errorf("blend[1]: %w", err)
		}
		p = material.NewBlend(first, second)
	default:
		return nil, fmt.Errorf("unknown pattern type %q", pc.Type)
	}

	if len(pc.Transform) > 0 {
		m, err := TransformCfgs(pc.Transform).Matrix()
		if err != nil {
			return nil, err
		}
		p.SetTransform(m)
	}
	return p, nil
}

// builder carries the state shared while assembling one config
type builder struct {
	cfg       *Config
	logger    core.Logger
	materials map[string]material.Material
	resolving map[string]bool // Guards against cyclic bases
}

func (b *builder) namedMaterial(name string) (material.Material, error) {
	if m, ok := b.materials[name]; ok {
		return m, nil
	}
	mc, ok := b.cfg.Materials[name]
	if !ok {
		return material.Material{}, fmt.Errorf("unknown material %q", name)
	}
	if b.resolving[name] {
		return material.Material{}, fmt.Errorf("material %q has a cyclic base", name)
	}
	b.resolving[name] = true
	defer delete(b.resolving, name)

	m, err := b.material(mc)
	if err != nil {
		return material.Material{}, fmt.Errorf("material %q: %w", name, err)
	}
	b.materials[name] = m
	return m, nil
}

func (b *builder) material(mc MaterialCfg) (material.Material, error) {
	var m material.Material
	switch mc.Base {
	case "", "default":
		m = material.New()
	case "glass":
		m = material.Glass()
	case "mirror":
		m = material.Mirror()
	default:
		base, err := b.namedMaterial(mc.Base)
		if err != nil {
			return material.Material{}, err
		}
		m = base
	}

	if mc.Color != nil {
		m.Color = mc.Color.color()
	}
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{mc.Ambient, &m.Ambient},
		{mc.Diffuse, &m.Diffuse},
		{mc.Specular, &m.Specular},
		{mc.Shininess, &m.Shininess},
		{mc.Reflective, &m.Reflective},
		{mc.Transparency, &m.Transparency},
		{mc.RefractiveIndex, &m.RefractiveIndex},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if mc.CastsShadows != nil {
		m.CastsShadows = *mc.CastsShadows
	}
	if mc.Pattern != nil {
		p, err := mc.Pattern.Build()
		if err != nil {
			return material.Material{}, fmt.Errorf("pattern: %w", err)
		}
		m.Pattern = p
	}

	if err := m.Validate(); err != nil {
		return material.Material{}, err
	}
	return m, nil
}

// objectMaterial resolves the material an object declares, falling back to
// the one inherited from its parent. nil means none was given anywhere.
func (b *builder) objectMaterial(oc ObjectCfg, inherited *material.Material) (*material.Material, error) {
	if oc.Material != "" && oc.MaterialDef != nil {
		return nil, fmt.Errorf("material and materialDef are exclusive")
	}
	if oc.Material != "" {
		m, err := b.namedMaterial(oc.Material)
		if err != nil {
			return nil, err
		}
		return &m, nil
	}
	if oc.MaterialDef != nil {
		m, err := b.material(*oc.MaterialDef)
		if err != nil {
			return nil, err
		}
		return &m, nil
	}
	return inherited, nil
}

func (b *builder) object(oc ObjectCfg, inherited *material.Material, path string) (*geometry.Object, error) {
	o, err := b.buildObject(oc, inherited, path)
	if err != nil {
		return nil, err
	}
	if len(oc.Transform) > 0 {
		m, err := TransformCfgs(oc.Transform).Matrix()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		o.SetTransform(m)
	}
	if oc.Name != "" {
		o.Name = oc.Name
	}
	return o, nil
}

func (b *builder) buildObject(oc ObjectCfg, inherited *material.Material, path string) (*geometry.Object, error) {
	mat, err := b.objectMaterial(oc, inherited)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	leaf := func(o *geometry.Object) *geometry.Object {
		if mat != nil {
			o.SetMaterial(*mat)
		}
		return o
	}

	switch oc.Type {
	case "sphere":
		return leaf(geometry.NewSphere()), nil
	case "plane":
		return leaf(geometry.NewPlane()), nil
	case "cube":
		return leaf(geometry.NewCube()), nil
	case "cylinder", "cone":
		lo, hi := math.Inf(-1), math.Inf(1)
		if oc.Min != nil {
			lo = *oc.Min
		}
		if oc.Max != nil {
			hi = *oc.Max
		}
		if lo > hi {
			return nil, fmt.Errorf("%s: min %v exceeds max %v", path, lo, hi)
		}
		if oc.Type == "cylinder" {
			return leaf(geometry.NewCylinder(lo, hi, oc.Closed)), nil
		}
		return leaf(geometry.NewCone(lo, hi, oc.Closed)), nil
	case "triangle":
		if len(oc.Points) != 3 {
			return nil, fmt.Errorf("%s: triangle needs 3 points, got %d", path, len(oc.Points))
		}
		p1, p2, p3 := oc.Points[0].point(), oc.Points[1].point(), oc.Points[2].point()
		if p2.Subtract(p1).Cross(p3.Subtract(p1)).MagnitudeSquared() == 0 {
			return nil, fmt.Errorf("%s: triangle is degenerate", path)
		}
		switch len(oc.Normals) {
		case 0:
			return leaf(geometry.NewTriangleObject(p1, p2, p3)), nil
		case 3:
			return leaf(geometry.NewSmoothTriangleObject(p1, p2, p3,
				oc.Normals[0].vector(), oc.Normals[1].vector(), oc.Normals[2].vector())), nil
		default:
			return nil, fmt.Errorf("%s: triangle needs 0 or 3 normals, got %d", path, len(oc.Normals))
		}
	case "group":
		g := geometry.NewGroup()
		for i, cc := range oc.Children {
			child, err := b.object(cc, mat, fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			g.AddChild(child)
		}
		return g, nil
	case "union", "intersection", "difference":
		op, err := geometry.ParseCSGOperation(oc.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if oc.Left == nil || oc.Right == nil {
			return nil, fmt.Errorf("%s: %s needs left and right", path, oc.Type)
		}
		left, err := b.object(*oc.Left, mat, path+".left")
		if err != nil {
			return nil, err
		}
		right, err := b.object(*oc.Right, mat, path+".right")
		if err != nil {
			return nil, err
		}
		return geometry.NewCSG(op, left, right), nil
	case "obj", "ply":
		return b.mesh(oc, mat, path)
	case "":
		return nil, fmt.Errorf("%s: missing type", path)
	default:
		return nil, fmt.Errorf("%s: unknown type %q", path, oc.Type)
	}
}

func (b *builder) mesh(oc ObjectCfg, mat *material.Material, path string) (*geometry.Object, error) {
	if oc.File == "" {
		return nil, fmt.Errorf("%s: %s needs a file", path, oc.Type)
	}
	file := oc.File
	if !filepath.IsAbs(file) && b.cfg.baseDir != "" {
		file = filepath.Join(b.cfg.baseDir, file)
	}

	opts := &geometry.TriangleMeshOptions{Material: mat, LeafThreshold: oc.LeafThreshold}
	var g *geometry.Object
	if oc.Type == "obj" {
		data, err := loaders.LoadOBJ(file, b.logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		g, err = data.ToGroup(opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	} else {
		data, err := loaders.LoadPLY(file, b.logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		g, err = data.ToGroup(opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return g, nil
}
