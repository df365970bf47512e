package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Default render size for built-in scenes
const (
	DefaultWidth  = 400
	DefaultHeight = 200
)

type builtin struct {
	description string
	build       func(w *world.World)
	camera      CameraConfig // Width and Height are filled in by NewBuiltin
}

var builtins = map[string]builtin{
	"default": {
		description: "Two nested spheres lit from the upper left",
		build:       buildDefault,
		camera:      lookAt(math.Pi/3, core.Point(0, 0, -5), core.Point(0, 0, 0)),
	},
	"glass": {
		description: "Nested glass spheres over a checkered floor",
		build:       buildGlass,
		camera:      lookAt(math.Pi/3, core.Point(0, 1.5, -5), core.Point(0, 1, 0)),
	},
	"csg": {
		description: "A die carved with CSG next to a lens-shaped intersection",
		build:       buildCSG,
		camera:      lookAt(math.Pi/3, core.Point(2, 4, -6), core.Point(0, 0.5, 0)),
	},
	"mirrors": {
		description: "A sphere between two facing mirrors",
		build:       buildMirrors,
		camera:      lookAt(math.Pi/2.5, core.Point(1.5, 1.5, -4.5), core.Point(0, 1, 2)),
	},
	"shapes": {
		description: "Cylinder, cone, cube and a triangle pyramid",
		build:       buildShapes,
		camera:      lookAt(math.Pi/3, core.Point(0, 3, -8), core.Point(0, 1, 0)),
	},
	"patterns": {
		description: "Stripe, ring, gradient, checker and blended patterns",
		build:       buildPatterns,
		camera:      lookAt(math.Pi/3, core.Point(0, 1.5, -5), core.Point(0, 1, 0)),
	},
}

func lookAt(fov float64, from, to core.Tuple) CameraConfig {
	return CameraConfig{
		FieldOfView: fov,
		From:        from,
		To:          to,
		Up:          core.Vector(0, 1, 0),
	}
}

// ListBuiltins returns the names of the built-in scenes in sorted order
func ListBuiltins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinDescription returns the one-line description of a built-in scene
func BuiltinDescription(name string) string {
	return builtins[name].description
}

// NewBuiltin assembles a built-in scene. Non-positive sizes fall back to
// DefaultWidth and DefaultHeight.
func NewBuiltin(name string, width, height int) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, ListBuiltins())
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	cfg := b.camera
	cfg.Width, cfg.Height = width, height
	camera, err := NewCamera(cfg)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}

	w := world.New()
	b.build(w)
	return &Scene{Name: name, World: w, Camera: camera}, nil
}

func defaultLight() lights.PointLight {
	return lights.NewPointLight(core.Point(-10, 10, -10), core.White())
}
