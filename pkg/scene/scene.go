package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	World  *world.World
	Camera *renderer.Camera
}

// CameraConfig places a camera in the scene
type CameraConfig struct {
	Width       int
	Height      int
	FieldOfView float64 // Radians
	From        core.Tuple
	To          core.Tuple
	Up          core.Tuple
}

// NewCamera builds a camera looking from From to To
func NewCamera(cfg CameraConfig) (*renderer.Camera, error) {
	camera, err := renderer.NewCamera(cfg.Width, cfg.Height, cfg.FieldOfView)
	if err != nil {
		return nil, err
	}
	if cfg.To.Subtract(cfg.From).MagnitudeSquared() == 0 {
		return nil, fmt.Errorf("camera from and to must differ")
	}
	if err := camera.SetTransform(core.ViewTransform(cfg.From, cfg.To, cfg.Up)); err != nil {
		return nil, fmt.Errorf("invalid camera orientation: %w", err)
	}
	return camera, nil
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, o := range s.World.Objects() {
		count += o.LeafCount()
	}
	return count
}

// Load returns a built-in scene by name, or builds the scene described by a
// .json file. width and height override the file's camera size when
// positive.
func Load(nameOrPath string, width, height int, logger core.Logger) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(nameOrPath), ".json") {
		cfg, err := LoadConfig(nameOrPath)
		if err != nil {
			return nil, err
		}
		if width > 0 {
			cfg.Camera.Width = width
		}
		if height > 0 {
			cfg.Camera.Height = height
		}
		return cfg.Build(logger)
	}
	return NewBuiltin(nameOrPath, width, height)
}
