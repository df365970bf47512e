package material

import (
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNew_Defaults(t *testing.T) {
	m := New()

	if m.Color != core.White() {
		t.Errorf("Expected white, got %v", m.Color)
	}
	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"ambient", m.Ambient, 0.1},
		{"diffuse", m.Diffuse, 0.9},
		{"specular", m.Specular, 0.9},
		{"shininess", m.Shininess, 200},
		{"reflective", m.Reflective, 0},
		{"transparency", m.Transparency, 0},
		{"refractive index", m.RefractiveIndex, 1.0},
	}
	for _, c := range checks {
		if c.got != c.expected {
			t.Errorf("Expected %s %f, got %f", c.name, c.expected, c.got)
		}
	}
	if !m.CastsShadows {
		t.Error("Expected default material to cast shadows")
	}
	if m.Pattern != nil {
		t.Error("Expected default material to have no pattern")
	}
}

func TestPresets(t *testing.T) {
	g := Glass()
	if g.Transparency != 1.0 || g.RefractiveIndex != 1.5 {
		t.Errorf("Unexpected glass %+v", g)
	}
	m := Mirror()
	if m.Reflective != 1.0 {
		t.Errorf("Expected mirror to be fully reflective, got %f", m.Reflective)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Expected glass to validate, got %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Expected mirror to validate, got %v", err)
	}
}

func TestMaterial_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(m *Material)
		wantErr string
	}{
		{"default", func(m *Material) {}, ""},
		{"negative ambient", func(m *Material) { m.Ambient = -0.1 }, "ambient"},
		{"diffuse above one", func(m *Material) { m.Diffuse = 1.5 }, "diffuse"},
		{"reflective above one", func(m *Material) { m.Reflective = 2 }, "reflective"},
		{"negative transparency", func(m *Material) { m.Transparency = -1 }, "transparency"},
		{"zero shininess", func(m *Material) { m.Shininess = 0 }, "shininess"},
		{"index below vacuum", func(m *Material) { m.RefractiveIndex = 0.5 }, "refractive index"},
		{"negative color", func(m *Material) { m.Color = core.NewColor(-1, 0, 0) }, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			tt.modify(&m)
			err := m.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
