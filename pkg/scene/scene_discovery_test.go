package scene

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalScene = `{
	"camera": {"from": [0, 0, -5], "to": [0, 0, 0]},
	"lights": [{"position": [-10, 10, -10]}],
	"objects": [{"type": "sphere"}]
}`

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"glass-spheres", "Glass Spheres"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.json",
			content: `{
	"name": "Glass Box",
	"description": "A box of glass",
	"group": "Glass Variants",
	"camera": {"from": [0, 0, -5], "to": [0, 0, 0]},
	"lights": [{"position": [-10, 10, -10]}],
	"objects": []
}`,
			expected: SceneInfo{
				Name:        "Glass Box",
				Description: "A box of glass",
				Group:       "Glass Variants",
				Type:        "json",
			},
		},
		{
			name:    "no_metadata.json",
			content: minimalScene,
			expected: SceneInfo{
				Name:  "No Metadata", // From filename
				Group: "Custom Scenes",
				Type:  "json",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("Failed to write temp file: %v", err)
			}

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			if result.ID != path || result.FilePath != path {
				t.Errorf("ID/FilePath = %q/%q, want %q", result.ID, result.FilePath, path)
			}
			if result.Name != tc.expected.Name {
				t.Errorf("Name = %q, want %q", result.Name, tc.expected.Name)
			}
			if result.Description != tc.expected.Description {
				t.Errorf("Description = %q, want %q", result.Description, tc.expected.Description)
			}
			if result.Group != tc.expected.Group {
				t.Errorf("Group = %q, want %q", result.Group, tc.expected.Group)
			}
			if result.Type != tc.expected.Type {
				t.Errorf("Type = %q, want %q", result.Type, tc.expected.Type)
			}
		})
	}
}

func TestListJSONScenes(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		scenes, err := ListJSONScenes(filepath.Join(t.TempDir(), "nope"))
		if err != nil {
			t.Errorf("ListJSONScenes() error: %v", err)
		}
		if scenes == nil || len(scenes) != 0 {
			t.Errorf("Expected an empty slice, got %v", scenes)
		}
	})

	t.Run("skips broken files", func(t *testing.T) {
		dir := t.TempDir()
		files := map[string]string{
			"b-scene.json": minimalScene,
			"a-scene.json": minimalScene,
			"broken.json":  `{"camera": `,
			"notes.txt":    "not a scene",
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
				t.Fatalf("Failed to write %s: %v", name, err)
			}
		}

		scenes, err := ListJSONScenes(dir)
		if err != nil {
			t.Fatalf("ListJSONScenes() error: %v", err)
		}
		if len(scenes) != 2 {
			t.Fatalf("Expected 2 scenes, got %d", len(scenes))
		}
		if scenes[0].Name != "A Scene" || scenes[1].Name != "B Scene" {
			t.Errorf("Expected sorted names, got %q, %q", scenes[0].Name, scenes[1].Name)
		}
	})
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	custom := `{"name": "Custom", "group": "Extras",
		"camera": {"from": [0, 0, -5], "to": [0, 0, 0]},
		"lights": [{"position": [0, 5, 0]}], "objects": []}`
	if err := os.WriteFile(filepath.Join(dir, "custom.json"), []byte(custom), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}
	if response.Groups[0].Name != BuiltinGroup {
		t.Errorf("Expected %q first, got %q", BuiltinGroup, response.Groups[0].Name)
	}

	sceneIDs := make(map[string]bool)
	for _, s := range response.Groups[0].Scenes {
		sceneIDs[s.ID] = true
		if s.Description == "" {
			t.Errorf("Built-in scene %s has no description", s.ID)
		}
	}
	for _, expectedID := range []string{"default", "glass", "csg", "mirrors", "shapes", "patterns"} {
		if !sceneIDs[expectedID] {
			t.Errorf("Missing expected built-in scene: %s", expectedID)
		}
	}

	extras := response.Groups[1]
	if extras.Name != "Extras" || len(extras.Scenes) != 1 || extras.Scenes[0].Name != "Custom" {
		t.Errorf("Unexpected custom group: %+v", extras)
	}
}
