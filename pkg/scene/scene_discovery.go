package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BuiltinGroup names the group holding the compiled-in scenes
const BuiltinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name or path accepted by Load
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the JSON file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// ListJSONScenes scans dir for scene descriptions. A missing directory
// yields an empty list.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip broken files, the rest are still usable
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a JSON scene
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(base),
		Group:    "Custom Scenes",
		Type:     "json",
		FilePath: filePath,
	}

	cfg, err := LoadConfig(filePath)
	if err != nil {
		return info, err
	}
	if cfg.Name != base {
		info.Name = cfg.Name
	}
	info.Description = cfg.Description
	if cfg.Group != "" {
		info.Group = cfg.Group
	}
	return info, nil
}

// ListAllScenes returns the built-in scenes and those found in dir, grouped
// by category with the built-ins first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	var all []SceneInfo
	for _, name := range ListBuiltins() {
		all = append(all, SceneInfo{
			ID:          name,
			Name:        titleCase(name),
			Description: BuiltinDescription(name),
			Group:       BuiltinGroup,
			Type:        "builtin",
		})
	}

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	all = append(all, jsonScenes...)

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, s := range all {
		if _, seen := groupMap[s.Group]; !seen && s.Group != BuiltinGroup {
			groupNames = append(groupNames, s.Group)
		}
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: BuiltinGroup, Scenes: groupMap[BuiltinGroup]})
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
