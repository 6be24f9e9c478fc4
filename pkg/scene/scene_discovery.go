package scene

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Name accepted by Create
	DisplayName string // Human readable name
	Description string // Optional description
	Type        string // "builtin" or "json"
	FilePath    string // Path to the JSON file (json type only)
}

type builtinScene struct {
	description string
	create      func(seed int64) *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		description: "Diffuse, metal and hollow glass spheres on a large ground sphere",
		create:      func(int64) *Scene { return NewDefaultScene() },
	},
	"random": {
		description: "Field of random small spheres around three large ones",
		create:      NewRandomScene,
	},
	"empty": {
		description: "Sky gradient only",
		create:      func(int64) *Scene { return NewEmptyScene() },
	},
	"normals": {
		description: "Sphere on a ground sphere for surface normal previews",
		create:      func(int64) *Scene { return NewNormalsScene() },
	},
}

// Create resolves a built-in scene name or a path to a .json scene file.
// seed only affects generated scenes.
func Create(name string, seed int64) (*Scene, error) {
	if s, err := CreateBuiltin(name, seed); err == nil {
		return s, nil
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadFile(name)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// CreateBuiltin resolves a built-in scene name only. It never touches the filesystem.
func CreateBuiltin(name string, seed int64) (*Scene, error) {
	builtin, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return builtin.create(seed), nil
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for id, builtin := range builtinScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: builtin.description,
			Type:        "builtin",
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// ListJSONScenes scans dir for .json scene files. A missing directory yields no scenes.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		s, err := LoadFile(filePath)
		if err != nil {
			// Skip broken files but keep listing the rest
			slog.Warn("failed to load scene", "path", filePath, "error", err)
			continue
		}

		nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		displayName := s.Name
		if displayName == "" {
			displayName = titleCase(nameWithoutExt)
		}

		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: displayName,
			Description: s.Description,
			Type:        "json",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAll returns the built-in scenes followed by the JSON scenes in dir
func ListAll(dir string) ([]SceneInfo, error) {
	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	return append(List(), jsonScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "hollow-glass" -> "Hollow Glass"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
