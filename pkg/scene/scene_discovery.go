package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type builtinScene struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Description: "Red sphere above a floor with a soft point light",
		},
		factory: NewDefaultScene,
	},
	"csg": {
		info: SceneInfo{
			ID:          "csg",
			DisplayName: "CSG Showcase",
			Description: "Lens, sliced sphere and drilled cube built from boolean operations",
		},
		factory: NewCSGScene,
	},
	"glass": {
		info: SceneInfo{
			ID:          "glass",
			DisplayName: "Glass and Glow",
			Description: "Refractive sphere, emissive sphere and mirror",
		},
		factory: NewGlassScene,
	},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create builds the built-in scene with the given name (case-insensitive)
func Create(name string) (*Scene, error) {
	s, ok := builtinScenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return s.factory(), nil
}
