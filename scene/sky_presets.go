package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pathtracer/core"
	"pathtracer/math"
)

// skyPresetDoc is the on-disk shape of one named Sky preset — plain
// struct tags, decoded with yaml.v3 the way the donor pack's own asset
// manifests are loaded.
type skyPresetDoc struct {
	SunDirection [3]float32 `yaml:"sun_direction"`
	SunColor     [3]float32 `yaml:"sun_color"`
	UpColor      [3]float32 `yaml:"up_color"`
	DownColor    [3]float32 `yaml:"down_color"`
	SunSize      float32    `yaml:"sun_size"`
}

// LoadSkyPresets reads a YAML file of named Sky environment presets
// (top-level map from name to preset fields) and returns them as
// ready-to-use scene.Sky values.
func LoadSkyPresets(path string) (map[string]Sky, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewLoadError(path, err)
	}

	var docs map[string]skyPresetDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, core.NewLoadError(path, fmt.Errorf("decode sky presets yaml: %w", err))
	}

	presets := make(map[string]Sky, len(docs))
	for name, d := range docs {
		presets[name] = Sky{
			SunDirection: math.Vec3{X: d.SunDirection[0], Y: d.SunDirection[1], Z: d.SunDirection[2]},
			SunColor:     core.Color{R: d.SunColor[0], G: d.SunColor[1], B: d.SunColor[2]},
			UpColor:      core.Color{R: d.UpColor[0], G: d.UpColor[1], B: d.UpColor[2]},
			DownColor:    core.Color{R: d.DownColor[0], G: d.DownColor[1], B: d.DownColor[2]},
			SunSize:      d.SunSize,
		}
	}
	return presets, nil
}

// DefaultSkyPresets returns the built-in "noon", "dusk", and "overcast"
// presets without needing a YAML file on disk (the tests use them).
// Nothing in the package substitutes them automatically when no preset
// file is loaded.
func DefaultSkyPresets() map[string]Sky {
	return map[string]Sky{
		"noon": {
			SunDirection: math.NewVec3(0, -1, 0),
			SunColor:     core.Color{R: 10, G: 10, B: 9},
			UpColor:      core.Color{R: 0.5, G: 0.7, B: 1.0},
			DownColor:    core.Color{R: 0.9, G: 0.9, B: 0.9},
			SunSize:      0.001,
		},
		"dusk": {
			SunDirection: math.NewVec3(-0.8, -0.2, 0).Normalize(),
			SunColor:     core.Color{R: 8, G: 4, B: 2},
			UpColor:      core.Color{R: 0.3, G: 0.2, B: 0.4},
			DownColor:    core.Color{R: 0.6, G: 0.3, B: 0.2},
			SunSize:      0.002,
		},
		"overcast": {
			SunDirection: math.NewVec3(0, -1, 0),
			SunColor:     core.Color{R: 1.2, G: 1.2, B: 1.2},
			UpColor:      core.Color{R: 0.7, G: 0.7, B: 0.7},
			DownColor:    core.Color{R: 0.5, G: 0.5, B: 0.5},
			SunSize:      0.02,
		},
	}
}
