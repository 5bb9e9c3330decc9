package ioadapt

import (
	"github.com/BurntSushi/toml"

	"pathtracer/core"
)

// RenderOptions is the on-disk shape of a render job's settings — width,
// height, sampling, and the scene/output paths, decoded with
// BurntSushi/toml the way the donor pack's own settings file is.
type RenderOptions struct {
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	MaxDepth     int    `toml:"max_depth"`
	RaysPerPixel int    `toml:"rays_per_pixel"`
	TileSize     int    `toml:"tile_size"`
	WorkerCount  int    `toml:"worker_count"`
	Seed         int64  `toml:"seed"`
	ScenePath    string `toml:"scene_path"`
	OutputPath   string `toml:"output_path"`
}

// DefaultRenderOptions mirrors the reference renderer's own constants —
// a usable render even if a config file only overrides a couple of keys.
// TileSize/WorkerCount are left at 0 so tracer.Render falls back to its
// own tileSize constant and runtime.NumCPU(); Seed 0 is a valid engine
// seed, not a sentinel for "unset".
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:        800,
		Height:       600,
		MaxDepth:     8,
		RaysPerPixel: 32,
		ScenePath:    "scene.json",
		OutputPath:   "out.png",
	}
}

// LoadRenderOptions reads a TOML config file into RenderOptions, starting
// from DefaultRenderOptions so an omitted key keeps its default instead
// of zeroing out.
func LoadRenderOptions(path string) (RenderOptions, error) {
	opts := DefaultRenderOptions()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return RenderOptions{}, core.NewLoadError(path, err)
	}
	return opts, nil
}
