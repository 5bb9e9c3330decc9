package ioadapt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRenderOptionsOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")
	content := `
width = 1920
height = 1080
rays_per_pixel = 64
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	opts, err := LoadRenderOptions(path)
	if err != nil {
		t.Fatalf("LoadRenderOptions: %v", err)
	}
	if opts.Width != 1920 || opts.Height != 1080 {
		t.Errorf("expected overridden resolution 1920x1080, got %dx%d", opts.Width, opts.Height)
	}
	if opts.RaysPerPixel != 64 {
		t.Errorf("expected overridden rays_per_pixel 64, got %d", opts.RaysPerPixel)
	}
	if opts.MaxDepth != DefaultRenderOptions().MaxDepth {
		t.Errorf("expected max_depth to keep its default, got %d", opts.MaxDepth)
	}
}

func TestLoadRenderOptionsMissingFile(t *testing.T) {
	if _, err := LoadRenderOptions("/nonexistent/render.toml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
