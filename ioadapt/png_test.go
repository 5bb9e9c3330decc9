package ioadapt

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"pathtracer/core"
	"pathtracer/imagebuf"
)

func TestWritePNGProducesDecodableImage(t *testing.T) {
	img := imagebuf.NewImage(2, 2, core.Color{R: 0.5, G: 0.25, B: 0.75})
	img.Set(0, 0, core.Color{R: 2, G: 2, B: 2}) // over-bright pixel, must clamp

	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := WritePNG(img, path); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written png: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode written png: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Errorf("expected a 2x2 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("expected the over-bright pixel to clamp to white, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}
