package ioadapt

import (
	"image"
	"image/color"
	"image/png"
	stdmath "math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"

	"pathtracer/core"
	"pathtracer/imagebuf"
)

// gamma is the standard display gamma correction exponent applied before
// quantizing linear-light radiance down to 8 bits per channel.
const gamma = 1.0 / 2.2

// WritePNG gamma-corrects and clamps img's HDR pixels and writes them out
// as an 8-bit-per-channel PNG at path.
func WritePNG(img *imagebuf.Image, path string) error {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))

	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			out.Set(col, row, toRGBA(img.At(row, col)))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return core.NewIOError("create png file", err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return core.NewIOError("encode png", err)
	}
	return nil
}

// toRGBA gamma-corrects a linear HDR color and clamps it to [0,1] before
// quantizing, using go-colorful's Clamped rather than a hand-rolled
// min/max — out-of-range radiance (a bright light source, an overshot
// specular highlight) is common in an unclamped path-traced image.
func toRGBA(c core.Color) color.RGBA {
	corrected := colorful.Color{
		R: stdmath.Pow(float64(c.R), gamma),
		G: stdmath.Pow(float64(c.G), gamma),
		B: stdmath.Pow(float64(c.B), gamma),
	}.Clamped()

	r, g, b := corrected.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
