// Package imagebuf holds the HDR pixel buffer a render writes into and
// the tile views that let disjoint regions of it be rendered
// concurrently from separate goroutines.
package imagebuf

import "pathtracer/core"

// Image is a row-major buffer of linear-light HDR colors.
type Image struct {
	Pixels []core.Color
	Width  int
	Height int
}

// NewImage allocates a Width x Height image filled with fill.
func NewImage(width, height int, fill core.Color) *Image {
	pixels := make([]core.Color, width*height)
	for i := range pixels {
		pixels[i] = fill
	}
	return &Image{Pixels: pixels, Width: width, Height: height}
}

func (img *Image) At(row, col int) core.Color {
	return img.Pixels[row*img.Width+col]
}

func (img *Image) Set(row, col int, c core.Color) {
	img.Pixels[row*img.Width+col] = c
}

func (img *Image) Fill(c core.Color) {
	for i := range img.Pixels {
		img.Pixels[i] = c
	}
}

// View returns a TileView over a rectangular region of img, sharing the
// same backing pixel slice — writes through the view land directly in
// img.Pixels.
func (img *Image) View(offsetX, offsetY, width, height int) TileView {
	return TileView{
		source:      img.Pixels,
		sourceWidth: img.Width,
		offsetX:     offsetX,
		offsetY:     offsetY,
		Width:       width,
		Height:      height,
	}
}

// SplitTiles divides img into a grid of TileViews at most
// tileWidth x tileHeight in size, clamped at the image edges. The tiles
// partition img.Pixels into disjoint index ranges, so rendering each one
// from its own goroutine needs no further synchronization.
func (img *Image) SplitTiles(tileWidth, tileHeight int) []TileView {
	var tiles []TileView
	for y := 0; y < img.Height; y += tileHeight {
		for x := 0; x < img.Width; x += tileWidth {
			w := tileWidth
			if x+w > img.Width {
				w = img.Width - x
			}
			h := tileHeight
			if y+h > img.Height {
				h = img.Height - y
			}
			tiles = append(tiles, img.View(x, y, w, h))
		}
	}
	return tiles
}

// TileView is a rectangular window into an Image's pixel buffer,
// addressed in its own local row/col coordinates.
type TileView struct {
	source      []core.Color
	sourceWidth int
	offsetX     int
	offsetY     int
	Width       int
	Height      int
}

// OffsetX and OffsetY place this tile within the full image it was cut
// from — needed to generate camera rays through the right pixels.
func (t TileView) OffsetX() int { return t.offsetX }
func (t TileView) OffsetY() int { return t.offsetY }

func (t TileView) index(row, col int) int {
	return (t.offsetY+row)*t.sourceWidth + (t.offsetX + col)
}

func (t TileView) At(row, col int) core.Color {
	return t.source[t.index(row, col)]
}

func (t TileView) Set(row, col int, c core.Color) {
	t.source[t.index(row, col)] = c
}

// Add accumulates c into the pixel at (row, col) — used to sum
// per-sample radiance before dividing by the sample count.
func (t TileView) Add(row, col int, c core.Color) {
	i := t.index(row, col)
	t.source[i] = t.source[i].Add(c)
}

func (t TileView) Fill(c core.Color) {
	for i := 0; i < t.Height; i++ {
		for j := 0; j < t.Width; j++ {
			t.Set(i, j, c)
		}
	}
}
