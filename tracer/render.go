package tracer

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"pathtracer/core"
	"pathtracer/imagebuf"
	pmath "pathtracer/math"
	"pathtracer/parallel"
	"pathtracer/scene"
)

// tileSize matches the reference renderer's fixed tile dimension — big
// enough to amortize the per-task scheduling overhead, small enough that
// no single tile dominates the worker pool's wall-clock time.
const tileSize = 32

// RenderOptions controls a single render pass: how many paths to average
// per pixel, how deep each path is allowed to bounce before it's assumed
// to contribute nothing further, how the frame is tiled across workers,
// and the RNG seed the render is reproducible from. TileSize, WorkerCount
// and Seed default to tileSize, runtime.NumCPU() and 0 respectively when
// left zero.
type RenderOptions struct {
	MaxDepth     int
	RaysPerPixel int
	TileSize     int
	WorkerCount  int
	Seed         int64
}

// Render produces a width x height image of sc, splitting the frame into
// square tiles of options.TileSize and rendering them across
// options.WorkerCount workers (tileSize and runtime.NumCPU() when those
// are zero). The returned Stats sums the BVH/triangle test
// counts across every sample of every pixel.
func Render(sc *scene.Scene, width, height int, options RenderOptions) (*imagebuf.Image, Stats) {
	return render(sc, width, height, options, nil)
}

// RenderWithProgress is Render plus a callback invoked after each
// completed tile with the fraction of tiles finished so far.
func RenderWithProgress(sc *scene.Scene, width, height int, options RenderOptions, onProgress func(fraction float64)) (*imagebuf.Image, Stats) {
	return render(sc, width, height, options, onProgress)
}

func render(sc *scene.Scene, width, height int, options RenderOptions, onProgress func(float64)) (*imagebuf.Image, Stats) {
	size := options.TileSize
	if size <= 0 {
		size = tileSize
	}
	workers := options.WorkerCount
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	img := imagebuf.NewImage(width, height, core.ColorBlack)
	tiles := img.SplitTiles(size, size)

	var aabbTests, triangleTests, tilesDone int64
	totalTiles := int64(len(tiles))

	tasks := make([]parallel.Task, len(tiles))
	for idx, tile := range tiles {
		tile := tile
		seed := options.Seed + int64(idx) + 1

		tasks[idx] = func() {
			rng := pmath.NewRand(seed)
			var localAABB, localTri int

			for i := 0; i < tile.Height; i++ {
				for j := 0; j < tile.Width; j++ {
					row := tile.OffsetY() + i
					col := tile.OffsetX() + j

					var sum core.Color
					for s := 0; s < options.RaysPerPixel; s++ {
						ray := sc.Camera.RayFor(row, col, width, height, rng)
						c, stats := Trace(ray, sc, 0, options.MaxDepth, rng)
						sum = sum.Add(c)
						localAABB += stats.AABBTests
						localTri += stats.TriangleTests
					}
					tile.Set(i, j, sum.Div(float32(options.RaysPerPixel)))
				}
			}

			atomic.AddInt64(&aabbTests, int64(localAABB))
			atomic.AddInt64(&triangleTests, int64(localTri))

			if onProgress != nil {
				done := atomic.AddInt64(&tilesDone, 1)
				onProgress(float64(done) / float64(totalTiles))
			}
		}
	}

	parallel.Execute(tasks, workers)

	return img, Stats{AABBTests: int(aabbTests), TriangleTests: int(triangleTests)}
}

// PrintProgressBar renders a 100-character text progress bar to stdout,
// redrawn in place with a carriage return — the same bar the reference
// renderer prints during a console render.
func PrintProgressBar(fraction float64) {
	const barLength = 100
	filled := int(fraction * barLength)
	bar := make([]byte, barLength)
	for i := range bar {
		if i <= filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	fmt.Printf("\rRendering: [%s] %.2f%%", bar, fraction*100)
}
