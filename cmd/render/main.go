// Command render is the CLI entry point: load a scene document, path-trace
// it, and write the result out as a PNG.
package main

import (
	"flag"
	"fmt"
	"os"

	"pathtracer/imagebuf"
	"pathtracer/ioadapt"
	"pathtracer/scene"
	"pathtracer/tracer"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML render config (defaults are used if omitted)")
	scenePath := flag.String("scene", "", "overrides the scene_path from the config")
	outputPath := flag.String("out", "", "overrides the output_path from the config")
	seed := flag.Int64("seed", 0, "overrides the seed from the config (0 means: use the config's own seed)")
	quiet := flag.Bool("quiet", false, "suppress the progress bar")
	flag.Parse()

	options := ioadapt.DefaultRenderOptions()
	if *configPath != "" {
		loaded, err := ioadapt.LoadRenderOptions(*configPath)
		if err != nil {
			fatal(err)
		}
		options = loaded
	}
	if *scenePath != "" {
		options.ScenePath = *scenePath
	}
	if *outputPath != "" {
		options.OutputPath = *outputPath
	}
	if *seed != 0 {
		options.Seed = *seed
	}

	sc, err := loadScene(options.ScenePath)
	if err != nil {
		fatal(err)
	}

	renderOptions := tracer.RenderOptions{
		MaxDepth:     options.MaxDepth,
		RaysPerPixel: options.RaysPerPixel,
		TileSize:     options.TileSize,
		WorkerCount:  options.WorkerCount,
		Seed:         options.Seed,
	}

	result := renderScene(sc, options, renderOptions, !*quiet)

	if err := ioadapt.WritePNG(result, options.OutputPath); err != nil {
		fatal(err)
	}
	if !*quiet {
		fmt.Println()
	}
	fmt.Printf("wrote %s (%dx%d)\n", options.OutputPath, options.Width, options.Height)
}

// loadScene reads the scene document at path, falling back to the
// built-in Cornell box fixture when nothing exists there yet.
func loadScene(path string) (*scene.Scene, error) {
	if _, err := os.Stat(path); err == nil {
		return scene.Load(path)
	}
	fmt.Fprintf(os.Stderr, "no scene found at %q, rendering the built-in Cornell box\n", path)
	return scene.BuildCornellBox()
}

func renderScene(sc *scene.Scene, options ioadapt.RenderOptions, renderOptions tracer.RenderOptions, showProgress bool) *imagebuf.Image {
	if showProgress {
		img, _ := tracer.RenderWithProgress(sc, options.Width, options.Height, renderOptions, tracer.PrintProgressBar)
		return img
	}
	img, _ := tracer.Render(sc, options.Width, options.Height, renderOptions)
	return img
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "render:", err)
	os.Exit(1)
}
