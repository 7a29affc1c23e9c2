package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/loaders"
	"github.com/mfortier/go-whitted-raytracer/pkg/renderer"
	"github.com/mfortier/go-whitted-raytracer/pkg/scene"
)

// sceneConfig pairs a world builder with its camera placement
type sceneConfig struct {
	build       func() *scene.World
	from, to    core.Tuple
	fieldOfView float64
}

var sceneConfigs = map[string]sceneConfig{
	"showcase": {scene.NewShowcaseWorld, core.NewPoint(0, 2.2, -7), core.NewPoint(0, 0.8, 0), math.Pi / 3},
	"csg":      {scene.NewCSGWorld, core.NewPoint(0, 3, -7), core.NewPoint(0, 1, 0), math.Pi / 3},
	"torus":    {scene.NewTorusWorld, core.NewPoint(0, 2.5, -5), core.NewPoint(0, 1, 0), math.Pi / 3},
	"hexagon":  {scene.NewHexagonWorld, core.NewPoint(0, 3, -5), core.NewPoint(0, 1, 0), math.Pi / 3},
}

func main() {
	sceneName := flag.String("scene", "showcase", "Scene: showcase, csg, torus, or hexagon")
	width := flag.Int("width", 800, "Image width in pixels")
	height := flag.Int("height", 450, "Image height in pixels")
	depth := flag.Int("depth", scene.MaxDepth, "Reflection/refraction recursion depth")
	workers := flag.Int("workers", 0, "Render workers (0 = one per CPU)")
	format := flag.String("format", "png", "Output format: png or webp")
	scaleDown := flag.Int("scale-down", 1, "Downscale output by this integer factor")
	objFile := flag.String("obj", "", "Render a Wavefront OBJ file instead of a built-in scene")
	gltfFile := flag.String("gltf", "", "Render a glTF/GLB file instead of a built-in scene")
	flag.Parse()

	world, camera, err := buildScene(*sceneName, *objFile, *gltfFile, *width, *height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	r := renderer.NewRenderer()
	r.NumWorkers = *workers
	r.MaxDepth = *depth

	fmt.Printf("Rendering %dx%d at depth %d...\n", *width, *height, *depth)
	startTime := time.Now()
	canvas := r.Render(world, camera)
	fmt.Printf("Render completed in %v\n", time.Since(startTime))

	outputDir := filepath.Join("output", *sceneName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	img := loaders.Downscale(canvas.ToImage(), *scaleDown)
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, *format))
	if err := loaders.SaveImage(img, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

func buildScene(name, objFile, gltfFile string, width, height int) (*scene.World, *renderer.Camera, error) {
	if objFile != "" || gltfFile != "" {
		return buildMeshScene(objFile, gltfFile, width, height)
	}

	cfg, ok := sceneConfigs[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown scene %q", name)
	}

	world := cfg.build()
	camera := renderer.NewCamera(width, height, cfg.fieldOfView)
	camera.SetTransform(core.ViewTransform(cfg.from, cfg.to, core.NewVector(0, 1, 0)))
	return world, camera, nil
}

// buildMeshScene loads an external mesh onto a checkered floor
func buildMeshScene(objFile, gltfFile string, width, height int) (*scene.World, *renderer.Camera, error) {
	world := scene.NewShowcaseFloorWorld()

	var mesh core.ObjectID
	var err error
	if objFile != "" {
		var parser *loaders.OBJParser
		parser, err = loaders.ParseOBJFile(objFile, world.Arena)
		if err == nil {
			mesh = parser.RootGroup()
		}
	} else {
		mesh, err = loaders.LoadGLTF(gltfFile, world.Arena)
	}
	if err != nil {
		return nil, nil, err
	}

	world.Arena.SetTransform(mesh, core.Translation(0, 1, 0))
	world.AddObject(mesh)

	camera := renderer.NewCamera(width, height, math.Pi/3)
	camera.SetTransform(core.ViewTransform(
		core.NewPoint(0, 2.5, -6), core.NewPoint(0, 1, 0), core.NewVector(0, 1, 0),
	))
	return world, camera, nil
}
