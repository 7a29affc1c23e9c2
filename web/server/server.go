package server

import (
	"fmt"
	"image/png"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/renderer"
	"github.com/mfortier/go-whitted-raytracer/pkg/scene"
)

// Server renders built-in scenes over HTTP
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// sceneView pairs a world builder with a camera placement
type sceneView struct {
	build    func() *scene.World
	from, to core.Tuple
}

var sceneViews = map[string]sceneView{
	"showcase": {scene.NewShowcaseWorld, core.NewPoint(0, 2.2, -7), core.NewPoint(0, 0.8, 0)},
	"csg":      {scene.NewCSGWorld, core.NewPoint(0, 3, -7), core.NewPoint(0, 1, 0)},
	"torus":    {scene.NewTorusWorld, core.NewPoint(0, 2.5, -5), core.NewPoint(0, 1, 0)},
	"hexagon":  {scene.NewHexagonWorld, core.NewPoint(0, 3, -5), core.NewPoint(0, 1, 0)},
}

// Start registers the handlers and serves until the process exits
func (s *Server) Start() error {
	mux := s.Handler()
	log.Printf("Listening on http://localhost:%d", s.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), mux)
}

// Handler returns the server's route table
func (s *Server) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/scenes", s.handleScenes)
	return mux
}

// handleRender renders a scene and returns it as PNG.
// Query parameters: scene, width, height, depth.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("scene")
	if name == "" {
		name = "showcase"
	}
	view, ok := sceneViews[name]
	if !ok {
		http.Error(w, fmt.Sprintf("unknown scene %q", name), http.StatusBadRequest)
		return
	}

	width := queryInt(r, "width", 400)
	height := queryInt(r, "height", 225)
	depth := queryInt(r, "depth", scene.MaxDepth)
	if width < 1 || height < 1 || width*height > 4_000_000 {
		http.Error(w, "invalid image size", http.StatusBadRequest)
		return
	}

	world := view.build()
	camera := renderer.NewCamera(width, height, math.Pi/3)
	camera.SetTransform(core.ViewTransform(view.from, view.to, core.NewVector(0, 1, 0)))

	rend := renderer.NewRenderer()
	rend.MaxDepth = depth

	startTime := time.Now()
	canvas := rend.Render(world, camera)
	log.Printf("Rendered %s %dx%d in %v", name, width, height, time.Since(startTime))

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, canvas.ToImage()); err != nil {
		log.Printf("Error encoding PNG: %v", err)
	}
}

// handleScenes lists the available scene names
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	for name := range sceneViews {
		fmt.Fprintln(w, name)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
