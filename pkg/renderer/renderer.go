package renderer

import (
	"runtime"
	"sync"

	"github.com/mfortier/go-whitted-raytracer/pkg/scene"
)

// Renderer drives the parallel pixel loop. Each scanline is an independent
// unit of work; workers pull rows off a channel and write disjoint canvas
// rows, so the only synchronization is the task queue itself.
type Renderer struct {
	NumWorkers int
	MaxDepth   int
}

// NewRenderer creates a renderer with one worker per CPU and the default
// recursion depth
func NewRenderer() *Renderer {
	return &Renderer{
		NumWorkers: runtime.NumCPU(),
		MaxDepth:   scene.MaxDepth,
	}
}

// Render traces every pixel of the camera's canvas against the world
func (r *Renderer) Render(w *scene.World, camera *Camera) *Canvas {
	canvas := NewCanvas(camera.HSize, camera.VSize)

	numWorkers := r.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	rows := make(chan int, camera.VSize)
	for y := 0; y < camera.VSize; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				r.renderRow(w, camera, canvas, y)
			}
		}()
	}
	wg.Wait()

	return canvas
}

// renderRow traces one scanline
func (r *Renderer) renderRow(w *scene.World, camera *Camera, canvas *Canvas, y int) {
	for x := 0; x < camera.HSize; x++ {
		ray := camera.RayForPixel(x, y)
		canvas.WritePixel(x, y, w.ColorAt(ray, r.MaxDepth))
	}
}
