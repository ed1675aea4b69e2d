package renderer

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"golang.org/x/image/draw"

	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/geometry"
	"github.com/df07/go-csg-pathtracer/pkg/integrator"
	"github.com/df07/go-csg-pathtracer/pkg/scene"
)

// RenderConfig contains configuration for a render
type RenderConfig struct {
	Width       int   // Output image width
	Height      int   // Output image height
	NumWorkers  int   // Number of parallel workers (0 = use CPU count)
	BatchSize   int   // Pixels a worker takes from the queue at once
	Seed        int64 // Base seed of the per-worker random sources
	Supersample int   // Render at this multiple of the output size, then downsample
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:       400,
		Height:      300,
		NumWorkers:  0,  // Auto-detect CPU count
		BatchSize:   64, // Large enough to keep lock traffic low
		Seed:        42,
		Supersample: 1,
	}
}

// Progress describes how far a render has come
type Progress struct {
	Completed int // Pixels written so far
	Total     int // Pixels to trace
	Elapsed   time.Duration
}

// Percent returns the completed share of the render in [0, 100]
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return 100 * float64(p.Completed) / float64(p.Total)
}

// Raytracer renders a scene with a pool of workers feeding an aggregator
// that runs on the goroutine calling Render
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *geometry.Camera
	config     RenderConfig
	logger     core.Logger
	onProgress func(Progress)
}

// NewRaytracer creates a new raytracer. A nil camera uses the scene's camera.
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, camera *geometry.Camera, config RenderConfig, logger core.Logger) *Raytracer {
	if camera == nil {
		camera = s.Camera
	}
	if logger == nil {
		logger = NewSlogLogger(nil)
	}
	return &Raytracer{
		scene:      s,
		integrator: integ,
		camera:     camera,
		config:     config,
		logger:     logger,
	}
}

// SetProgressCallback registers fn to be called by the aggregator after each batch.
// fn runs on the goroutine calling Render.
func (rt *Raytracer) SetProgressCallback(fn func(Progress)) {
	rt.onProgress = fn
}

// Render traces every pixel and returns the finished image. It returns only
// after all workers have exited, including when a worker fails.
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.config.Width, rt.config.Height)
	}

	supersample := max(1, rt.config.Supersample)
	width := rt.config.Width * supersample
	height := rt.config.Height * supersample
	total := width * height

	queue := NewPixelQueue(width, height)
	pool := NewWorkerPool(queue, rt.tracePixel(width, height), rt.config.NumWorkers, rt.config.BatchSize, rt.config.Seed)

	stats := RenderStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		NumWorkers:      pool.GetNumWorkers(),
		PixelsPerWorker: make([]int, pool.GetNumWorkers()),
	}

	rt.logger.Printf("Rendering %s at %dx%d: %d pixels queued (%d workers, batch %d, supersample %dx)...\n",
		rt.scene.Name, width, height, queue.Len(), pool.GetNumWorkers(), rt.config.BatchSize, supersample)

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	remaining := total
	nextReport := 10
	var renderErr error

	pool.Start()
	for batch := range pool.Results() {
		if batch.Err != nil {
			if renderErr == nil {
				renderErr = batch.Err
				dropped := queue.Drain()
				rt.logger.Printf("Worker %d failed, abandoning %d queued pixels: %v\n", batch.WorkerID, dropped, batch.Err)
			}
			continue
		}

		for _, result := range batch.Results {
			img.SetRGBA(result.X, result.Y, result.Color.ToRGBA())
		}
		remaining -= len(batch.Results)
		stats.Batches++
		stats.PixelsPerWorker[batch.WorkerID] += len(batch.Results)

		progress := Progress{Completed: total - remaining, Total: total, Elapsed: time.Since(startTime)}
		if err := rt.notifyProgress(progress); err != nil && renderErr == nil {
			renderErr = err
			dropped := queue.Drain()
			rt.logger.Printf("Progress callback failed, abandoning %d queued pixels: %v\n", dropped, err)
		}
		if progress.Percent() >= float64(nextReport) {
			rt.logger.Printf("%3.0f%% (%d/%d pixels) after %v\n", progress.Percent(), progress.Completed, total, progress.Elapsed)
			for float64(nextReport) <= progress.Percent() {
				nextReport += 10
			}
		}
	}
	pool.Wait()

	stats.TracedPixels = total - remaining
	stats.Duration = time.Since(startTime)

	if renderErr != nil {
		return nil, stats, fmt.Errorf("render %s: %w", rt.scene.Name, renderErr)
	}
	if remaining != 0 {
		return nil, stats, fmt.Errorf("render %s: %d pixels were never traced", rt.scene.Name, remaining)
	}

	if supersample > 1 {
		img = downsample(img, rt.config.Width, rt.config.Height)
	}
	stats.AverageLuminance = CalculateAverageLuminance(img)

	rt.logger.Printf("Render completed in %v\n", stats.Duration)
	return img, stats, nil
}

// notifyProgress runs the progress callback, turning a panic into an error
// so the aggregator keeps draining results until every worker has exited
func (rt *Raytracer) notifyProgress(progress Progress) (err error) {
	if rt.onProgress == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("progress callback panicked: %v", r)
		}
	}()
	rt.onProgress(progress)
	return nil
}

// tracePixel binds the camera, scene and integrator into the per-pixel work of a worker
func (rt *Raytracer) tracePixel(width, height int) TraceFunc {
	return func(x, y int, random *rand.Rand) core.Color {
		ray := rt.camera.GetRay(x, y, width, height)
		return rt.integrator.Trace(ray, rt.scene, random)
	}
}

// downsample resizes a supersampled image to the output size
func downsample(src *image.RGBA, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
