package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/imageio"
	"github.com/df07/go-csg-pathtracer/pkg/integrator"
	"github.com/df07/go-csg-pathtracer/pkg/renderer"
	"github.com/df07/go-csg-pathtracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "image", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate is sent as the aggregator writes pixels
type ProgressUpdate struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	ElapsedMs int64   `json:"elapsedMs"`
}

// ImageUpdate carries the finished render
type ImageUpdate struct {
	ImageData        string  `json:"imageData"` // Base64 encoded PNG
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TracedPixels     int     `json:"tracedPixels"`
	Batches          int     `json:"batches"`
	NumWorkers       int     `json:"numWorkers"`
	PixelsPerWorker  []int   `json:"pixelsPerWorker"`
	AverageLuminance float64 `json:"averageLuminance"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

// handleRender renders a scene, streaming console output and progress via SSE.
// The render runs to completion even if the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	raytracer := s.newRaytracer(sceneObj, req, webLogger)

	lastPercent := -1
	raytracer.SetProgressCallback(func(p renderer.Progress) {
		percent := int(p.Percent())
		if percent == lastPercent {
			return
		}
		lastPercent = percent
		s.handleProgress(ctx, sseEventChan, p)
	})

	startTime := time.Now()
	img, stats, renderErr := raytracer.Render()

	// No more log lines after Render; flush the console before the final events
	close(consoleChan)
	<-consoleDone

	if renderErr != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", renderErr))
		return
	}

	if err := s.handleImage(ctx, sseEventChan, img, stats, time.Since(startTime)); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Encoding failed: %v", err))
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// newRaytracer configures the integrator and raytracer for a request
func (s *Server) newRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) *renderer.Raytracer {
	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxBounces = req.MaxBounces
	integratorConfig.LightSamples = req.LightSamples
	integratorConfig.BounceSamples = req.BounceSamples

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.Width = req.Width
	renderConfig.Height = req.Height
	renderConfig.NumWorkers = req.Workers
	renderConfig.BatchSize = req.BatchSize
	renderConfig.Supersample = req.Supersample

	return renderer.NewRaytracer(sceneObj, integrator.NewPathTracingIntegrator(integratorConfig), nil, renderConfig, logger)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			s.logger.Printf("Error marshaling console message: %v\n", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// handleProgress sends a progress event
func (s *Server) handleProgress(ctx context.Context, sseEventChan chan SSEEvent, p renderer.Progress) {
	data, err := json.Marshal(ProgressUpdate{
		Completed: p.Completed,
		Total:     p.Total,
		Percent:   p.Percent(),
		ElapsedMs: p.Elapsed.Milliseconds(),
	})
	if err != nil {
		s.logger.Printf("Error marshaling progress update: %v\n", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "progress", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleImage sends the finished image with its statistics
func (s *Server) handleImage(ctx context.Context, sseEventChan chan SSEEvent, img *image.RGBA, stats renderer.RenderStats, elapsed time.Duration) error {
	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		return err
	}

	data, err := json.Marshal(ImageUpdate{
		ImageData:        imageData,
		Width:            stats.Width,
		Height:           stats.Height,
		TracedPixels:     stats.TracedPixels,
		Batches:          stats.Batches,
		NumWorkers:       stats.NumWorkers,
		PixelsPerWorker:  stats.PixelsPerWorker,
		AverageLuminance: stats.AverageLuminance,
		ElapsedMs:        elapsed.Milliseconds(),
	})
	if err != nil {
		return err
	}

	select {
	case sseEventChan <- SSEEvent{Type: "image", Data: string(data)}:
	case <-ctx.Done():
	}
	return nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	renderDefaults := renderer.DefaultRenderConfig()
	integratorDefaults := integrator.DefaultConfig()

	var err error
	if req.Workers, err = parseIntParam(query, "workers", renderDefaults.NumWorkers, 0, MaxWorkers); err != nil {
		return nil, err
	}
	if req.BatchSize, err = parseIntParam(query, "batchSize", renderDefaults.BatchSize, 1, MaxImageSize*MaxImageSize); err != nil {
		return nil, err
	}
	if req.Supersample, err = parseIntParam(query, "supersample", renderDefaults.Supersample, 1, MaxSupersample); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", integratorDefaults.MaxBounces, 1, MaxBounces); err != nil {
		return nil, err
	}
	if req.LightSamples, err = parseIntParam(query, "lightSamples", integratorDefaults.LightSamples, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.BounceSamples, err = parseIntParam(query, "bounceSamples", integratorDefaults.BounceSamples, 0, MaxSamples); err != nil {
		return nil, err
	}

	if req.Width*req.Height*req.Supersample*req.Supersample > 800*600 && req.MaxBounces > 8 {
		s.logger.Printf("Render warning: Large image with deep recursion may render slowly\n")
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, "png"); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
