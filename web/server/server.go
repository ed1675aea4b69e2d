package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/integrator"
	"github.com/df07/go-csg-pathtracer/pkg/renderer"
	"github.com/df07/go-csg-pathtracer/pkg/scene"
)

// Parameter limits shared by the render and inspect endpoints
const (
	MinImageSize   = 8
	MaxImageSize   = 2000
	MaxWorkers     = 256
	MaxBounces     = 16
	MaxSamples     = 256
	MaxSupersample = 4
)

// Server handles web requests for the path tracer
type Server struct {
	port   int
	logger core.Logger
	mux    *http.ServeMux
}

// NewServer creates a new web server that logs through logger
func NewServer(port int, logger core.Logger) *Server {
	s := &Server{port: port, logger: logger}

	s.mux = http.NewServeMux()
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/health", s.handleHealth)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene         string `json:"scene"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Workers       int    `json:"workers"`
	BatchSize     int    `json:"batchSize"`
	Supersample   int    `json:"supersample"`
	MaxBounces    int    `json:"maxBounces"`
	LightSamples  int    `json:"lightSamples"`
	BounceSamples int    `json:"bounceSamples"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	renderDefaults := renderer.DefaultRenderConfig()
	integratorDefaults := integrator.DefaultConfig()
	response := map[string]interface{}{
		"scene":   sceneName,
		"objects": len(sceneObj.Objects()),
		"lights":  len(sceneObj.Lights()),
		"defaults": map[string]interface{}{
			"width":         sceneObj.Width,
			"height":        sceneObj.Height,
			"workers":       renderDefaults.NumWorkers,
			"batchSize":     renderDefaults.BatchSize,
			"supersample":   renderDefaults.Supersample,
			"maxBounces":    integratorDefaults.MaxBounces,
			"lightSamples":  integratorDefaults.LightSamples,
			"bounceSamples": integratorDefaults.BounceSamples,
		},
		"limits": map[string]interface{}{
			"width":         map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"height":        map[string]int{"min": MinImageSize, "max": MaxImageSize},
			"workers":       map[string]int{"min": 0, "max": MaxWorkers},
			"supersample":   map[string]int{"min": 1, "max": MaxSupersample},
			"maxBounces":    map[string]int{"min": 1, "max": MaxBounces},
			"lightSamples":  map[string]int{"min": 1, "max": MaxSamples},
			"bounceSamples": map[string]int{"min": 0, "max": MaxSamples},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene name and image size
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	defaults := renderer.DefaultRenderConfig()
	var err error
	if req.Width, err = parseIntParam(query, "width", defaults.Width, MinImageSize, MaxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, MinImageSize, MaxImageSize); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
