package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-csg-pathtracer/pkg/scene"
)

func newTestServer() *Server {
	return NewServer(0, &recordingLogger{})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected body %s", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")

	var scenes []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(scenes) != len(scene.ListScenes()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.ListScenes()), len(scenes))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := newTestServer()

	rec := get(t, s, "/api/scene-config?scene=csg")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["scene"] != "csg" || body["defaults"] == nil || body["limits"] == nil {
		t.Errorf("Unexpected body %v", body)
	}
	csg := scene.NewCSGScene()
	if body["objects"] != float64(len(csg.Objects())) || body["lights"] != float64(len(csg.Lights())) {
		t.Errorf("Expected %d objects and %d lights, got %v and %v",
			len(csg.Objects()), len(csg.Lights()), body["objects"], body["lights"])
	}

	if rec := get(t, s, "/api/scene-config?scene=nope"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name         string
		target       string
		status       int
		hit          bool
		geometryType string
	}{
		{"center hits sphere", "/api/inspect?scene=default&width=101&height=101&x=50&y=50", http.StatusOK, true, "sphere"},
		{"bottom hits floor", "/api/inspect?scene=default&width=101&height=101&x=50&y=100", http.StatusOK, true, "plane"},
		{"top misses", "/api/inspect?scene=default&width=101&height=101&x=50&y=0", http.StatusOK, false, ""},
		{"out of bounds", "/api/inspect?scene=default&width=101&height=101&x=101&y=0", http.StatusBadRequest, false, ""},
		{"missing coordinate", "/api/inspect?scene=default&x=3", http.StatusBadRequest, false, ""},
		{"unknown scene", "/api/inspect?scene=nope&x=1&y=1", http.StatusBadRequest, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}

			var resp InspectResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
			if resp.Hit != tt.hit || resp.GeometryType != tt.geometryType {
				t.Errorf("Expected hit=%v %q, got hit=%v %q", tt.hit, tt.geometryType, resp.Hit, resp.GeometryType)
			}
		})
	}
}

func TestHandleInspect_CSG(t *testing.T) {
	s := newTestServer()
	sceneObj := scene.NewCSGScene()

	// Find a pixel that lands on a compound shape
	const width, height = 40, 30
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			result := inspectPixel(sceneObj, width, height, x, y)
			if !result.Hit {
				continue
			}
			geometryType, props := s.extractGeometryInfo(result.Object.Shape)
			if geometryType != "intersection" && geometryType != "difference" {
				continue
			}
			if props["a"] == nil || props["b"] == nil {
				t.Errorf("Expected operand details for %s, got %v", geometryType, props)
			}
			return
		}
	}
	t.Error("Expected some pixel of the CSG scene to hit a compound shape")
}

func TestHandleRender(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?scene=default&width=16&height=12&workers=2&maxBounces=1&lightSamples=2&bounceSamples=1")

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected SSE content type, got %q", ct)
	}

	body := rec.Body.String()
	for _, event := range []string{"event: console", "event: progress", "event: image", "event: complete"} {
		if !strings.Contains(body, event) {
			t.Errorf("Expected %q in stream", event)
		}
	}
	if strings.Contains(body, "event: error") {
		t.Errorf("Unexpected error event in stream:\n%s", body)
	}

	// The image event precedes completion
	if strings.Index(body, "event: image") > strings.Index(body, "event: complete") {
		t.Error("Expected image event before complete event")
	}
}

func TestHandleRender_InvalidRequest(t *testing.T) {
	tests := []string{
		"/api/render?width=abc",
		"/api/render?width=1",
		"/api/render?supersample=9",
		"/api/render?scene=nope&width=16&height=16",
	}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			body := get(t, newTestServer(), target).Body.String()
			if !strings.Contains(body, "event: error") {
				t.Errorf("Expected an error event, got:\n%s", body)
			}
			if strings.Contains(body, "event: complete") {
				t.Error("Unexpected complete event")
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		query    string
		expected int
		wantErr  bool
	}{
		{"", 7, false},
		{"n=3", 3, false},
		{"n=0", 0, true},
		{"n=11", 0, true},
		{"n=x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := parseIntParam(req.URL.Query(), "n", 7, 1, 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}
