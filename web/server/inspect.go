package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/geometry"
	"github.com/df07/go-csg-pathtracer/pkg/material"
	"github.com/df07/go-csg-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectID     int                    `json:"objectId"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	rgba := c.ToRGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// extractMaterialInfo describes a material and its optional capabilities
func (s *Server) extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":          hexColor(mat.Color),
		"albedo":         [3]float64{mat.Color.R, mat.Color.G, mat.Color.B},
		"roughness":      mat.Roughness,
		"reflectiveness": mat.Reflectiveness,
	}

	materialType := "diffuse"
	if mat.Roughness == 0 && mat.Reflectiveness > 0 {
		materialType = "mirror"
	}
	if mat.Transparency != nil {
		properties["transparency"] = mat.Transparency.Amount
		properties["refractiveIndex"] = mat.Transparency.RefractiveIndex
		materialType = "glass"
	}
	if mat.Emission != nil {
		properties["emissionStrength"] = mat.Emission.Strength
		materialType = "emissive"
	}

	return materialType, properties
}

// extractGeometryInfo describes a shape, recursing into CSG operands
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	operands := func(a, b geometry.Shape) {
		aType, aProps := s.extractGeometryInfo(a)
		bType, bProps := s.extractGeometryInfo(b)
		properties["a"] = map[string]interface{}{"type": aType, "properties": aProps}
		properties["b"] = map[string]interface{}{"type": bType, "properties": bProps}
	}

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	case *geometry.Intersection:
		operands(geom.A, geom.B)
		return "intersection", properties

	case *geometry.Difference:
		operands(geom.A, geom.B)
		return "difference", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit    bool
	Object scene.Object
	Record geometry.Hit
}

// inspectPixel casts the camera ray through a pixel center and reports the nearest object
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.GetRay(pixelX, pixelY, width, height)

	object, hit, isHit := sceneObj.Hit(ray, 0)
	if !isHit {
		return InspectResult{Hit: false}
	}
	return InspectResult{Hit: true, Object: object, Record: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sceneObj, err := scene.Create(inspectReq.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.Object.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Object.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectID:     int(result.Object.ID),
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.Record.Point),
		Normal:       vecArray(result.Record.Normal),
		Distance:     result.Record.Distance,
		FrontFace:    result.Record.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
