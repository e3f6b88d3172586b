package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"navmesh-planner/geometry"
	"navmesh-planner/internal/config"
	"navmesh-planner/navmesh"
)

type RouteRequest struct {
	Start mgl64.Vec3 `json:"start"`
	End   mgl64.Vec3 `json:"end"`
}

type RouteResponse struct {
	Path     []mgl64.Vec3 `json:"path"`
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Distance float64      `json:"distance,omitempty"`
}

type RegionRequest struct {
	Point   mgl64.Vec3 `json:"point"`
	Epsilon *float64   `json:"epsilon,omitempty"`
}

type RegionResponse struct {
	Found    bool         `json:"found"`
	Index    int          `json:"index"`
	Centroid mgl64.Vec3   `json:"centroid,omitempty"`
	Contour  []mgl64.Vec3 `json:"contour,omitempty"`
	Closest  bool         `json:"closest,omitempty"`
}

type BuildRequest struct {
	Polygons []geometry.Polygon `json:"polygons"`
	Force    bool               `json:"force,omitempty"`
}

// server holds the active mesh. Queries share it under the read lock; a
// rebuild swaps in a fresh mesh under the write lock.
type server struct {
	cfg config.Planner

	mu   sync.RWMutex
	mesh *navmesh.NavMesh
}

func newServer(cfg config.Planner, mesh *navmesh.NavMesh) *server {
	return &server{cfg: cfg, mesh: mesh}
}

func (s *server) current() *navmesh.NavMesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mesh
}

// routes registers every endpoint on a fresh mux.
func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/region", corsMiddleware(s.regionHandler))
	mux.HandleFunc("/build", corsMiddleware(s.buildHandler))
	mux.HandleFunc("/graph", corsMiddleware(s.graphLinesHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

// POST /route - smoothed path between two points
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		requestsTotal.WithLabelValues("route", "bad_method").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid route request", "err", err)
		requestsTotal.WithLabelValues("route", "bad_request").Inc()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mesh := s.current()
	if mesh == nil || mesh.RegionCount() == 0 {
		requestsTotal.WithLabelValues("route", "no_mesh").Inc()
		http.Error(w, "Navigation mesh not built. POST polygons to /build first", http.StatusServiceUnavailable)
		return
	}

	start := time.Now()
	path := mesh.FindPath(req.Start, req.End)
	routeDuration.Observe(time.Since(start).Seconds())

	resp := RouteResponse{Path: path, Success: len(path) > 0}
	if !resp.Success {
		resp.Message = "No path found between the regions of start and end"
		requestsTotal.WithLabelValues("route", "not_found").Inc()
		slog.Info("no route", "start", req.Start, "end", req.End)
	} else {
		for i := 0; i+1 < len(path); i++ {
			resp.Distance += geometry.Distance(path[i], path[i+1])
		}
		routeWaypoints.Observe(float64(len(path)))
		requestsTotal.WithLabelValues("route", "ok").Inc()
		slog.Debug("route found",
			"start", req.Start,
			"end", req.End,
			"waypoints", len(path),
			"distance", resp.Distance,
		)
	}

	writeJSON(w, http.StatusOK, resp)
}

// POST /region - region containing a point, or the closest one
func (s *server) regionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		requestsTotal.WithLabelValues("region", "bad_method").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues("region", "bad_request").Inc()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mesh := s.current()
	if mesh == nil {
		requestsTotal.WithLabelValues("region", "no_mesh").Inc()
		http.Error(w, "Navigation mesh not built", http.StatusServiceUnavailable)
		return
	}

	eps := mesh.EpsilonContainsTest
	if req.Epsilon != nil {
		eps = *req.Epsilon
	}

	resp := RegionResponse{Index: -1}
	region := mesh.RegionForPoint(req.Point, eps)
	if region == nil {
		region = mesh.ClosestRegion(req.Point)
		resp.Closest = region != nil
	} else {
		resp.Found = true
	}
	if region != nil {
		resp.Index = region.Index
		resp.Centroid = region.Centroid
		resp.Contour = region.Contour()
	}

	requestsTotal.WithLabelValues("region", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

// POST /build - replace the mesh with one built from the posted polygons
func (s *server) buildHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		requestsTotal.WithLabelValues("build", "bad_method").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues("build", "bad_request").Inc()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if s.occupied() && !req.Force {
		s.buildConflict(w)
		return
	}

	mesh, err := newMesh(s.cfg)
	if err != nil {
		requestsTotal.WithLabelValues("build", "error").Inc()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	buildMesh(mesh, s.cfg.SpatialIndex, req.Polygons)

	// another build may have landed while this one ran
	s.mu.Lock()
	if !req.Force && s.mesh != nil && s.mesh.RegionCount() > 0 {
		s.mu.Unlock()
		s.buildConflict(w)
		return
	}
	s.mesh = mesh
	s.mu.Unlock()

	requestsTotal.WithLabelValues("build", "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"regions":    mesh.RegionCount(),
		"graphEdges": mesh.Graph().EdgeCount(),
	})
}

// occupied reports whether a non-empty mesh is active.
func (s *server) occupied() bool {
	mesh := s.current()
	return mesh != nil && mesh.RegionCount() > 0
}

func (s *server) buildConflict(w http.ResponseWriter) {
	requestsTotal.WithLabelValues("build", "conflict").Inc()
	writeJSON(w, http.StatusConflict, map[string]any{
		"success": false,
		"error":   "navigation mesh already exists",
		"message": "Set 'force: true' to rebuild.",
	})
}

// GET /graph - region graph edges as centroid pairs for visualization
func (s *server) graphLinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		requestsTotal.WithLabelValues("graph", "bad_method").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mesh := s.current()
	if mesh == nil {
		requestsTotal.WithLabelValues("graph", "no_mesh").Inc()
		http.Error(w, "Navigation mesh not built", http.StatusServiceUnavailable)
		return
	}

	snapshot := mesh.Export()
	lines := snapshot.Lines()

	requestsTotal.WithLabelValues("graph", "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"lines":      lines,
		"numRegions": len(snapshot.Regions),
		"numEdges":   len(lines),
	})
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	mesh := s.current()
	regions := 0
	if mesh != nil {
		regions = mesh.RegionCount()
	}

	status := "ready"
	if regions == 0 {
		status = "waiting for navigation mesh"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"regions": regions,
	})
}
