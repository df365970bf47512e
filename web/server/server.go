package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits
const (
	MinImageSize   = 10
	MaxImageSize   = 2000
	MaxRenderDepth = 32
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string // Directory scanned for JSON scenes
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest holds the scene parameters shared by render and inspect
type RenderRequest struct {
	Scene    string `json:"scene"`    // Built-in name or JSON scene ID
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	MaxDepth int    `json:"maxDepth"` // Recursion budget, 0 keeps the scene's
	BandRows int    `json:"bandRows"` // Rows per streamed band
}

// Handler returns the routes served by the web server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene, size and depth parameters
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", scene.DefaultWidth, MinImageSize, MaxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", scene.DefaultHeight, MinImageSize, MaxImageSize); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 0, 0, MaxRenderDepth); err != nil {
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

// createScene builds a built-in scene by name or a JSON scene from the
// scenes directory. Paths outside that directory are refused.
func (s *Server) createScene(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	var sc *scene.Scene
	var err error

	if filepath.Ext(req.Scene) == ".json" {
		path, ok := s.scenePath(req.Scene)
		if !ok {
			return nil, fmt.Errorf("unknown scene: %s", req.Scene)
		}
		sc, err = scene.Load(path, req.Width, req.Height, logger)
	} else {
		sc, err = scene.NewBuiltin(req.Scene, req.Width, req.Height)
	}
	if err != nil {
		return nil, err
	}

	if req.MaxDepth > 0 {
		sc.World.MaxDepth = req.MaxDepth
	}
	return sc, nil
}

func (s *Server) scenePath(id string) (string, bool) {
	if s.scenesDir == "" {
		return "", false
	}
	dir, err := filepath.Abs(s.scenesDir)
	if err != nil {
		return "", false
	}
	path, err := filepath.Abs(id)
	if err != nil || filepath.Dir(path) != dir {
		return "", false
	}
	return path, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
