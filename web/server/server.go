package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string
	logger    *slog.Logger
}

// NewServer creates a new web server. JSON scenes are discovered in scenesDir.
func NewServer(port int, scenesDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{port: port, scenesDir: scenesDir, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string         `json:"scene"`   // Scene ID as listed by /api/scenes
	Width   int            `json:"width"`   // Image width
	Height  int            `json:"height"`  // Image height
	Samples int            `json:"samples"` // Samples per pixel
	Depth   int            `json:"depth"`   // Maximum bounce depth
	Seed    int64          `json:"seed"`    // Sampler seed
	Format  imageio.Format `json:"format"`  // Encoding of the final image
}

// ProgressUpdate is sent via SSE after each finished tile
type ProgressUpdate struct {
	TilesDone  int   `json:"tilesDone"`
	TilesTotal int   `json:"tilesTotal"`
	ElapsedMs  int64 `json:"elapsedMs"`
}

// CompleteUpdate carries the finished image
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded image
	Format    string `json:"format"`
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	TotalSamples    int64 `json:"totalSamples"`
	SamplesPerPixel int   `json:"samplesPerPixel"`
	Tiles           int   `json:"tiles"`
	Workers         int   `json:"workers"`
	ElapsedMs       int64 `json:"elapsedMs"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "addr", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAll(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders a scene, streaming tile progress with SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.resolveScene(req.Scene, req.Seed)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}
	sceneObj = sceneObj.WithSampling(core.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
	})

	world, err := sceneObj.Build()
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	startTime := time.Now()
	var writeMu sync.Mutex
	progress := func(done, total int) {
		writeMu.Lock()
		defer writeMu.Unlock()
		update := ProgressUpdate{TilesDone: done, TilesTotal: total, ElapsedMs: time.Since(startTime).Milliseconds()}
		if err := s.sendSSEJSON(w, "progress", update); err != nil {
			s.logger.Debug("failed to send progress", "error", err)
		}
	}

	config := sceneObj.SamplingConfig
	rt := renderer.NewRaytracer(world, sceneObj.Camera(),
		integrator.NewPathTracingIntegrator(config.MaxDepth, sceneObj.Background),
		config,
		renderer.WithSeed(req.Seed),
		renderer.WithLogger(s.logger.With("scene", req.Scene)),
		renderer.WithProgress(progress),
	)

	// Request context cancels the render when the client disconnects
	frame, stats, err := rt.Render(r.Context())
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, req.Format, frame); err != nil {
		s.sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	s.sendSSEJSON(w, "complete", CompleteUpdate{
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Format:    string(req.Format),
		Stats: Stats{
			TotalPixels:     stats.TotalPixels,
			TotalSamples:    int64(stats.TotalSamples),
			SamplesPerPixel: stats.SamplesPerPixel,
			Tiles:           stats.Tiles,
			Workers:         stats.Workers,
			ElapsedMs:       stats.Duration.Milliseconds(),
		},
	})
}

// resolveScene maps a scene ID to a built-in scene or a JSON scene discovered in scenesDir.
// Client input is only compared against listed IDs, never opened as a path.
func (s *Server) resolveScene(id string, seed int64) (*scene.Scene, error) {
	if sceneObj, err := scene.CreateBuiltin(id, seed); err == nil {
		return sceneObj, nil
	}

	jsonScenes, err := scene.ListJSONScenes(s.scenesDir)
	if err != nil {
		s.logger.Error("failed to list scenes", "dir", s.scenesDir, "error", err)
		return nil, errors.New("failed to list scenes")
	}
	for _, info := range jsonScenes {
		if info.ID != id {
			continue
		}
		sceneObj, err := scene.LoadFile(info.FilePath)
		if err != nil {
			s.logger.Error("failed to load scene", "path", info.FilePath, "error", err)
			return nil, fmt.Errorf("failed to load scene %q", id)
		}
		return sceneObj, nil
	}

	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id)
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default", Format: imageio.FormatPNG}

	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}
	if format := values.Get("format"); format != "" {
		req.Format = imageio.Format(format)
		if req.Format == imageio.FormatPPM {
			return nil, errors.New("format ppm is not supported over HTTP")
		}
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 200, 16, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", core.DefaultMaxDepth, 1, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, int(^uint32(0)>>1))
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	return req, nil
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

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.resolveScene(sceneName, 42)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]any{
		"scene":   sceneName,
		"spheres": len(sceneObj.Spheres),
		"defaults": map[string]int{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]map[string]int{
			"width":   {"min": 16, "max": 2000},
			"height":  {"min": 16, "max": 2000},
			"samples": {"min": 1, "max": 10000},
			"depth":   {"min": 1, "max": 1000},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sendSSEJSON sends a JSON payload as an SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, event, string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	s.logger.Warn("render request failed", "error", message)
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
