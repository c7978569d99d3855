// Package server implements the browser preview surface: a static page plus
// a websocket endpoint that generates heightmaps on demand and pushes the
// text table and PNG data URI renders back to the client.
package server

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fieldworks/heightmap/internal/config"
	"github.com/fieldworks/heightmap/internal/heightfield"
	"github.com/fieldworks/heightmap/internal/logger"
	"github.com/fieldworks/heightmap/internal/noise"
	"github.com/fieldworks/heightmap/internal/render"
)

// GenerateRequest is a client's ask for one heightmap. Zero-valued fields
// fall back to the server's generator preset. A nil seed asks the server to
// pick one.
type GenerateRequest struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	MinHeight float64 `json:"min_height"`
	MaxHeight float64 `json:"max_height"`
	Octaves   int     `json:"octaves"`
	Seed      *uint64 `json:"seed"`
	Noise     string  `json:"noise"`
}

// GenerateResponse carries the rendered forms of one generated map. The seed
// is echoed (or reported, when the server picked it) so the client can
// reproduce the map. On failure only Error is set.
type GenerateResponse struct {
	Seed     uint64 `json:"seed"`
	Table    string `json:"table"`
	ImageURI string `json:"image_uri"`
	Error    string `json:"error,omitempty"`
}

// PreviewServer serves the preview page and its websocket endpoint.
type PreviewServer struct {
	cfg      *config.Config
	upgrader websocket.Upgrader

	mu  sync.Mutex
	rng *rand.Rand // seeds for requests that don't bring one
}

// New creates a PreviewServer around the given configuration.
func New(cfg *config.Config) *PreviewServer {
	s := &PreviewServer{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := cfg.Preview.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("Rejected websocket origin", "origin", origin, "host", r.Host)
			}
			return allowed
		},
	}
	return s
}

// Handler returns the HTTP handler serving the page at / and the websocket
// endpoint at /ws.
func (s *PreviewServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *PreviewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *PreviewServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	defer conn.Close()

	if s.cfg.Preview.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.Preview.MaxMessageSize)
	}

	logger.Info("Preview client connected", "remote", conn.RemoteAddr().String())

	for {
		var req GenerateRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warning("Preview client read failed", "error", err)
			}
			return
		}

		resp := s.generate(req)
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warning("Preview client write failed", "error", err)
			return
		}
	}
}

// generate applies preset defaults, runs one synthesis pass, and renders
// both presentation forms.
func (s *PreviewServer) generate(req GenerateRequest) GenerateResponse {
	preset := s.cfg.Generator
	if req.Width == 0 {
		req.Width = preset.Width
	}
	if req.Height == 0 {
		req.Height = preset.Height
	}
	if req.MinHeight == 0 && req.MaxHeight == 0 {
		req.MinHeight = preset.MinHeight
		req.MaxHeight = preset.MaxHeight
	}
	if req.Octaves == 0 {
		req.Octaves = preset.Octaves
	}
	if req.Noise == "" {
		req.Noise = preset.Noise
	}

	if limit := s.cfg.Preview.MaxCells; limit > 0 && req.Width*req.Height > limit {
		return GenerateResponse{Error: "requested grid is too large"}
	}

	f, err := heightfield.New(req.Width, req.Height, req.MinHeight, req.MaxHeight, req.Octaves)
	if err != nil {
		return GenerateResponse{Error: err.Error()}
	}
	f.SetEvaluator(noise.New(req.Noise))

	var seed uint64
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		s.mu.Lock()
		seed = s.rng.Uint64()
		s.mu.Unlock()
	}
	f.GenerateSeeded(seed)

	uri, err := render.DataURI(f)
	if err != nil {
		logger.Error("Preview render failed", "error", err)
		return GenerateResponse{Error: err.Error()}
	}

	logger.Debug("Preview map generated",
		"width", req.Width, "height", req.Height,
		"octaves", req.Octaves, "seed", seed, "noise", req.Noise)

	return GenerateResponse{
		Seed:     seed,
		Table:    render.Text(f),
		ImageURI: uri,
	}
}
