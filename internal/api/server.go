// Package api provides the HTTP API for querying world state.
// GET endpoints are public (read-only observation).
// POST endpoints mutate the session (harvest, craft, player moves).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/tidewood/internal/engine"
	"github.com/talgya/tidewood/internal/journal"
	"github.com/talgya/tidewood/internal/world"
)

// defaultQueryRadius bounds spatial queries when the client omits one.
const defaultQueryRadius = 500.0

// maxQueryRadius caps client-supplied radii so one request cannot force
// generation of an unbounded chunk area.
const maxQueryRadius = 5000.0

// Server serves the session state over HTTP.
type Server struct {
	Session *engine.Session
	DB      *journal.DB // nil disables /events
	Port    int
	WS      http.HandlerFunc // mounted at /ws when set

	zenc *zstd.Encoder
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	var err error
	s.zenc, err = zstd.NewWriter(nil)
	if err != nil {
		slog.Error("zstd encoder init failed", "error", err)
	}

	// Chunk fetches force generation and /events hits the journal;
	// both get a per-IP budget.
	chunkLimiter := NewRateLimiter(300, time.Minute)
	eventsLimiter := NewRateLimiter(60, time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/biome", s.handleBiome)
	mux.HandleFunc("/api/v1/walkable", s.handleWalkable)
	mux.HandleFunc("/api/v1/chunk", RateLimitMiddleware(chunkLimiter, s.handleChunk))
	mux.HandleFunc("/api/v1/objects", s.handleObjects)
	mux.HandleFunc("/api/v1/buildings", s.handleBuildings)
	mux.HandleFunc("/api/v1/npcs", s.handleNPCs)
	mux.HandleFunc("/api/v1/animals", s.handleAnimals)
	mux.HandleFunc("/api/v1/inventory", s.handleInventory)
	mux.HandleFunc("/api/v1/quests", s.handleQuests)
	mux.HandleFunc("/api/v1/recipes", s.handleRecipes)
	mux.HandleFunc("/api/v1/events", RateLimitMiddleware(eventsLimiter, s.handleEvents))

	mux.HandleFunc("/api/v1/player", s.postOnly(s.handlePlayer))
	mux.HandleFunc("/api/v1/harvest", s.postOnly(s.handleHarvest))
	mux.HandleFunc("/api/v1/craft", s.postOnly(s.handleCraft))

	if s.WS != nil {
		mux.HandleFunc("/ws", s.WS)
	}

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

// queryFloat reads a float query parameter, falling back when absent or
// malformed.
func queryFloat(r *http.Request, name string, fallback float64) float64 {
	if v := r.URL.Query().Get(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func queryRadius(r *http.Request) float64 {
	radius := queryFloat(r, "radius", defaultQueryRadius)
	if radius <= 0 {
		radius = defaultQueryRadius
	}
	if radius > maxQueryRadius {
		radius = maxQueryRadius
	}
	return radius
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	px, py := s.Session.Player()
	sk := s.Session.SkyState()
	writeJSON(w, map[string]any{
		"name":        "Tidewood",
		"seed":        s.Session.Seed(),
		"clock":       sk.Clock,
		"time_of_day": sk.TimeOfDay,
		"phase":       sk.Phase,
		"ambient":     sk.Ambient,
		"player_x":    px,
		"player_y":    py,
		"chunks":      s.Session.World().ChunkCount(),
		"objects":     s.Session.World().ObjectCount(),
	})
}

func (s *Server) handleBiome(w http.ResponseWriter, r *http.Request) {
	x := queryFloat(r, "x", 0)
	y := queryFloat(r, "y", 0)
	b := s.Session.World().BiomeAt(x, y)
	writeJSON(w, map[string]any{
		"x":     x,
		"y":     y,
		"biome": world.BiomeName(b),
		"color": s.Session.World().TerrainColor(x, y),
	})
}

func (s *Server) handleWalkable(w http.ResponseWriter, r *http.Request) {
	x := queryFloat(r, "x", 0)
	y := queryFloat(r, "y", 0)
	writeJSON(w, map[string]any{
		"x":        x,
		"y":        y,
		"walkable": s.Session.World().IsWalkable(x, y),
	})
}

// handleChunk returns one chunk's full tile grid and objects. With
// ?encoding=zstd the JSON body is zstd-compressed; tile grids are big
// and repetitive, so this cuts transfer size for the map renderer.
// Serialization works on a detached copy so the frame loop can keep
// harvesting and respawning the live chunk.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	cx, err1 := strconv.Atoi(r.URL.Query().Get("cx"))
	cy, err2 := strconv.Atoi(r.URL.Query().Get("cy"))
	if err1 != nil || err2 != nil {
		http.Error(w, "cx and cy are required integers", http.StatusBadRequest)
		return
	}

	ch := s.Session.World().ChunkSnapshot(cx, cy)

	if r.URL.Query().Get("encoding") == "zstd" && s.zenc != nil {
		raw, err := json.Marshal(ch)
		if err != nil {
			http.Error(w, "encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "zstd")
		w.Write(s.zenc.EncodeAll(raw, nil))
		return
	}
	writeJSON(w, ch)
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	x := queryFloat(r, "x", 0)
	y := queryFloat(r, "y", 0)
	writeJSON(w, s.Session.World().ObjectsNear(x, y, queryRadius(r)))
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("x") == "" && r.URL.Query().Get("y") == "" {
		writeJSON(w, s.Session.World().Buildings())
		return
	}
	x := queryFloat(r, "x", 0)
	y := queryFloat(r, "y", 0)
	writeJSON(w, s.Session.World().BuildingsNear(x, y, queryRadius(r)))
}

func (s *Server) handleNPCs(w http.ResponseWriter, r *http.Request) {
	x := queryFloat(r, "x", 0)
	y := queryFloat(r, "y", 0)
	writeJSON(w, s.Session.NPCsNear(x, y, queryRadius(r)))
}

func (s *Server) handleAnimals(w http.ResponseWriter, r *http.Request) {
	x := queryFloat(r, "x", 0)
	y := queryFloat(r, "y", 0)
	writeJSON(w, s.Session.AnimalsNear(x, y, queryRadius(r)))
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.Inventory())
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.Quests())
}

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Session.Recipes())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "journal not available", http.StatusServiceUnavailable)
		return
	}
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	events, err := s.DB.Recent(limit)
	if err != nil {
		slog.Error("events query failed", "error", err)
		writeJSON(w, []journal.Event{})
		return
	}
	if events == nil {
		events = []journal.Event{}
	}
	writeJSON(w, events)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if !s.Session.World().IsWalkable(req.X, req.Y) {
		http.Error(w, "target is not walkable", http.StatusConflict)
		return
	}
	s.Session.SetPlayer(req.X, req.Y)
	writeJSON(w, map[string]float64{"x": req.X, "y": req.Y})
}

func (s *Server) handleHarvest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ObjectID int64 `json:"object_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	res, ok := s.Session.Harvest(req.ObjectID)
	if !ok {
		http.Error(w, "no harvestable object with that id", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"resource":  world.ResourceName(res.Resource),
		"amount":    res.Amount,
		"inventory": s.Session.Inventory(),
	})
}

func (s *Server) handleCraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipe string `json:"recipe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := s.Session.Craft(req.Recipe); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]any{
		"crafted":   req.Recipe,
		"inventory": s.Session.Inventory(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
