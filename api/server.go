package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/castlebay/boardwalk/game/config"
	"github.com/castlebay/boardwalk/game/engine"
	"github.com/castlebay/boardwalk/game/session"
	"github.com/castlebay/boardwalk/transport/websocket"
)

// Server is the read-only operator API. Game play happens exclusively
// over the TCP transport; this surface exists for dashboards and
// debugging, plus the websocket event feed for live watchers.
type Server struct {
	registry *session.Manager
	layouts  *config.Manager
	hub      *websocket.Hub
	logger   *zap.SugaredLogger
	router   *mux.Router
}

// NewServer creates the API server. The hub may be nil, in which case
// the /ws endpoint reports unavailable.
func NewServer(registry *session.Manager, layouts *config.Manager, hub *websocket.Hub, logger *zap.SugaredLogger) *Server {
	s := &Server{
		registry: registry,
		layouts:  layouts,
		hub:      hub,
		logger:   logger,
		router:   mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}/players", s.handleGetPlayers).Methods("GET")

	api.HandleFunc("/boards", s.handleListBoards).Methods("GET")
	api.HandleFunc("/boards/{name}", s.handleGetBoard).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// gameSummary is the list-view projection of a session.
type gameSummary struct {
	GameID        string `json:"game_id"`
	Players       int    `json:"players"`
	Started       bool   `json:"started"`
	CurrentPlayer string `json:"current_player,omitempty"`
}

// Game Handlers

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	sessions := s.registry.List()

	summaries := make([]gameSummary, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, summarize(sess))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].GameID < summaries[j].GameID
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(summaries),
		"games": summaries,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.registry.Get(mux.Vars(r)["id"])
	if !ok {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}

	// Serialize under the session lock so the snapshot is consistent
	// with concurrent play.
	sess.Lock()
	data, err := json.Marshal(sess.State())
	sess.Unlock()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.registry.Get(mux.Vars(r)["id"])
	if !ok {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}

	sess.Lock()
	data, err := json.Marshal(sess.Players)
	sess.Unlock()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Board Handlers

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	layouts, err := s.layouts.ListLayouts()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(layouts),
		"layouts": layouts,
	})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.layouts.LoadBoard(mux.Vars(r)["name"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, b)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "event feed disabled", http.StatusServiceUnavailable)
		return
	}

	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "game parameter required", http.StatusBadRequest)
		return
	}

	// Watchers may connect before the first player joins; the session is
	// created on demand so the feed never misses the join events.
	s.registry.GetOrCreate(gameID)
	s.hub.ServeWS(w, r, gameID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"games":  s.registry.Count(),
		"conns":  s.registry.ConnCount(),
	})
}

func summarize(sess *engine.Session) gameSummary {
	sess.Lock()
	defer sess.Unlock()

	g := gameSummary{
		GameID:  sess.GameID,
		Players: len(sess.Players),
		Started: sess.Started,
	}
	if sess.Started && len(sess.Players) > 0 {
		g.CurrentPlayer = sess.Players[sess.CurrentPlayerIndex].Name
	}
	return g
}
