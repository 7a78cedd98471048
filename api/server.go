package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/alaasumrain/skribble-arabic/game/config"
	"github.com/alaasumrain/skribble-arabic/game/registry"
	"github.com/alaasumrain/skribble-arabic/game/service"
	"github.com/alaasumrain/skribble-arabic/transport/websocket"
)

// Server represents the REST API server.
type Server struct {
	service service.GameService
	configs service.ConfigStore
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server.
func NewServer(gameService service.GameService, configs service.ConfigStore, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		configs: configs,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware)

	// Status endpoints the hosting platform polls.
	s.router.HandleFunc("/", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Rooms are read-only here; they are created and joined over WebSocket.
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET")
	api.HandleFunc("/rooms/{id}", s.handleGetRoom).Methods("GET")

	// Word-list configurations
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.hub.ServeWS)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// corsMiddleware mirrors the permissive cross-origin policy of the original
// deployment: the game client is served from a different origin than the
// coordinator. The pack offers no mux-compatible CORS package, so the three
// headers are set by hand.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
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

// Status handlers

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.service.Stats(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"message":   "Arabic Skribbl.io Backend is running!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"rooms":     stats.Rooms,
		"players":   stats.Players,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Room handlers

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.service.ListRooms(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(rooms),
		"rooms": rooms,
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	snap, err := s.service.GetRoom(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, registry.ErrRoomNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// Config handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.configs.ListConfigs()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(configs),
		"configs": configs,
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	cfg, err := s.configs.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string            `json:"config_id"`
		Config   config.GameConfig `json:"config"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.ConfigID == "" {
		respondError(w, http.StatusBadRequest, "config_id is required")
		return
	}

	if err := s.configs.SaveConfig(req.ConfigID, &req.Config); err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"config_id": req.ConfigID,
		"message":   "Config created successfully",
	})
}
