package server

import (
	"log"
	"net/http"

	"scorekeeper/config"
	"scorekeeper/internal/engine"

	"github.com/gorilla/mux"
)

type Server struct {
	cfg    *config.Config
	engine *engine.Engine
}

func NewServer(cfg *config.Config, eng *engine.Engine) *Server {
	return &Server{cfg: cfg, engine: eng}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/tournaments", s.handleCreateTournament).Methods(http.MethodPost)
	r.HandleFunc("/tournaments", s.handleListTournaments).Methods(http.MethodGet)
	r.HandleFunc("/tournaments/{id}", s.handleGetTournament).Methods(http.MethodGet)
	r.HandleFunc("/tournaments/{id}/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/tournaments/{id}/scores", s.handleRecordScore).Methods(http.MethodPost)
	r.HandleFunc("/tournaments/{id}/scores", s.handleDeleteScore).Methods(http.MethodDelete)
	r.HandleFunc("/tournaments/{id}/events", s.handleParserEvent).Methods(http.MethodPost)
	r.HandleFunc("/tournaments/{id}/advance", s.handleAdvanceRound).Methods(http.MethodPost)
	r.HandleFunc("/tournaments/{id}/clear", s.handleClearTournament).Methods(http.MethodPost)
	r.HandleFunc("/tournaments/{id}/sidegames", s.handleCreateSidegame).Methods(http.MethodPost)
	r.HandleFunc("/sidegames/{id}", s.handleGetSidegame).Methods(http.MethodGet)
	r.HandleFunc("/sidegames/{id}/leaderboard", s.handleSidegameLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/sidegames/{id}/scorecard", s.handleSidegameScorecard).Methods(http.MethodGet)
	r.HandleFunc("/sidegames/{id}/matches", s.handleSidegameMatches).Methods(http.MethodGet)

	return r
}

func StartServer(cfg *config.Config, eng *engine.Engine) {
	s := NewServer(cfg, eng)

	port := ":" + cfg.Server.Port
	log.Printf("Server is listening on port%s", port)
	if err := http.ListenAndServe(port, s.Router()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
