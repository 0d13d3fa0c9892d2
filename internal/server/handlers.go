package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"scorekeeper/internal/engine"
	"scorekeeper/internal/golf"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

type createTournamentRequest struct {
	Name        string `json:"name"`
	TotalRounds int    `json:"totalRounds"`
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Name == "" {
		req.Name = s.cfg.Tournament.Name
	}
	if req.TotalRounds == 0 {
		req.TotalRounds = s.cfg.Tournament.TotalRounds
	}

	pars, err := s.cfg.Course.ParArray()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	strokeIndex, err := s.cfg.Course.StrokeIndexArray()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seeds := make([]engine.PlayerSeed, 0, len(s.cfg.Tournament.Players))
	for _, pc := range s.cfg.Tournament.Players {
		seeds = append(seeds, engine.PlayerSeed{Name: pc.Name, HandicapIndex: pc.HandicapIndex})
	}

	t := s.engine.CreateTournament(r.Context(), req.Name, pars, strokeIndex,
		s.cfg.Course.Rating, s.cfg.Course.Slope, req.TotalRounds, seeds)
	respondJSON(w, http.StatusCreated, t)
}

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.engine.Tournaments())
}

func (s *Server) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	t, ok := s.engine.Tournament(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "tournament not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	round := 0
	if v := r.URL.Query().Get("round"); v != "" {
		round, _ = strconv.Atoi(v)
	}
	stableford := r.URL.Query().Get("view") == "stableford"

	entries, ok := s.engine.Leaderboard(mux.Vars(r)["id"], round, stableford)
	if !ok {
		// Lookup misses are routine; answer with an empty board.
		respondJSON(w, http.StatusOK, []golf.LeaderboardEntry{})
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type recordScoreRequest struct {
	Player  string `json:"player"`
	Hole    int    `json:"hole"`
	Strokes int    `json:"strokes"`
}

func (s *Server) handleRecordScore(w http.ResponseWriter, r *http.Request) {
	var req recordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	sc, ok, err := s.engine.RecordScore(r.Context(), mux.Vars(r)["id"], req.Player, req.Hole, req.Strokes)
	switch {
	case !ok:
		http.Error(w, "tournament not found", http.StatusNotFound)
		return
	case errors.Is(err, golf.ErrUnknownPlayer):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

type deleteScoreRequest struct {
	Player string `json:"player"`
	Hole   int    `json:"hole"`
}

func (s *Server) handleDeleteScore(w http.ResponseWriter, r *http.Request) {
	var req deleteScoreRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	removed, ok := s.engine.DeleteScore(r.Context(), mux.Vars(r)["id"], req.Player, req.Hole)
	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{"deleted": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deleted": true, "score": removed})
}

func (s *Server) handleParserEvent(w http.ResponseWriter, r *http.Request) {
	var ev golf.ParserEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	mut, err := s.engine.IngestParserEvent(r.Context(), mux.Vars(r)["id"], ev)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"result": mut.Kind, "hole": mut.Hole, "round": mut.Round})
}

func (s *Server) handleAdvanceRound(w http.ResponseWriter, r *http.Request) {
	round, err := s.engine.AdvanceRound(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"currentRound": round})
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) handleClearTournament(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	// Clearing is irreversible; require explicit confirmation.
	if !req.Confirm {
		http.Error(w, "clear requires confirm=true", http.StatusBadRequest)
		return
	}
	if !s.engine.ClearTournament(r.Context(), mux.Vars(r)["id"]) {
		http.Error(w, "tournament not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

type createSidegameRequest struct {
	Round     int           `json:"round"`
	GameType  golf.GameType `json:"gameType"`
	Groupings [][]string    `json:"groupings"`
}

func (s *Server) handleCreateSidegame(w http.ResponseWriter, r *http.Request) {
	var req createSidegameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	g, err := s.engine.CreateSidegame(r.Context(), mux.Vars(r)["id"], req.Round, req.GameType, s.cfg.GolfTeams(), req.Groupings)
	if errors.Is(err, engine.ErrSidegameExists) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if g == nil {
		http.Error(w, "tournament not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

func (s *Server) handleGetSidegame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.engine.Sidegame(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "sidegame not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleSidegameLeaderboard(w http.ResponseWriter, r *http.Request) {
	standings, ok := s.engine.SidegameLeaderboard(mux.Vars(r)["id"])
	if !ok {
		respondJSON(w, http.StatusOK, []golf.TeamStanding{})
		return
	}
	respondJSON(w, http.StatusOK, standings)
}

func (s *Server) handleSidegameScorecard(w http.ResponseWriter, r *http.Request) {
	rows, ok := s.engine.SidegameScorecard(mux.Vars(r)["id"])
	if !ok {
		respondJSON(w, http.StatusOK, []golf.ScorecardRow{})
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSidegameMatches(w http.ResponseWriter, r *http.Request) {
	matches, ok := s.engine.SidegameMatches(mux.Vars(r)["id"])
	if !ok {
		respondJSON(w, http.StatusOK, []golf.TeamMatch{})
		return
	}
	respondJSON(w, http.StatusOK, matches)
}
