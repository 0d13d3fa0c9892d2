package golf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const Holes = 18

var (
	ErrInvalidHole    = errors.New("hole must be between 1 and 18")
	ErrInvalidStrokes = errors.New("strokes must be at least 1")
	ErrInvalidRound   = errors.New("round must be at least 1")
	ErrUnknownPlayer  = errors.New("unknown player")
)

type Player struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	HandicapIndex   *float64 `json:"handicapIndex,omitempty"`
	ReceivedStrokes int      `json:"receivedStrokes"`
	CurrentHole     int      `json:"currentHole"`
}

// ScoreEvent is a single ledger entry, uniquely keyed by (player, hole, round).
type ScoreEvent struct {
	PlayerID  string    `json:"playerId"`
	Hole      int       `json:"hole"`
	Round     int       `json:"round"`
	Strokes   int       `json:"strokes"`
	Par       int       `json:"par"`
	Timestamp time.Time `json:"timestamp"`
}

type Tournament struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Pars         [Holes]int   `json:"pars"`
	StrokeIndex  [Holes]int   `json:"strokeIndex"`
	CourseRating float64      `json:"courseRating"`
	SlopeRating  int          `json:"slopeRating"`
	Players      []*Player    `json:"players"`
	Scores       []ScoreEvent `json:"scores"`
	TotalRounds  int          `json:"totalRounds"`
	CurrentRound int          `json:"currentRound"`
}

// TotalPar is the sum of the 18 hole pars.
func (t *Tournament) TotalPar() int {
	total := 0
	for _, p := range t.Pars {
		total += p
	}
	return total
}

func NewTournament(name string, pars, strokeIndex [Holes]int, rating float64, slope, totalRounds int) *Tournament {
	if totalRounds < 1 {
		totalRounds = 1
	}
	return &Tournament{
		ID:           uuid.NewString(),
		Name:         name,
		Pars:         pars,
		StrokeIndex:  strokeIndex,
		CourseRating: rating,
		SlopeRating:  slope,
		TotalRounds:  totalRounds,
		CurrentRound: 1,
	}
}

// AddPlayer registers a player and freezes their course handicap. A nil
// handicap index means the player plays off scratch.
func (t *Tournament) AddPlayer(name string, index *float64) *Player {
	received := 0
	if index != nil {
		received = CourseHandicap(*index, t.SlopeRating, t.CourseRating, t.TotalPar())
	}
	p := &Player{
		ID:              uuid.NewString(),
		Name:            name,
		HandicapIndex:   index,
		ReceivedStrokes: received,
		CurrentHole:     1,
	}
	t.Players = append(t.Players, p)
	return p
}

// NormalizeName canonicalizes a player name for identity lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindPlayer resolves a player by canonical name, falling back to a unique
// substring match. An ambiguous substring match resolves to nothing.
func (t *Tournament) FindPlayer(name string) (*Player, bool) {
	norm := NormalizeName(name)
	if norm == "" {
		return nil, false
	}
	for _, p := range t.Players {
		if NormalizeName(p.Name) == norm {
			return p, true
		}
	}
	var match *Player
	for _, p := range t.Players {
		if strings.Contains(NormalizeName(p.Name), norm) {
			if match != nil {
				return nil, false
			}
			match = p
		}
	}
	return match, match != nil
}

func (t *Tournament) playerByID(id string) (*Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ScoreFor returns the ledger entry for (player, hole, round), if any.
func (t *Tournament) ScoreFor(playerID string, hole, round int) (ScoreEvent, bool) {
	for _, sc := range t.Scores {
		if sc.PlayerID == playerID && sc.Hole == hole && sc.Round == round {
			return sc, true
		}
	}
	return ScoreEvent{}, false
}

// RecordScore upserts a ledger entry. Recording the hole a player was
// expected to play next advances their current-hole pointer; out-of-order
// entries leave the pointer alone.
func (t *Tournament) RecordScore(playerID string, hole, round, strokes, par int) (ScoreEvent, error) {
	if hole < 1 || hole > Holes {
		return ScoreEvent{}, ErrInvalidHole
	}
	if strokes < 1 {
		return ScoreEvent{}, ErrInvalidStrokes
	}
	if round < 1 {
		return ScoreEvent{}, ErrInvalidRound
	}
	p, ok := t.playerByID(playerID)
	if !ok {
		return ScoreEvent{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if par == 0 {
		par = t.Pars[hole-1]
	}

	ev := ScoreEvent{
		PlayerID:  playerID,
		Hole:      hole,
		Round:     round,
		Strokes:   strokes,
		Par:       par,
		Timestamp: time.Now(),
	}

	replaced := false
	for i, sc := range t.Scores {
		if sc.PlayerID == playerID && sc.Hole == hole && sc.Round == round {
			t.Scores[i] = ev
			replaced = true
			break
		}
	}
	if !replaced {
		t.Scores = append(t.Scores, ev)
	}

	if hole == p.CurrentHole && hole < Holes {
		p.CurrentHole = hole + 1
	}
	return ev, nil
}

// DeleteScore removes a ledger entry, resolving the target in priority order:
// explicit player+hole in the current round, the named player's most recent
// score, or the most recent score overall ("undo last"). An unresolvable
// delete is a no-op.
func (t *Tournament) DeleteScore(playerName string, hole int) (ScoreEvent, bool) {
	idx := -1

	switch {
	case playerName != "" && hole >= 1 && hole <= Holes:
		p, ok := t.FindPlayer(playerName)
		if !ok {
			return ScoreEvent{}, false
		}
		for i, sc := range t.Scores {
			if sc.PlayerID == p.ID && sc.Hole == hole && sc.Round == t.CurrentRound {
				idx = i
				break
			}
		}
	case playerName != "":
		p, ok := t.FindPlayer(playerName)
		if !ok {
			return ScoreEvent{}, false
		}
		// Later ledger position wins timestamp ties.
		for i, sc := range t.Scores {
			if sc.PlayerID == p.ID && (idx == -1 || !sc.Timestamp.Before(t.Scores[idx].Timestamp)) {
				idx = i
			}
		}
	default:
		for i, sc := range t.Scores {
			if idx == -1 || !sc.Timestamp.Before(t.Scores[idx].Timestamp) {
				idx = i
			}
		}
	}

	if idx == -1 {
		return ScoreEvent{}, false
	}
	removed := t.Scores[idx]
	t.Scores = append(t.Scores[:idx], t.Scores[idx+1:]...)
	return removed, true
}

// AdvanceRound moves the tournament to the next round. The round counter is
// monotonic and bounded by TotalRounds.
func (t *Tournament) AdvanceRound() (int, error) {
	if t.CurrentRound >= t.TotalRounds {
		return t.CurrentRound, fmt.Errorf("already in final round %d", t.CurrentRound)
	}
	t.CurrentRound++
	for _, p := range t.Players {
		p.CurrentHole = 1
	}
	return t.CurrentRound, nil
}

// Clear empties the ledger and resets round and hole pointers. Player and
// team identity records survive.
func (t *Tournament) Clear() {
	t.Scores = nil
	t.CurrentRound = 1
	for _, p := range t.Players {
		p.CurrentHole = 1
	}
}

// Clone deep-copies the tournament so stores can hand out snapshots without
// sharing mutable state.
func (t *Tournament) Clone() *Tournament {
	out := *t
	out.Players = make([]*Player, len(t.Players))
	for i, p := range t.Players {
		cp := *p
		if p.HandicapIndex != nil {
			idx := *p.HandicapIndex
			cp.HandicapIndex = &idx
		}
		out.Players[i] = &cp
	}
	out.Scores = make([]ScoreEvent, len(t.Scores))
	copy(out.Scores, t.Scores)
	return &out
}
