package golf

import (
	"errors"
	"fmt"
)

// Action is the parser's classification of a scoring statement. Relative
// terms are resolved against the hole's par.
type Action string

const (
	ActionEagle       Action = "eagle"
	ActionBirdie      Action = "birdie"
	ActionPar         Action = "par"
	ActionBogey       Action = "bogey"
	ActionDoubleBogey Action = "double_bogey"
	ActionScore       Action = "score"
	ActionDelete      Action = "delete"
)

var actionOffsets = map[Action]int{
	ActionEagle:       -2,
	ActionBirdie:      -1,
	ActionPar:         0,
	ActionBogey:       1,
	ActionDoubleBogey: 2,
}

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrMissingStrokes = errors.New("score action requires explicit strokes")
)

// ParserEvent is the structured record the external NLP parser emits for a
// transcribed scoring statement.
type ParserEvent struct {
	Player  string `json:"player"`
	Hole    *int   `json:"hole"`
	Strokes *int   `json:"strokes"`
	Action  Action `json:"action"`
	RawText string `json:"rawText"`
}

// MutationKind describes what a parser event did to the ledger.
type MutationKind string

const (
	MutationRecorded MutationKind = "recorded"
	MutationDeleted  MutationKind = "deleted"
	MutationNone     MutationKind = "none"
)

// Mutation summarizes an applied parser event so callers know which holes
// need recomputation.
type Mutation struct {
	Kind     MutationKind
	PlayerID string
	Hole     int
	Round    int
	Score    ScoreEvent
}

// ApplyParserEvent validates and applies a parser event to the ledger.
// A null hole resolves to the player's current hole; relative actions derive
// strokes from par. Delete actions route through the deletion fallbacks and
// report MutationNone when nothing resolved.
func (t *Tournament) ApplyParserEvent(ev ParserEvent) (Mutation, error) {
	if ev.Action == ActionDelete {
		hole := 0
		if ev.Hole != nil {
			hole = *ev.Hole
		}
		removed, ok := t.DeleteScore(ev.Player, hole)
		if !ok {
			return Mutation{Kind: MutationNone}, nil
		}
		return Mutation{
			Kind:     MutationDeleted,
			PlayerID: removed.PlayerID,
			Hole:     removed.Hole,
			Round:    removed.Round,
			Score:    removed,
		}, nil
	}

	p, ok := t.FindPlayer(ev.Player)
	if !ok {
		return Mutation{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, ev.Player)
	}

	hole := p.CurrentHole
	if ev.Hole != nil {
		hole = *ev.Hole
	}
	if hole < 1 || hole > Holes {
		return Mutation{}, ErrInvalidHole
	}
	par := t.Pars[hole-1]

	var strokes int
	switch {
	case ev.Strokes != nil:
		strokes = *ev.Strokes
	case ev.Action == ActionScore:
		return Mutation{}, ErrMissingStrokes
	default:
		offset, ok := actionOffsets[ev.Action]
		if !ok {
			return Mutation{}, fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
		}
		strokes = par + offset
	}

	sc, err := t.RecordScore(p.ID, hole, t.CurrentRound, strokes, par)
	if err != nil {
		return Mutation{}, err
	}
	return Mutation{
		Kind:     MutationRecorded,
		PlayerID: p.ID,
		Hole:     hole,
		Round:    sc.Round,
		Score:    sc,
	}, nil
}
