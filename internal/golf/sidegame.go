package golf

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

type GameType string

const (
	GameTypeSumMatch GameType = "sum-match"
	GameTypeAllVsAll GameType = "all-vs-all"
)

var (
	ErrInvalidGameType  = errors.New("invalid game type")
	ErrMissingGroupings = errors.New("all-vs-all requires groupings")
)

// AlternationRule designates roster positions that take turns counting
// toward the team's sum-match total. Hole N counts Alternates[(N-1) mod len].
type AlternationRule struct {
	Alternates []string `json:"alternates"`
}

type Team struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Color       string           `json:"color"`
	Members     []string         `json:"members"`
	Alternation *AlternationRule `json:"alternation,omitempty"`
}

// CountingMembers returns the members whose scores count on the given hole.
// Without an alternation rule every member counts; with one, the designated
// alternates are swapped out for the single alternate selected by the hole.
func (tm Team) CountingMembers(hole int) []string {
	if tm.Alternation == nil || len(tm.Alternation.Alternates) == 0 {
		return tm.Members
	}
	active := tm.Alternation.Alternates[(hole-1)%len(tm.Alternation.Alternates)]
	out := make([]string, 0, len(tm.Members))
	for _, m := range tm.Members {
		skip := false
		for _, alt := range tm.Alternation.Alternates {
			if NormalizeName(m) == NormalizeName(alt) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, m)
		}
	}
	return append(out, active)
}

// TeamMatch is the cached per-hole result, keyed by (sidegame, hole).
// Recomputation replaces the record for its hole, never appends a duplicate.
type TeamMatch struct {
	SidegameID   string         `json:"sidegameId"`
	Hole         int            `json:"hole"`
	Participants []string       `json:"participants"`
	TeamPoints   map[string]int `json:"teamPoints"`
	HoleResults  map[string]int `json:"holeResults"`
	Timestamp    time.Time      `json:"timestamp"`
}

type TeamStanding struct {
	Position int    `json:"position"`
	TeamID   string `json:"teamId"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Points   int    `json:"points"`
}

// ScorecardRow is one hole of the live sum-match matrix: team id to
// strokes-vs-par for that hole.
type ScorecardRow struct {
	Hole   int            `json:"hole"`
	Totals map[string]int `json:"totals"`
}

// Sidegame is a per-round team game. GameType and Groupings are fixed at
// creation; a sidegame is either absent or permanently active for its round.
type Sidegame struct {
	ID           string      `json:"id"`
	TournamentID string      `json:"tournamentId"`
	Round        int         `json:"round"`
	GameType     GameType    `json:"gameType"`
	Teams        []Team      `json:"teams"`
	Groupings    [][]string  `json:"groupings,omitempty"`
	Matches      []TeamMatch `json:"matches"`
}

func NewSidegame(tournamentID string, round int, gameType GameType, teams []Team, groupings [][]string) (*Sidegame, error) {
	if gameType != GameTypeSumMatch && gameType != GameTypeAllVsAll {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGameType, gameType)
	}
	if gameType == GameTypeAllVsAll && len(groupings) == 0 {
		return nil, ErrMissingGroupings
	}
	if round < 1 {
		return nil, ErrInvalidRound
	}
	return &Sidegame{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Round:        round,
		GameType:     gameType,
		Teams:        teams,
		Groupings:    groupings,
	}, nil
}

func (g *Sidegame) teamOf(playerName string) (Team, bool) {
	for _, tm := range g.Teams {
		for _, m := range tm.Members {
			if NormalizeName(m) == NormalizeName(playerName) {
				return tm, true
			}
		}
	}
	return Team{}, false
}

// holeTotals sums strokes-vs-par per team for one hole, honoring alternation
// rules. Returns per-team totals, per-player results, and the participants
// that actually have a score on the hole.
func (g *Sidegame) holeTotals(t *Tournament, hole int) (map[string]int, map[string]int, []string) {
	totals := make(map[string]int)
	results := make(map[string]int)
	var participants []string
	for _, tm := range g.Teams {
		for _, name := range tm.CountingMembers(hole) {
			p, ok := t.FindPlayer(name)
			if !ok {
				continue
			}
			sc, ok := t.ScoreFor(p.ID, hole, g.Round)
			if !ok {
				continue
			}
			v := sc.Strokes - sc.Par
			totals[tm.ID] += v
			results[p.Name] = v
			participants = append(participants, p.Name)
		}
	}
	return totals, results, participants
}

func (g *Sidegame) computeSumMatch(t *Tournament, hole int) (TeamMatch, bool) {
	totals, results, participants := g.holeTotals(t, hole)
	if len(totals) == 0 {
		return TeamMatch{}, false
	}

	best, worst := 0, 0
	first := true
	for _, v := range totals {
		if first {
			best, worst = v, v
			first = false
			continue
		}
		if v < best {
			best = v
		}
		if v > worst {
			worst = v
		}
	}

	points := make(map[string]int, len(totals))
	for id := range totals {
		points[id] = 0
	}
	// Every team tied at an extreme shares the award; a fully tied hole
	// awards nothing.
	if best != worst {
		for id, v := range totals {
			switch v {
			case best:
				points[id] = 1
			case worst:
				points[id] = -1
			}
		}
	}

	return TeamMatch{
		SidegameID:   g.ID,
		Hole:         hole,
		Participants: participants,
		TeamPoints:   points,
		HoleResults:  results,
		Timestamp:    time.Now(),
	}, true
}

func (g *Sidegame) computeAllVsAll(t *Tournament, hole int) (TeamMatch, bool) {
	points := make(map[string]int)
	results := make(map[string]int)
	var participants []string
	any := false

	for _, group := range g.Groupings {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				pa, okA := t.FindPlayer(group[i])
				pb, okB := t.FindPlayer(group[j])
				if !okA || !okB {
					continue
				}
				ta, okA := g.teamOf(pa.Name)
				tb, okB := g.teamOf(pb.Name)
				if !okA || !okB || ta.ID == tb.ID {
					continue
				}
				sa, okA := t.ScoreFor(pa.ID, hole, g.Round)
				sb, okB := t.ScoreFor(pb.ID, hole, g.Round)
				if !okA || !okB {
					continue
				}
				ptsA := StablefordPoints(sa.Strokes, sa.Par, AllowanceStrokes(pa.ReceivedStrokes, t.StrokeIndex[hole-1]))
				ptsB := StablefordPoints(sb.Strokes, sb.Par, AllowanceStrokes(pb.ReceivedStrokes, t.StrokeIndex[hole-1]))
				if _, seen := results[pa.Name]; !seen {
					results[pa.Name] = ptsA
					participants = append(participants, pa.Name)
				}
				if _, seen := results[pb.Name]; !seen {
					results[pb.Name] = ptsB
					participants = append(participants, pb.Name)
				}
				any = true
				// Only the winner is awarded; ties award nobody.
				if ptsA > ptsB {
					points[ta.ID]++
				} else if ptsB > ptsA {
					points[tb.ID]++
				}
			}
		}
	}

	if !any {
		return TeamMatch{}, false
	}
	return TeamMatch{
		SidegameID:   g.ID,
		Hole:         hole,
		Participants: participants,
		TeamPoints:   points,
		HoleResults:  results,
		Timestamp:    time.Now(),
	}, true
}

// ComputeHole evaluates one hole under the sidegame's rules. The second
// return is false when no relevant scores exist for the hole.
func (g *Sidegame) ComputeHole(t *Tournament, hole int) (TeamMatch, bool) {
	if g.GameType == GameTypeAllVsAll {
		return g.computeAllVsAll(t, hole)
	}
	return g.computeSumMatch(t, hole)
}

// RecomputeHole refreshes the cached match for a hole from the ledger,
// replacing any prior record for that hole. A hole whose scores were all
// deleted loses its match record.
func (g *Sidegame) RecomputeHole(t *Tournament, hole int) (TeamMatch, bool) {
	match, ok := g.ComputeHole(t, hole)
	idx := -1
	for i, m := range g.Matches {
		if m.Hole == hole {
			idx = i
			break
		}
	}
	switch {
	case ok && idx >= 0:
		g.Matches[idx] = match
	case ok:
		g.Matches = append(g.Matches, match)
		sort.SliceStable(g.Matches, func(i, j int) bool { return g.Matches[i].Hole < g.Matches[j].Hole })
	case idx >= 0:
		g.Matches = append(g.Matches[:idx], g.Matches[idx+1:]...)
	}
	return match, ok
}

// RecomputeAll rebuilds every hole's match from the ledger. This is the
// authoritative recompute path and applies the same tie policy as the
// per-hole computation.
func (g *Sidegame) RecomputeAll(t *Tournament) {
	for hole := 1; hole <= Holes; hole++ {
		g.RecomputeHole(t, hole)
	}
}

// Leaderboard totals team points across all cached matches. Sorted by points
// descending, team name ascending, with dense positions.
func (g *Sidegame) Leaderboard() []TeamStanding {
	totals := make(map[string]int, len(g.Teams))
	for _, m := range g.Matches {
		for id, pts := range m.TeamPoints {
			totals[id] += pts
		}
	}
	standings := make([]TeamStanding, 0, len(g.Teams))
	for _, tm := range g.Teams {
		standings = append(standings, TeamStanding{
			TeamID: tm.ID,
			Name:   tm.Name,
			Color:  tm.Color,
			Points: totals[tm.ID],
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Name < standings[j].Name
	})
	for i := range standings {
		standings[i].Position = i + 1
	}
	return standings
}

// Scorecard builds the live hole-by-team strokes-vs-par matrix. It reads the
// ledger fresh on every call rather than the cached matches, so it always
// reflects the latest state.
func (g *Sidegame) Scorecard(t *Tournament) []ScorecardRow {
	rows := make([]ScorecardRow, 0, Holes)
	for hole := 1; hole <= Holes; hole++ {
		totals, _, _ := g.holeTotals(t, hole)
		rows = append(rows, ScorecardRow{Hole: hole, Totals: totals})
	}
	return rows
}

// Clone deep-copies the sidegame.
func (g *Sidegame) Clone() *Sidegame {
	out := *g
	out.Teams = make([]Team, len(g.Teams))
	for i, tm := range g.Teams {
		cp := tm
		cp.Members = append([]string(nil), tm.Members...)
		if tm.Alternation != nil {
			alt := &AlternationRule{Alternates: append([]string(nil), tm.Alternation.Alternates...)}
			cp.Alternation = alt
		}
		out.Teams[i] = cp
	}
	out.Groupings = make([][]string, len(g.Groupings))
	for i, grp := range g.Groupings {
		out.Groupings[i] = append([]string(nil), grp...)
	}
	out.Matches = make([]TeamMatch, len(g.Matches))
	for i, m := range g.Matches {
		cp := m
		cp.Participants = append([]string(nil), m.Participants...)
		cp.TeamPoints = make(map[string]int, len(m.TeamPoints))
		for k, v := range m.TeamPoints {
			cp.TeamPoints[k] = v
		}
		cp.HoleResults = make(map[string]int, len(m.HoleResults))
		for k, v := range m.HoleResults {
			cp.HoleResults[k] = v
		}
		out.Matches[i] = cp
	}
	return &out
}
