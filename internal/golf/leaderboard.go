package golf

import "sort"

// RoundTotal is one row of the per-round breakdown shown when a tournament
// spans multiple rounds. Rounds with no scores yet are zero-filled.
type RoundTotal struct {
	Round      int `json:"round"`
	Strokes    int `json:"strokes"`
	Stableford int `json:"stableford"`
	Holes      int `json:"holes"`
}

// LeaderboardEntry is a derived standing for one player in one display
// round. The 18-slot hole arrays use nil for unplayed holes.
type LeaderboardEntry struct {
	Position        int          `json:"position"`
	PlayerID        string       `json:"playerId"`
	Name            string       `json:"name"`
	ReceivedStrokes int          `json:"receivedStrokes"`
	CurrentHole     int          `json:"currentHole"`
	Round           int          `json:"round"`
	TotalStrokes    int          `json:"totalStrokes"`
	HolesCompleted  int          `json:"holesCompleted"`
	CurrentScore    int          `json:"currentScore"`
	StablefordTotal int          `json:"stablefordTotal"`
	HoleScores      [Holes]*int  `json:"holeScores"`
	HolePars        [Holes]*int  `json:"holePars"`
	HolePoints      [Holes]*int  `json:"holePoints"`
	Rounds          []RoundTotal `json:"rounds,omitempty"`
}

func (t *Tournament) entryFor(p *Player, round int) LeaderboardEntry {
	e := LeaderboardEntry{
		PlayerID:        p.ID,
		Name:            p.Name,
		ReceivedStrokes: p.ReceivedStrokes,
		CurrentHole:     p.CurrentHole,
		Round:           round,
	}
	parPlayed := 0
	for _, sc := range t.Scores {
		if sc.PlayerID != p.ID || sc.Round != round {
			continue
		}
		strokes, par := sc.Strokes, sc.Par
		allowance := AllowanceStrokes(p.ReceivedStrokes, t.StrokeIndex[sc.Hole-1])
		points := StablefordPoints(strokes, par, allowance)

		e.TotalStrokes += strokes
		e.HolesCompleted++
		e.StablefordTotal += points
		parPlayed += par
		e.HoleScores[sc.Hole-1] = &strokes
		e.HolePars[sc.Hole-1] = &par
		pts := points
		e.HolePoints[sc.Hole-1] = &pts
	}
	// Vs-par only over holes actually played.
	e.CurrentScore = e.TotalStrokes - parPlayed
	return e
}

// Leaderboard computes standings for the given display round (0 means the
// current round). Output is fully recomputed from the ledger on every call.
func (t *Tournament) Leaderboard(round int) []LeaderboardEntry {
	if round < 1 || round > t.TotalRounds {
		round = t.CurrentRound
	}
	entries := make([]LeaderboardEntry, 0, len(t.Players))
	for _, p := range t.Players {
		e := t.entryFor(p, round)
		if t.TotalRounds > 1 {
			for r := 1; r <= t.TotalRounds; r++ {
				re := t.entryFor(p, r)
				e.Rounds = append(e.Rounds, RoundTotal{
					Round:      r,
					Strokes:    re.TotalStrokes,
					Stableford: re.StablefordTotal,
					Holes:      re.HolesCompleted,
				})
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CurrentScore != entries[j].CurrentScore {
			return entries[i].CurrentScore < entries[j].CurrentScore
		}
		return entries[i].HolesCompleted > entries[j].HolesCompleted
	})
	// Dense sequential positions; tied players still get distinct positions.
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// RankByStableford re-orders leaderboard entries by Stableford points
// relative to expectation (two points per completed hole). It is an
// alternate view over the same entries, not a separate computation.
func RankByStableford(entries []LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		si := out[i].StablefordTotal - 2*out[i].HolesCompleted
		sj := out[j].StablefordTotal - 2*out[j].HolesCompleted
		if si != sj {
			return si > sj
		}
		return out[i].HolesCompleted > out[j].HolesCompleted
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
