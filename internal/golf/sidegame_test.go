package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sidegameFixture builds a tournament with two teams of two scratch players
// and an active sum-match sidegame for round 1.
func sidegameFixture(t *testing.T) (*Tournament, *Sidegame) {
	t.Helper()
	tour := newTestTournament(t, 1)
	tour.AddPlayer("Alice", nil)
	tour.AddPlayer("Bob", nil)
	tour.AddPlayer("Carol", nil)
	tour.AddPlayer("Dave", nil)

	teams := []Team{
		{ID: "red", Name: "Red", Members: []string{"Alice", "Bob"}},
		{ID: "blue", Name: "Blue", Members: []string{"Carol", "Dave"}},
	}
	g, err := NewSidegame(tour.ID, 1, GameTypeSumMatch, teams, nil)
	require.NoError(t, err)
	return tour, g
}

func record(t *testing.T, tour *Tournament, name string, hole, strokes int) {
	t.Helper()
	p, ok := tour.FindPlayer(name)
	require.True(t, ok)
	_, err := tour.RecordScore(p.ID, hole, 1, strokes, 0)
	require.NoError(t, err)
}

func TestNewSidegameValidation(t *testing.T) {
	_, err := NewSidegame("t", 1, "skins", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidGameType)

	_, err = NewSidegame("t", 1, GameTypeAllVsAll, nil, nil)
	assert.ErrorIs(t, err, ErrMissingGroupings)

	_, err = NewSidegame("t", 0, GameTypeSumMatch, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidRound)
}

func TestSumMatchBestAndWorst(t *testing.T) {
	tour, g := sidegameFixture(t)

	// Hole 1, par 4. Red: -2 total. Blue: +1 total.
	record(t, tour, "Alice", 1, 3)
	record(t, tour, "Bob", 1, 3)
	record(t, tour, "Carol", 1, 5)
	record(t, tour, "Dave", 1, 4)

	match, ok := g.ComputeHole(tour, 1)
	require.True(t, ok)
	assert.Equal(t, 1, match.TeamPoints["red"])
	assert.Equal(t, -1, match.TeamPoints["blue"])
	assert.Equal(t, -1, match.HoleResults["Alice"])
	assert.ElementsMatch(t, []string{"Alice", "Bob", "Carol", "Dave"}, match.Participants)
}

func TestSumMatchTwoTeamsTiedAtBest(t *testing.T) {
	tour, _ := sidegameFixture(t)
	tour.AddPlayer("Erin", nil)
	tour.AddPlayer("Frank", nil)
	teams := []Team{
		{ID: "red", Name: "Red", Members: []string{"Alice", "Bob"}},
		{ID: "blue", Name: "Blue", Members: []string{"Carol", "Dave"}},
		{ID: "green", Name: "Green", Members: []string{"Erin", "Frank"}},
	}
	g, err := NewSidegame(tour.ID, 1, GameTypeSumMatch, teams, nil)
	require.NoError(t, err)

	// Red and Green both -2, Blue +1: both teams at the best extreme score.
	record(t, tour, "Alice", 1, 3)
	record(t, tour, "Bob", 1, 3)
	record(t, tour, "Carol", 1, 5)
	record(t, tour, "Dave", 1, 4)
	record(t, tour, "Erin", 1, 3)
	record(t, tour, "Frank", 1, 3)

	match, ok := g.ComputeHole(tour, 1)
	require.True(t, ok)
	assert.Equal(t, 1, match.TeamPoints["red"])
	assert.Equal(t, 1, match.TeamPoints["green"])
	assert.Equal(t, -1, match.TeamPoints["blue"])
}

func TestSumMatchAllTiedAwardsNothing(t *testing.T) {
	tour, _ := sidegameFixture(t)
	tour.AddPlayer("Erin", nil)
	tour.AddPlayer("Frank", nil)
	teams := []Team{
		{ID: "red", Name: "Red", Members: []string{"Alice", "Bob"}},
		{ID: "blue", Name: "Blue", Members: []string{"Carol", "Dave"}},
		{ID: "green", Name: "Green", Members: []string{"Erin", "Frank"}},
	}
	g, err := NewSidegame(tour.ID, 1, GameTypeSumMatch, teams, nil)
	require.NoError(t, err)

	for _, name := range []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank"} {
		record(t, tour, name, 1, 4)
	}

	match, ok := g.ComputeHole(tour, 1)
	require.True(t, ok)
	assert.Equal(t, 0, match.TeamPoints["red"])
	assert.Equal(t, 0, match.TeamPoints["blue"])
	assert.Equal(t, 0, match.TeamPoints["green"])
}

func TestSumMatchAlternationRule(t *testing.T) {
	tour := newTestTournament(t, 1)
	tour.AddPlayer("Alice", nil)
	tour.AddPlayer("Carol", nil)
	tour.AddPlayer("Dave", nil)

	teams := []Team{
		{ID: "red", Name: "Red", Members: []string{"Alice"}},
		{ID: "blue", Name: "Blue", Members: []string{"Carol", "Dave"},
			Alternation: &AlternationRule{Alternates: []string{"Carol", "Dave"}}},
	}
	g, err := NewSidegame(tour.ID, 1, GameTypeSumMatch, teams, nil)
	require.NoError(t, err)

	// Both Blue players score on both holes; only the hole-parity alternate
	// counts. Odd hole: Carol. Even hole: Dave.
	record(t, tour, "Alice", 1, 4) // even
	record(t, tour, "Carol", 1, 3) // -1, counts
	record(t, tour, "Dave", 1, 6)  // ignored
	record(t, tour, "Alice", 2, 5) // par 5, even
	record(t, tour, "Carol", 2, 4) // ignored
	record(t, tour, "Dave", 2, 6)  // +1, counts

	hole1, ok := g.ComputeHole(tour, 1)
	require.True(t, ok)
	assert.Equal(t, 1, hole1.TeamPoints["blue"], "Carol's score counts on odd holes")
	assert.Equal(t, -1, hole1.TeamPoints["red"])
	_, daveCounted := hole1.HoleResults["Dave"]
	assert.False(t, daveCounted)

	hole2, ok := g.ComputeHole(tour, 2)
	require.True(t, ok)
	assert.Equal(t, -1, hole2.TeamPoints["blue"], "Dave's score counts on even holes")
	assert.Equal(t, 1, hole2.TeamPoints["red"])
}

func TestSumMatchNoScores(t *testing.T) {
	tour, g := sidegameFixture(t)
	_, ok := g.ComputeHole(tour, 1)
	assert.False(t, ok)
}

func TestAllVsAllPairAward(t *testing.T) {
	tour, _ := sidegameFixture(t)
	teams := []Team{
		{ID: "red", Name: "Red", Members: []string{"Alice", "Bob"}},
		{ID: "blue", Name: "Blue", Members: []string{"Carol", "Dave"}},
	}
	g, err := NewSidegame(tour.ID, 1, GameTypeAllVsAll, teams, [][]string{{"Alice", "Carol"}})
	require.NoError(t, err)

	// Hole 1, par 4, scratch: Alice birdie (3 pts) vs Carol par (2 pts).
	record(t, tour, "Alice", 1, 3)
	record(t, tour, "Carol", 1, 4)

	match, ok := g.ComputeHole(tour, 1)
	require.True(t, ok)
	assert.Equal(t, 1, match.TeamPoints["red"], "winner's team gains a point")
	assert.Equal(t, 0, match.TeamPoints["blue"], "loser's team loses nothing")
	assert.Equal(t, 3, match.HoleResults["Alice"])
	assert.Equal(t, 2, match.HoleResults["Carol"])
}

func TestAllVsAllTieAwardsNobody(t *testing.T) {
	tour, _ := sidegameFixture(t)
	teams := []Team{
		{ID: "red", Name: "Red", Members: []string{"Alice", "Bob"}},
		{ID: "blue", Name: "Blue", Members: []string{"Carol", "Dave"}},
	}
	g, err := NewSidegame(tour.ID, 1, GameTypeAllVsAll, teams, [][]string{{"Alice", "Carol"}})
	require.NoError(t, err)

	record(t, tour, "Alice", 1, 4)
	record(t, tour, "Carol", 1, 4)

	match, ok := g.ComputeHole(tour, 1)
	require.True(t, ok)
	assert.Equal(t, 0, match.TeamPoints["red"])
	assert.Equal(t, 0, match.TeamPoints["blue"])
}

func TestAllVsAllSkipsIntraTeamPairs(t *testing.T) {
	tour, _ := sidegameFixture(t)
	teams := []Team{
		{ID: "red", Name: "Red", Members: []string{"Alice", "Bob"}},
		{ID: "blue", Name: "Blue", Members: []string{"Carol", "Dave"}},
	}
	g, err := NewSidegame(tour.ID, 1, GameTypeAllVsAll, teams, [][]string{{"Alice", "Bob"}})
	require.NoError(t, err)

	record(t, tour, "Alice", 1, 3)
	record(t, tour, "Bob", 1, 5)

	_, ok := g.ComputeHole(tour, 1)
	assert.False(t, ok, "same-team pairs never score")
}

func TestAllVsAllUsesHandicapAllowance(t *testing.T) {
	tour := newTestTournament(t, 1)
	tour.AddPlayer("Alice", floatPtr(10.0)) // 11 strokes, gets one on SI<=11
	tour.AddPlayer("Carol", nil)
	teams := []Team{
		{ID: "red", Name: "Red", Members: []string{"Alice"}},
		{ID: "blue", Name: "Blue", Members: []string{"Carol"}},
	}
	g, err := NewSidegame(tour.ID, 1, GameTypeAllVsAll, teams, [][]string{{"Alice", "Carol"}})
	require.NoError(t, err)

	// Hole 2, stroke index 1: Alice nets a stroke. Both shoot par-5 5:
	// Alice 3 pts vs Carol 2 pts.
	record(t, tour, "Alice", 2, 5)
	record(t, tour, "Carol", 2, 5)

	match, ok := g.ComputeHole(tour, 2)
	require.True(t, ok)
	assert.Equal(t, 1, match.TeamPoints["red"])
	assert.Equal(t, 0, match.TeamPoints["blue"])
}

func TestRecomputeHoleReplacesMatch(t *testing.T) {
	tour, g := sidegameFixture(t)

	record(t, tour, "Alice", 1, 3)
	record(t, tour, "Carol", 1, 5)
	g.RecomputeHole(tour, 1)
	require.Len(t, g.Matches, 1)

	// Overwrite flips the hole; recompute must replace, not append.
	record(t, tour, "Alice", 1, 7)
	g.RecomputeHole(tour, 1)
	require.Len(t, g.Matches, 1)
	assert.Equal(t, -1, g.Matches[0].TeamPoints["red"])
}

func TestRecomputeHoleRemovesEmptyMatch(t *testing.T) {
	tour, g := sidegameFixture(t)

	record(t, tour, "Alice", 1, 3)
	g.RecomputeHole(tour, 1)
	require.Len(t, g.Matches, 1)

	tour.DeleteScore("Alice", 1)
	g.RecomputeHole(tour, 1)
	assert.Empty(t, g.Matches, "a hole with no scores loses its match record")
}

func TestTeamLeaderboardOrderingAndTieBreak(t *testing.T) {
	g := &Sidegame{
		ID:       "g",
		GameType: GameTypeSumMatch,
		Teams: []Team{
			{ID: "red", Name: "Red"},
			{ID: "blue", Name: "Blue"},
			{ID: "green", Name: "Green"},
		},
		Matches: []TeamMatch{
			{Hole: 1, TeamPoints: map[string]int{"red": 1, "blue": -1}},
			{Hole: 2, TeamPoints: map[string]int{"green": 1, "blue": -1}},
		},
	}

	standings := g.Leaderboard()
	require.Len(t, standings, 3)

	// Green and Red tied on 1 point: alphabetical tie-break.
	assert.Equal(t, "Green", standings[0].Name)
	assert.Equal(t, 1, standings[0].Position)
	assert.Equal(t, "Red", standings[1].Name)
	assert.Equal(t, 2, standings[1].Position)
	assert.Equal(t, "Blue", standings[2].Name)
	assert.Equal(t, -2, standings[2].Points)
}

func TestScorecardReflectsLedger(t *testing.T) {
	tour, g := sidegameFixture(t)

	record(t, tour, "Alice", 1, 3)
	record(t, tour, "Carol", 1, 5)

	rows := g.Scorecard(tour)
	require.Len(t, rows, Holes)
	assert.Equal(t, -1, rows[0].Totals["red"])
	assert.Equal(t, 1, rows[0].Totals["blue"])
	assert.Empty(t, rows[1].Totals)

	// The scorecard is pure recomputation: a ledger overwrite shows up
	// immediately without any sidegame recompute call.
	record(t, tour, "Alice", 1, 6)
	rows = g.Scorecard(tour)
	assert.Equal(t, 2, rows[0].Totals["red"])
}
