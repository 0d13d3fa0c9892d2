package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPars() [Holes]int {
	return [Holes]int{4, 5, 3, 4, 4, 3, 5, 4, 4, 4, 3, 5, 4, 4, 5, 3, 4, 4}
}

func testStrokeIndex() [Holes]int {
	return [Holes]int{7, 1, 15, 5, 11, 17, 3, 9, 13, 8, 16, 2, 6, 12, 4, 18, 10, 14}
}

func newTestTournament(t *testing.T, rounds int) *Tournament {
	t.Helper()
	return NewTournament("test open", testPars(), testStrokeIndex(), 72.0, 125, rounds)
}

func floatPtr(v float64) *float64 { return &v }

func TestAddPlayerComputesReceivedStrokes(t *testing.T) {
	tour := newTestTournament(t, 1)

	p := tour.AddPlayer("Alice", floatPtr(10.0))
	assert.Equal(t, 11, p.ReceivedStrokes)
	assert.Equal(t, 1, p.CurrentHole)

	scratch := tour.AddPlayer("Bob", nil)
	assert.Equal(t, 0, scratch.ReceivedStrokes)
}

func TestRecordScoreUpsert(t *testing.T) {
	tour := newTestTournament(t, 1)
	p := tour.AddPlayer("Alice", floatPtr(10.0))

	_, err := tour.RecordScore(p.ID, 1, 1, 5, 0)
	require.NoError(t, err)
	_, err = tour.RecordScore(p.ID, 1, 1, 4, 0)
	require.NoError(t, err)

	require.Len(t, tour.Scores, 1, "overwrite must replace, not append")
	assert.Equal(t, 4, tour.Scores[0].Strokes)
	assert.Equal(t, 4, tour.Scores[0].Par, "par defaults from the course")
}

func TestRecordScoreValidation(t *testing.T) {
	tour := newTestTournament(t, 1)
	p := tour.AddPlayer("Alice", nil)

	_, err := tour.RecordScore(p.ID, 0, 1, 4, 0)
	assert.ErrorIs(t, err, ErrInvalidHole)
	_, err = tour.RecordScore(p.ID, 19, 1, 4, 0)
	assert.ErrorIs(t, err, ErrInvalidHole)
	_, err = tour.RecordScore(p.ID, 1, 1, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidStrokes)
	_, err = tour.RecordScore(p.ID, 1, 0, 4, 0)
	assert.ErrorIs(t, err, ErrInvalidRound)
	_, err = tour.RecordScore("nope", 1, 1, 4, 0)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	assert.Empty(t, tour.Scores, "rejected events must not enter the ledger")
}

func TestCurrentHoleAdvance(t *testing.T) {
	tour := newTestTournament(t, 1)
	p := tour.AddPlayer("Alice", nil)

	tour.RecordScore(p.ID, 1, 1, 4, 0)
	assert.Equal(t, 2, p.CurrentHole)

	// Out-of-order entry leaves the pointer alone.
	tour.RecordScore(p.ID, 7, 1, 4, 0)
	assert.Equal(t, 2, p.CurrentHole)

	tour.RecordScore(p.ID, 2, 1, 5, 0)
	assert.Equal(t, 3, p.CurrentHole)
}

func TestCurrentHoleStopsAt18(t *testing.T) {
	tour := newTestTournament(t, 1)
	p := tour.AddPlayer("Alice", nil)
	p.CurrentHole = 18

	tour.RecordScore(p.ID, 18, 1, 4, 0)
	assert.Equal(t, 18, p.CurrentHole)
}

func TestDeleteScoreExplicit(t *testing.T) {
	tour := newTestTournament(t, 1)
	p := tour.AddPlayer("Alice", nil)
	tour.RecordScore(p.ID, 1, 1, 4, 0)
	tour.RecordScore(p.ID, 2, 1, 5, 0)

	removed, ok := tour.DeleteScore("Alice", 1)
	require.True(t, ok)
	assert.Equal(t, 1, removed.Hole)
	assert.Len(t, tour.Scores, 1)
}

func TestDeleteScoreLatestForPlayer(t *testing.T) {
	tour := newTestTournament(t, 1)
	a := tour.AddPlayer("Alice", nil)
	b := tour.AddPlayer("Bob", nil)
	tour.RecordScore(a.ID, 1, 1, 4, 0)
	tour.RecordScore(b.ID, 1, 1, 3, 0)
	tour.RecordScore(a.ID, 2, 1, 5, 0)

	removed, ok := tour.DeleteScore("Alice", 0)
	require.True(t, ok)
	assert.Equal(t, a.ID, removed.PlayerID)
	assert.Equal(t, 2, removed.Hole, "hole omitted resolves to the player's latest score")
}

func TestDeleteScoreUndoLast(t *testing.T) {
	tour := newTestTournament(t, 1)
	a := tour.AddPlayer("Alice", nil)
	b := tour.AddPlayer("Bob", nil)
	tour.RecordScore(a.ID, 1, 1, 4, 0)
	tour.RecordScore(b.ID, 1, 1, 3, 0)

	removed, ok := tour.DeleteScore("", 0)
	require.True(t, ok)
	assert.Equal(t, b.ID, removed.PlayerID, "no target resolves to the latest score overall")
}

func TestDeleteScoreNoMatchIsNoop(t *testing.T) {
	tour := newTestTournament(t, 1)
	tour.AddPlayer("Alice", nil)

	_, ok := tour.DeleteScore("Alice", 5)
	assert.False(t, ok)
	_, ok = tour.DeleteScore("", 0)
	assert.False(t, ok)
	assert.Empty(t, tour.Scores)
}

func TestClearResetsStateButKeepsIdentity(t *testing.T) {
	tour := newTestTournament(t, 3)
	p := tour.AddPlayer("Alice", floatPtr(10.0))
	tour.RecordScore(p.ID, 1, 1, 4, 0)
	tour.AdvanceRound()

	tour.Clear()

	assert.Empty(t, tour.Scores)
	assert.Equal(t, 1, tour.CurrentRound)
	assert.Equal(t, 1, p.CurrentHole)
	assert.Len(t, tour.Players, 1, "player identity survives a clear")
	assert.Equal(t, 11, p.ReceivedStrokes, "received strokes stay frozen")
}

func TestAdvanceRoundBounded(t *testing.T) {
	tour := newTestTournament(t, 2)

	round, err := tour.AdvanceRound()
	require.NoError(t, err)
	assert.Equal(t, 2, round)

	_, err = tour.AdvanceRound()
	assert.Error(t, err, "round counter must not pass totalRounds")
	assert.Equal(t, 2, tour.CurrentRound)
}

func TestFindPlayer(t *testing.T) {
	tour := newTestTournament(t, 1)
	tour.AddPlayer("Alice Johnson", nil)
	tour.AddPlayer("Bob Smith", nil)

	p, ok := tour.FindPlayer("alice johnson")
	require.True(t, ok)
	assert.Equal(t, "Alice Johnson", p.Name)

	// Unique substring fallback.
	p, ok = tour.FindPlayer("bob")
	require.True(t, ok)
	assert.Equal(t, "Bob Smith", p.Name)

	_, ok = tour.FindPlayer("charlie")
	assert.False(t, ok)
}

func TestFindPlayerAmbiguousSubstring(t *testing.T) {
	tour := newTestTournament(t, 1)
	tour.AddPlayer("Jon Smith", nil)
	tour.AddPlayer("Jon Jones", nil)

	_, ok := tour.FindPlayer("jon")
	assert.False(t, ok, "ambiguous substring must not resolve")
}

func TestCloneIsolation(t *testing.T) {
	tour := newTestTournament(t, 1)
	p := tour.AddPlayer("Alice", nil)
	tour.RecordScore(p.ID, 1, 1, 4, 0)

	clone := tour.Clone()
	clone.Players[0].CurrentHole = 9
	clone.Scores[0].Strokes = 99

	assert.Equal(t, 2, p.CurrentHole)
	assert.Equal(t, 4, tour.Scores[0].Strokes)
}
