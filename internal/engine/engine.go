package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"scorekeeper/internal/golf"
)

// ErrSidegameExists is returned when a round already has an active sidegame.
var ErrSidegameExists = errors.New("sidegame already active for this round")

// Repository owns the live tournament and sidegame state. There is no
// ambient global registry; the engine is handed one at construction.
type Repository interface {
	GetTournament(id string) (*golf.Tournament, bool)
	PutTournament(t *golf.Tournament)
	DeleteTournament(id string)
	ListTournaments() []*golf.Tournament
	GetSidegame(id string) (*golf.Sidegame, bool)
	SidegameFor(tournamentID string, round int) (*golf.Sidegame, bool)
	PutSidegame(g *golf.Sidegame)
	DeleteSidegamesFor(tournamentID string) []string
	ListSidegames() []*golf.Sidegame
}

// SnapshotStore persists full aggregate snapshots. Writes are fire-and-forget
// from the mutation path: a failed save is logged and never rolls back the
// in-memory state.
type SnapshotStore interface {
	SaveTournament(ctx context.Context, t *golf.Tournament) error
	SaveSidegame(ctx context.Context, g *golf.Sidegame) error
	DeleteSidegame(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]*golf.Tournament, []*golf.Sidegame, error)
}

// Publisher delivers derived snapshots to the delivery layer after each
// mutation.
type Publisher interface {
	PublishLeaderboard(tournamentID string, entries []golf.LeaderboardEntry) error
	PublishTeamMatch(match *golf.TeamMatch) error
	PublishTeamLeaderboard(sidegameID string, standings []golf.TeamStanding) error
}

// Engine is the single mutation path for all scoring state. Each tournament
// is serialized behind its own mutex; mutation, recomputation, and publish
// run as one unit with no interleaving.
type Engine struct {
	repo   Repository
	snaps  SnapshotStore
	pub    Publisher
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(repo Repository, snaps SnapshotStore, pub Publisher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		repo:   repo,
		snaps:  snaps,
		pub:    pub,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (e *Engine) lockFor(tournamentID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[tournamentID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[tournamentID] = l
	}
	return l
}

// Restore loads persisted snapshots into the repository. Called once at
// startup before the engine serves traffic.
func (e *Engine) Restore(ctx context.Context) error {
	tournaments, sidegames, err := e.snaps.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, t := range tournaments {
		e.repo.PutTournament(t)
	}
	for _, g := range sidegames {
		e.repo.PutSidegame(g)
	}
	e.logger.Info("restored snapshots",
		"tournaments", len(tournaments),
		"sidegames", len(sidegames),
	)
	return nil
}

// PlayerSeed describes one player at tournament setup.
type PlayerSeed struct {
	Name          string
	HandicapIndex *float64
}

func (e *Engine) CreateTournament(ctx context.Context, name string, pars, strokeIndex [golf.Holes]int, rating float64, slope, totalRounds int, players []PlayerSeed) *golf.Tournament {
	t := golf.NewTournament(name, pars, strokeIndex, rating, slope, totalRounds)
	for _, seed := range players {
		t.AddPlayer(seed.Name, seed.HandicapIndex)
	}
	e.repo.PutTournament(t)
	e.persistTournament(ctx, t)
	e.logger.Info("tournament created", "tournament_id", t.ID, "name", name, "players", len(players))
	return t
}

// Tournament returns a snapshot of a tournament. Missing ids yield
// (nil, false), never an error.
func (e *Engine) Tournament(id string) (*golf.Tournament, bool) {
	return e.repo.GetTournament(id)
}

func (e *Engine) Tournaments() []*golf.Tournament {
	return e.repo.ListTournaments()
}

// RecordScore upserts one ledger entry and runs the full recompute/publish
// pipeline for the touched hole. The bool reports whether the tournament
// exists.
func (e *Engine) RecordScore(ctx context.Context, tournamentID, playerName string, hole, strokes int) (golf.ScoreEvent, bool, error) {
	l := e.lockFor(tournamentID)
	l.Lock()
	defer l.Unlock()

	t, ok := e.repo.GetTournament(tournamentID)
	if !ok {
		return golf.ScoreEvent{}, false, nil
	}
	p, ok := t.FindPlayer(playerName)
	if !ok {
		return golf.ScoreEvent{}, true, golf.ErrUnknownPlayer
	}
	sc, err := t.RecordScore(p.ID, hole, t.CurrentRound, strokes, 0)
	if err != nil {
		return golf.ScoreEvent{}, true, err
	}
	e.afterMutation(ctx, t, sc.Round, sc.Hole)
	return sc, true, nil
}

// DeleteScore resolves and removes a ledger entry. The bool reports whether
// anything was removed; an unresolvable delete is a logged no-op.
func (e *Engine) DeleteScore(ctx context.Context, tournamentID, playerName string, hole int) (golf.ScoreEvent, bool) {
	l := e.lockFor(tournamentID)
	l.Lock()
	defer l.Unlock()

	t, ok := e.repo.GetTournament(tournamentID)
	if !ok {
		return golf.ScoreEvent{}, false
	}
	removed, ok := t.DeleteScore(playerName, hole)
	if !ok {
		e.logger.Info("delete resolved nothing", "tournament_id", tournamentID, "player", playerName, "hole", hole)
		return golf.ScoreEvent{}, false
	}
	e.afterMutation(ctx, t, removed.Round, removed.Hole)
	return removed, true
}

// IngestParserEvent applies one structured event from the NLP parser.
func (e *Engine) IngestParserEvent(ctx context.Context, tournamentID string, ev golf.ParserEvent) (golf.Mutation, error) {
	l := e.lockFor(tournamentID)
	l.Lock()
	defer l.Unlock()

	t, ok := e.repo.GetTournament(tournamentID)
	if !ok {
		return golf.Mutation{Kind: golf.MutationNone}, nil
	}
	mut, err := t.ApplyParserEvent(ev)
	if err != nil {
		return golf.Mutation{}, err
	}
	if mut.Kind != golf.MutationNone {
		e.afterMutation(ctx, t, mut.Round, mut.Hole)
	}
	return mut, nil
}

// AdvanceRound moves a tournament into its next round.
func (e *Engine) AdvanceRound(ctx context.Context, tournamentID string) (int, error) {
	l := e.lockFor(tournamentID)
	l.Lock()
	defer l.Unlock()

	t, ok := e.repo.GetTournament(tournamentID)
	if !ok {
		return 0, nil
	}
	round, err := t.AdvanceRound()
	if err != nil {
		return round, err
	}
	e.repo.PutTournament(t)
	e.persistTournament(ctx, t)
	return round, nil
}

// ClearTournament empties the ledger, resets round and hole pointers, and
// destroys the tournament's sidegames. Irreversible; callers confirm
// out-of-band.
func (e *Engine) ClearTournament(ctx context.Context, tournamentID string) bool {
	l := e.lockFor(tournamentID)
	l.Lock()
	defer l.Unlock()

	t, ok := e.repo.GetTournament(tournamentID)
	if !ok {
		return false
	}
	t.Clear()
	e.repo.PutTournament(t)
	for _, id := range e.repo.DeleteSidegamesFor(tournamentID) {
		if err := e.snaps.DeleteSidegame(ctx, id); err != nil {
			e.logger.Error("failed to delete sidegame snapshot", "sidegame_id", id, "error", err)
		}
	}
	e.persistTournament(ctx, t)
	if err := e.pub.PublishLeaderboard(t.ID, t.Leaderboard(0)); err != nil {
		e.logger.Error("failed to publish leaderboard", "tournament_id", t.ID, "error", err)
	}
	e.logger.Info("tournament cleared", "tournament_id", tournamentID)
	return true
}

// Leaderboard computes standings for a tournament. The Stableford view is
// an alternate ordering over the same entries.
func (e *Engine) Leaderboard(tournamentID string, round int, stablefordView bool) ([]golf.LeaderboardEntry, bool) {
	t, ok := e.repo.GetTournament(tournamentID)
	if !ok {
		return nil, false
	}
	entries := t.Leaderboard(round)
	if stablefordView {
		entries = golf.RankByStableford(entries)
	}
	return entries, true
}

// CreateSidegame activates a team game for one round. Game type and
// groupings are immutable afterward; existing scores are folded in
// immediately via the authoritative recompute.
func (e *Engine) CreateSidegame(ctx context.Context, tournamentID string, round int, gameType golf.GameType, teams []golf.Team, groupings [][]string) (*golf.Sidegame, error) {
	l := e.lockFor(tournamentID)
	l.Lock()
	defer l.Unlock()

	t, ok := e.repo.GetTournament(tournamentID)
	if !ok {
		return nil, nil
	}
	if round == 0 {
		round = t.CurrentRound
	}
	// One sidegame per round; once active it stays active.
	if existing, ok := e.repo.SidegameFor(tournamentID, round); ok {
		return nil, fmt.Errorf("%w: %s", ErrSidegameExists, existing.ID)
	}
	g, err := golf.NewSidegame(tournamentID, round, gameType, teams, groupings)
	if err != nil {
		return nil, err
	}
	g.RecomputeAll(t)
	e.repo.PutSidegame(g)
	e.persistSidegame(ctx, g)
	e.logger.Info("sidegame created", "sidegame_id", g.ID, "tournament_id", tournamentID, "round", round, "game_type", gameType)
	return g, nil
}

func (e *Engine) Sidegame(id string) (*golf.Sidegame, bool) {
	return e.repo.GetSidegame(id)
}

func (e *Engine) SidegameLeaderboard(id string) ([]golf.TeamStanding, bool) {
	g, ok := e.repo.GetSidegame(id)
	if !ok {
		return nil, false
	}
	return g.Leaderboard(), true
}

func (e *Engine) SidegameMatches(id string) ([]golf.TeamMatch, bool) {
	g, ok := e.repo.GetSidegame(id)
	if !ok {
		return nil, false
	}
	return g.Matches, true
}

// SidegameScorecard recomputes the live sum-match matrix straight from the
// ledger; nothing is cached.
func (e *Engine) SidegameScorecard(id string) ([]golf.ScorecardRow, bool) {
	g, ok := e.repo.GetSidegame(id)
	if !ok {
		return nil, false
	}
	t, ok := e.repo.GetTournament(g.TournamentID)
	if !ok {
		return nil, false
	}
	return g.Scorecard(t), true
}

// afterMutation runs the post-mutation pipeline: store the tournament,
// rebuild and publish the individual leaderboard, and refresh the active
// sidegame for the touched holes. Persistence errors are logged, never
// surfaced.
func (e *Engine) afterMutation(ctx context.Context, t *golf.Tournament, round int, holes ...int) {
	e.repo.PutTournament(t)

	entries := t.Leaderboard(round)
	if err := e.pub.PublishLeaderboard(t.ID, entries); err != nil {
		e.logger.Error("failed to publish leaderboard", "tournament_id", t.ID, "error", err)
	}

	if g, ok := e.repo.SidegameFor(t.ID, round); ok {
		for _, hole := range holes {
			match, ok := g.RecomputeHole(t, hole)
			if ok {
				if err := e.pub.PublishTeamMatch(&match); err != nil {
					e.logger.Error("failed to publish team match", "sidegame_id", g.ID, "hole", hole, "error", err)
				}
			}
		}
		if err := e.pub.PublishTeamLeaderboard(g.ID, g.Leaderboard()); err != nil {
			e.logger.Error("failed to publish team leaderboard", "sidegame_id", g.ID, "error", err)
		}
		e.repo.PutSidegame(g)
		e.persistSidegame(ctx, g)
	}

	e.persistTournament(ctx, t)
}

func (e *Engine) persistTournament(ctx context.Context, t *golf.Tournament) {
	if err := e.snaps.SaveTournament(ctx, t); err != nil {
		e.logger.Error("failed to persist tournament snapshot", "tournament_id", t.ID, "error", err)
	}
}

func (e *Engine) persistSidegame(ctx context.Context, g *golf.Sidegame) {
	if err := e.snaps.SaveSidegame(ctx, g); err != nil {
		e.logger.Error("failed to persist sidegame snapshot", "sidegame_id", g.ID, "error", err)
	}
}
