package store

import (
	"sync"

	"scorekeeper/internal/golf"
)

// MemoryStore is the in-process repository for tournaments and sidegames.
// It hands out deep copies so callers never share mutable state; writers
// mutate a copy and put it back.
type MemoryStore struct {
	mu          sync.RWMutex
	tournaments map[string]*golf.Tournament
	sidegames   map[string]*golf.Sidegame
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tournaments: make(map[string]*golf.Tournament),
		sidegames:   make(map[string]*golf.Sidegame),
	}
}

func (m *MemoryStore) GetTournament(id string) (*golf.Tournament, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tournaments[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

func (m *MemoryStore) PutTournament(t *golf.Tournament) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournaments[t.ID] = t.Clone()
}

func (m *MemoryStore) DeleteTournament(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tournaments, id)
}

func (m *MemoryStore) ListTournaments() []*golf.Tournament {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*golf.Tournament, 0, len(m.tournaments))
	for _, t := range m.tournaments {
		out = append(out, t.Clone())
	}
	return out
}

func (m *MemoryStore) GetSidegame(id string) (*golf.Sidegame, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.sidegames[id]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// SidegameFor returns the active sidegame for a tournament round, if any.
func (m *MemoryStore) SidegameFor(tournamentID string, round int) (*golf.Sidegame, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, g := range m.sidegames {
		if g.TournamentID == tournamentID && g.Round == round {
			return g.Clone(), true
		}
	}
	return nil, false
}

func (m *MemoryStore) PutSidegame(g *golf.Sidegame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sidegames[g.ID] = g.Clone()
}

// DeleteSidegamesFor removes every sidegame attached to a tournament and
// returns their ids. Used by the tournament clear path.
func (m *MemoryStore) DeleteSidegamesFor(tournamentID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	for id, g := range m.sidegames {
		if g.TournamentID == tournamentID {
			removed = append(removed, id)
			delete(m.sidegames, id)
		}
	}
	return removed
}

func (m *MemoryStore) ListSidegames() []*golf.Sidegame {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*golf.Sidegame, 0, len(m.sidegames))
	for _, g := range m.sidegames {
		out = append(out, g.Clone())
	}
	return out
}
