package config

import (
	"fmt"

	"github.com/google/uuid"

	"scorekeeper/internal/golf"
)

// ParArray validates and converts the configured pars into the fixed
// 18-hole array the engine works with.
func (c CourseConfig) ParArray() ([golf.Holes]int, error) {
	var out [golf.Holes]int
	if len(c.Pars) != golf.Holes {
		return out, fmt.Errorf("course %q has %d pars, want %d", c.Name, len(c.Pars), golf.Holes)
	}
	for i, par := range c.Pars {
		if par < 3 || par > 5 {
			return out, fmt.Errorf("course %q hole %d: par %d out of range", c.Name, i+1, par)
		}
		out[i] = par
	}
	return out, nil
}

// StrokeIndexArray validates and converts the configured stroke indexes.
func (c CourseConfig) StrokeIndexArray() ([golf.Holes]int, error) {
	var out [golf.Holes]int
	if len(c.StrokeIndex) != golf.Holes {
		return out, fmt.Errorf("course %q has %d stroke indexes, want %d", c.Name, len(c.StrokeIndex), golf.Holes)
	}
	seen := make(map[int]bool, golf.Holes)
	for i, idx := range c.StrokeIndex {
		if idx < 1 || idx > golf.Holes || seen[idx] {
			return out, fmt.Errorf("course %q hole %d: invalid stroke index %d", c.Name, i+1, idx)
		}
		seen[idx] = true
		out[i] = idx
	}
	return out, nil
}

// GolfTeams builds the team roster snapshot handed to new sidegames.
func (cfg *Config) GolfTeams() []golf.Team {
	teams := make([]golf.Team, 0, len(cfg.Teams))
	for _, tc := range cfg.Teams {
		tm := golf.Team{
			ID:      uuid.NewString(),
			Name:    tc.Name,
			Color:   tc.Color,
			Members: append([]string(nil), tc.Members...),
		}
		if len(tc.Alternates) > 0 {
			tm.Alternation = &golf.AlternationRule{Alternates: append([]string(nil), tc.Alternates...)}
		}
		teams = append(teams, tm)
	}
	return teams
}
