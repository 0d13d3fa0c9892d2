package engine

import (
	"github.com/nats-io/nats.go"

	"scorekeeper/internal/golf"
)

// NATSPublisher delivers snapshots over JetStream.
type NATSPublisher struct {
	js nats.JetStreamContext
}

func NewNATSPublisher(js nats.JetStreamContext) *NATSPublisher {
	return &NATSPublisher{js: js}
}

func (p *NATSPublisher) PublishLeaderboard(tournamentID string, entries []golf.LeaderboardEntry) error {
	return golf.SendLeaderboardUpdateToNATS(p.js, tournamentID, entries)
}

func (p *NATSPublisher) PublishTeamMatch(match *golf.TeamMatch) error {
	return golf.SendTeamMatchUpdateToNATS(p.js, match)
}

func (p *NATSPublisher) PublishTeamLeaderboard(sidegameID string, standings []golf.TeamStanding) error {
	return golf.SendTeamLeaderboardUpdateToNATS(p.js, sidegameID, standings)
}

// NopPublisher drops every snapshot. Used when no delivery layer is wired,
// e.g. in tests.
type NopPublisher struct{}

func (NopPublisher) PublishLeaderboard(string, []golf.LeaderboardEntry) error { return nil }
func (NopPublisher) PublishTeamMatch(*golf.TeamMatch) error                   { return nil }
func (NopPublisher) PublishTeamLeaderboard(string, []golf.TeamStanding) error { return nil }
