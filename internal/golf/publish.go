package golf

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

func SendLeaderboardUpdateToNATS(js nats.JetStreamContext, tournamentID string, entries []LeaderboardEntry) error {
	subject := fmt.Sprintf("golf.tournament.%s.leaderboard", tournamentID)

	messageBytes, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard for tournament %s: %w", tournamentID, err)
	}

	if _, err := js.Publish(subject, messageBytes); err != nil {
		return fmt.Errorf("failed to publish leaderboard to JetStream for tournament %s: %w", tournamentID, err)
	}

	return nil
}

func SendTeamMatchUpdateToNATS(js nats.JetStreamContext, match *TeamMatch) error {
	subject := fmt.Sprintf("golf.sidegame.%s.match.%d", match.SidegameID, match.Hole)

	messageBytes, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal team match for sidegame %s: %w", match.SidegameID, err)
	}

	if _, err := js.Publish(subject, messageBytes); err != nil {
		return fmt.Errorf("failed to publish team match to JetStream for sidegame %s: %w", match.SidegameID, err)
	}

	return nil
}

func SendTeamLeaderboardUpdateToNATS(js nats.JetStreamContext, sidegameID string, standings []TeamStanding) error {
	subject := fmt.Sprintf("golf.sidegame.%s.leaderboard", sidegameID)

	messageBytes, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("failed to marshal team leaderboard for sidegame %s: %w", sidegameID, err)
	}

	if _, err := js.Publish(subject, messageBytes); err != nil {
		return fmt.Errorf("failed to publish team leaderboard to JetStream for sidegame %s: %w", sidegameID, err)
	}

	return nil
}
