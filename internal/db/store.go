package db

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scorekeeper/internal/db/models"
	"scorekeeper/internal/golf"
)

// SnapshotStore persists aggregate snapshots to postgres. Each save upserts
// the whole serialized aggregate in one statement, which gives the same
// no-partial-write guarantee as the file store's rename.
type SnapshotStore struct {
	db *gorm.DB
}

func NewSnapshotStore(db *gorm.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) SaveTournament(ctx context.Context, t *golf.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tournament %s: %w", t.ID, err)
	}
	rec := models.TournamentSnapshot{ID: t.ID, Name: t.Name, Data: data}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save tournament snapshot %s: %w", t.ID, err)
	}
	return nil
}

func (s *SnapshotStore) SaveSidegame(ctx context.Context, g *golf.Sidegame) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal sidegame %s: %w", g.ID, err)
	}
	rec := models.SidegameSnapshot{
		ID:           g.ID,
		TournamentID: g.TournamentID,
		Round:        g.Round,
		GameType:     string(g.GameType),
		Data:         data,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save sidegame snapshot %s: %w", g.ID, err)
	}
	return nil
}

func (s *SnapshotStore) DeleteSidegame(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Delete(&models.SidegameSnapshot{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("failed to delete sidegame snapshot %s: %w", id, err)
	}
	return nil
}

func (s *SnapshotStore) LoadAll(ctx context.Context) ([]*golf.Tournament, []*golf.Sidegame, error) {
	var tournamentRecs []models.TournamentSnapshot
	if err := s.db.WithContext(ctx).Find(&tournamentRecs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load tournament snapshots: %w", err)
	}
	var sidegameRecs []models.SidegameSnapshot
	if err := s.db.WithContext(ctx).Find(&sidegameRecs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load sidegame snapshots: %w", err)
	}

	var tournaments []*golf.Tournament
	for _, rec := range tournamentRecs {
		var t golf.Tournament
		if err := json.Unmarshal(rec.Data, &t); err == nil {
			tournaments = append(tournaments, &t)
		}
	}
	var sidegames []*golf.Sidegame
	for _, rec := range sidegameRecs {
		var g golf.Sidegame
		if err := json.Unmarshal(rec.Data, &g); err == nil {
			sidegames = append(sidegames, &g)
		}
	}
	return tournaments, sidegames, nil
}
