package models

import (
	"time"
)

// TournamentSnapshot is one persisted tournament aggregate: the full player
// list, score ledger, and round counters serialized as JSON.
type TournamentSnapshot struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:100;not null"`
	Data      []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// SidegameSnapshot is one persisted sidegame aggregate, including its full
// team-match list.
type SidegameSnapshot struct {
	ID           string    `gorm:"primaryKey;size:36"`
	TournamentID string    `gorm:"size:36;index;not null"`
	Round        int       `gorm:"not null"`
	GameType     string    `gorm:"size:20;not null"`
	Data         []byte    `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}
