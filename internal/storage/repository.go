package storage

import (
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
)

// EncounterStats summarizes stored battles for one encounter.
type EncounterStats struct {
	Encounter  string  `json:"encounter"`
	Played     int64   `json:"played"`
	PlayerWins int64   `json:"player_wins"`
	AvgTurns   float64 `json:"avg_turns"`
}

type Repository interface {
	// SaveBattle stores a finished battle together with its casts.
	SaveBattle(b *game.BattleRecord) error
	// GetBattleByUUID loads one battle with its casts in cast order.
	// Returns gorm.ErrRecordNotFound when no battle matches.
	GetBattleByUUID(uuid string) (*game.BattleRecord, error)
	// ListRecentBattles returns the newest battles first, without casts.
	ListRecentBattles(limit int) ([]game.BattleRecord, error)
	// ListBattlesByTeamKey returns the newest battles between the same
	// line-up, in any order of names.
	ListBattlesByTeamKey(teamKey string, limit int) ([]game.BattleRecord, error)
	// GetEncounterStats aggregates results per encounter.
	GetEncounterStats() ([]EncounterStats, error)
}
