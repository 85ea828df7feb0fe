package game

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Cam-Smith-Games/Card-Game/internal/keys"
)

// BattleRecord is the persisted report of one finished simulation.
type BattleRecord struct {
	gorm.Model
	// UUID is the public identifier exposed by the API. The numeric ID stays
	// internal.
	UUID      string `json:"uuid" gorm:"uniqueIndex;size:36"`
	Encounter string `json:"encounter" gorm:"index;size:64"`
	Seed      int64  `json:"seed"`
	// Team0 and Team1 hold the display names of each line-up joined by
	// ", "; TeamKey is the canonical key of the whole match-up so battles
	// between the same characters can be grouped.
	Team0       string `json:"team0"`
	Team1       string `json:"team1"`
	TeamKey     string `json:"team_key" gorm:"index"`
	WinningTeam int    `json:"winning_team"`
	PlayerWon   bool   `json:"player_won"`
	Turns       int    `json:"turns"`
	// Log is the narrated battle, one line per event.
	Log   string       `json:"log" gorm:"type:text"`
	Casts []CastRecord `json:"casts" gorm:"constraint:OnDelete:CASCADE;"`
}

// TableName keeps the reports in `battle_reports` instead of the default
// `battle_records`.
func (BattleRecord) TableName() string { return "battle_reports" }

// BeforeSave normalizes TeamKey so lookups don't depend on line-up order.
func (b *BattleRecord) BeforeSave(tx *gorm.DB) error {
	if b.TeamKey != "" {
		b.TeamKey = keys.TeamKey(strings.Split(b.TeamKey, "+"))
	}
	return nil
}

// CastRecord is one resolved card against one target.
type CastRecord struct {
	gorm.Model
	BattleRecordID uint    `json:"-" gorm:"index"`
	Turn           int     `json:"turn"`
	Team           int     `json:"team"`
	Caster         string  `json:"caster"`
	Card           string  `json:"card"`
	Target         string  `json:"target"`
	Miss           bool    `json:"miss"`
	Critical       bool    `json:"critical"`
	Resisted       float64 `json:"resisted"`
	Damage         float64 `json:"damage"`
	TargetHP       float64 `json:"target_hp"`
}

// TableName overrides the default `cast_records`.
func (CastRecord) TableName() string { return "battle_casts" }
