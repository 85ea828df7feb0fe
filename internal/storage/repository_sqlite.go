package storage

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/keys"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

var newestFirst = clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}

func (r *sqliteRepository) SaveBattle(b *game.BattleRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Create(b).Error
	})
}

func (r *sqliteRepository) GetBattleByUUID(uuid string) (*game.BattleRecord, error) {
	var b game.BattleRecord
	err := r.db.
		Preload("Casts", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("uuid = ?", strings.TrimSpace(uuid)).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// omitLog keeps list responses small; the narrated log is only returned by
// GetBattleByUUID.
func omitLog(db *gorm.DB) *gorm.DB { return db.Omit("log") }

func (r *sqliteRepository) ListRecentBattles(limit int) ([]game.BattleRecord, error) {
	var out []game.BattleRecord
	if err := r.db.Scopes(omitLog).Order(newestFirst).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) ListBattlesByTeamKey(teamKey string, limit int) ([]game.BattleRecord, error) {
	key := keys.ParseTeamKey(teamKey)
	var out []game.BattleRecord
	if err := r.db.Scopes(omitLog).
		Where("team_key = ?", key).
		Order(newestFirst).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) GetEncounterStats() ([]EncounterStats, error) {
	var out []EncounterStats
	err := r.db.Model(&game.BattleRecord{}).
		Select("encounter, COUNT(*) AS played, SUM(CASE WHEN player_won THEN 1 ELSE 0 END) AS player_wins, AVG(turns) AS avg_turns").
		Group("encounter").
		Order("encounter").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
