package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/dedupe"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/keys"
	"github.com/Cam-Smith-Games/Card-Game/internal/storage"
)

// BattleReader is the read side of the battle store.
type BattleReader interface {
	GetBattleByUUID(uuid string) (*game.BattleRecord, error)
	ListRecentBattles(limit int) ([]game.BattleRecord, error)
	ListBattlesByTeamKey(teamKey string, limit int) ([]game.BattleRecord, error)
	GetEncounterStats() ([]storage.EncounterStats, error)
}

// GetBattle loads one stored battle. Concurrent requests for the same UUID
// share a single database read.
func GetBattle(repo BattleReader, uuid string) (*game.BattleRecord, error) {
	uuid = strings.TrimSpace(uuid)
	v, err, _ := dedupe.BattleGroup.Do(dedupe.BattleKey(uuid), func() (interface{}, error) {
		return repo.GetBattleByUUID(uuid)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	return v.(*game.BattleRecord), nil
}

// ListBattles returns the newest battles, optionally only those between
// the line-up named by teamKey ("a+b", "a,b" or "a b", any order). limit is clamped to [1, MaxRecentLimit].
func ListBattles(repo BattleReader, teamKey string, limit int) ([]game.BattleRecord, error) {
	limit = ClampLimit(limit)
	if key := keys.ParseTeamKey(teamKey); key != "" {
		return repo.ListBattlesByTeamKey(key, limit)
	}
	return repo.ListRecentBattles(limit)
}

// ClampLimit applies the list defaults: non-positive means
// DefaultRecentLimit, anything above MaxRecentLimit is capped.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return constants.DefaultRecentLimit
	case limit > constants.MaxRecentLimit:
		return constants.MaxRecentLimit
	}
	return limit
}

// EncounterStats aggregates stored results per encounter.
func EncounterStats(repo BattleReader) ([]storage.EncounterStats, error) {
	v, err, _ := dedupe.StatsGroup.Do("stats", func() (interface{}, error) {
		return repo.GetEncounterStats()
	})
	if err != nil {
		return nil, err
	}
	return v.([]storage.EncounterStats), nil
}
