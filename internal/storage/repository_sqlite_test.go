package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Cam-Smith-Games/Card-Game/internal/game"
)

func newRepo(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "data", "battles.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewSQLiteRepository(db), db
}

func record(uuid, encounter string, won bool, turns int) *game.BattleRecord {
	return &game.BattleRecord{
		UUID:        uuid,
		Encounter:   encounter,
		Team0:       "Cam",
		Team1:       "Troglodyte, Mage",
		TeamKey:     "Troglodyte+Cam+Mage",
		PlayerWon:   won,
		WinningTeam: map[bool]int{true: 0, false: 1}[won],
		Turns:       turns,
		Log:         "Cam's Turn\n",
		Casts: []game.CastRecord{
			{Turn: 1, Team: 0, Caster: "Cam", Card: "Fireball", Target: "Mage", Damage: 10, TargetHP: 40},
			{Turn: 1, Team: 1, Caster: "Mage", Card: "Frostbolt", Target: "Cam", Miss: true, TargetHP: 200},
		},
	}
}

func TestSaveAndGetBattle(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, repo.SaveBattle(record("b-1", "cave", true, 4)))

	got, err := repo.GetBattleByUUID("b-1")
	require.NoError(t, err)
	assert.Equal(t, "cave", got.Encounter)
	assert.Equal(t, "cam+mage+troglodyte", got.TeamKey)
	assert.Equal(t, "Cam's Turn\n", got.Log)
	require.Len(t, got.Casts, 2)
	assert.Equal(t, "Fireball", got.Casts[0].Card)
	assert.True(t, got.Casts[1].Miss)

	_, err = repo.GetBattleByUUID("missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSaveBattleRejectsDuplicateUUID(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, repo.SaveBattle(record("dup", "cave", true, 4)))
	assert.Error(t, repo.SaveBattle(record("dup", "cave", false, 3)))
}

func TestListRecentBattles(t *testing.T) {
	repo, db := newRepo(t)
	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"old", "mid", "new"} {
		b := record(id, "cave", i%2 == 0, 3+i)
		b.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.SaveBattle(b))
	}
	var casts int64
	require.NoError(t, db.Model(&game.CastRecord{}).Count(&casts).Error)
	assert.EqualValues(t, 6, casts)

	got, err := repo.ListRecentBattles(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].UUID)
	assert.Equal(t, "mid", got[1].UUID)
	assert.Empty(t, got[0].Log)
	assert.Empty(t, got[0].Casts)
}

func TestListBattlesByTeamKey(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, repo.SaveBattle(record("a", "cave", true, 4)))
	other := record("b", "arena", false, 9)
	other.TeamKey = "Josh+Cam"
	require.NoError(t, repo.SaveBattle(other))

	got, err := repo.ListBattlesByTeamKey("mage+Cam+troglodyte", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].UUID)
}

func TestGetEncounterStats(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, repo.SaveBattle(record("1", "cave", true, 4)))
	require.NoError(t, repo.SaveBattle(record("2", "cave", false, 6)))
	require.NoError(t, repo.SaveBattle(record("3", "arena", true, 10)))

	stats, err := repo.GetEncounterStats()
	require.NoError(t, err)
	assert.Equal(t, []EncounterStats{
		{Encounter: "arena", Played: 1, PlayerWins: 1, AvgTurns: 10},
		{Encounter: "cave", Played: 2, PlayerWins: 1, AvgTurns: 5},
	}, stats)
}
