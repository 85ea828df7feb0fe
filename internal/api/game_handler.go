package api

import (
	"context"

	"github.com/Cam-Smith-Games/Card-Game/internal/content"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/service"
)

// Simulator runs one encounter and returns the stored report.
type Simulator interface {
	RunEncounter(ctx context.Context, encounter string, seed *int64) (*game.BattleRecord, error)
}

// BattleHandler groups the catalog and battle HTTP handlers.
type BattleHandler struct {
	catalog *content.Catalog
	sim     Simulator
	repo    service.BattleReader
}

// NewBattleHandler creates a BattleHandler serving catalog content and
// battle reports from repo.
func NewBattleHandler(catalog *content.Catalog, sim Simulator, repo service.BattleReader) *BattleHandler {
	return &BattleHandler{catalog: catalog, sim: sim, repo: repo}
}
