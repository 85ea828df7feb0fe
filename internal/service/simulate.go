package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/content"
	"github.com/Cam-Smith-Games/Card-Game/internal/engine"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/keys"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
	"github.com/Cam-Smith-Games/Card-Game/internal/random"
)

var (
	ErrEncounterNotFound = errors.New("encounter not found")
	ErrBattleNotFound    = errors.New("battle not found")
)

// BattleSaver persists finished battles.
type BattleSaver interface {
	SaveBattle(b *game.BattleRecord) error
}

// Settings are the engine limits applied to every simulated battle.
type Settings struct {
	HandSize            int
	MaxTurns            int
	PresentationTimeout time.Duration
}

// Simulator runs catalog encounters headless: player controlled entities
// are driven by an AutoPilot and nothing is drawn.
type Simulator struct {
	catalog  *content.Catalog
	repo     BattleSaver
	settings Settings
	// newStage is swapped in tests; production battles use NopStage.
	newStage func() engine.Stage
}

func NewSimulator(catalog *content.Catalog, repo BattleSaver, settings Settings) *Simulator {
	return &Simulator{
		catalog:  catalog,
		repo:     repo,
		settings: settings,
		newStage: func() engine.Stage { return engine.NopStage{} },
	}
}

// RunEncounter fights one encounter to completion and stores the report.
// A nil seed picks one from the clock; the seed used is always recorded so
// the battle can be replayed.
func (s *Simulator) RunEncounter(ctx context.Context, encounter string, seed *int64) (*game.BattleRecord, error) {
	teams, err := s.catalog.BuildEncounter(encounter)
	if err != nil {
		if errors.Is(err, content.ErrUnknownEncounter) {
			return nil, fmt.Errorf("%w: %q", ErrEncounterNotFound, encounter)
		}
		return nil, err
	}
	enc, _ := s.catalog.Encounter(encounter)

	sd := time.Now().UnixNano()
	if seed != nil {
		sd = *seed
	}
	src := random.New(sd)

	narrator := engine.NewNarrator()
	rec := &castRecorder{}
	b, err := engine.NewBattle(teams[0], teams[1], engine.Options{
		Stage:               s.newStage(),
		Input:               engine.NewAutoPilot(src),
		Source:              src,
		Observer:            engine.Observers{narrator, rec},
		HandSize:            s.settings.HandSize,
		MaxTurns:            s.settings.MaxTurns,
		PresentationTimeout: s.settings.PresentationTimeout,
	})
	if err != nil {
		return nil, err
	}

	fields := logging.Fields{
		constants.LogFieldBattleID:  b.ID(),
		constants.LogFieldEncounter: enc.Name,
		constants.LogFieldSeed:      sd,
	}
	logging.Info("simulation started", fields)
	out, err := b.Start(ctx)
	if err != nil {
		logging.Error("simulation aborted", err, fields)
		return nil, err
	}

	names := [2][]string{entityNames(teams[0]), entityNames(teams[1])}
	record := &game.BattleRecord{
		UUID:        out.BattleID,
		Encounter:   enc.Name,
		Seed:        sd,
		Team0:       strings.Join(names[0], ", "),
		Team1:       strings.Join(names[1], ", "),
		TeamKey:     keys.TeamKey(append(names[0], names[1]...)),
		WinningTeam: out.WinningTeam,
		PlayerWon:   out.PlayerWon,
		Turns:       out.Turns,
		Log:         narrator.String(),
		Casts:       rec.records(),
	}
	if err := s.repo.SaveBattle(record); err != nil {
		logging.Error("failed to save battle", err, fields)
		return nil, err
	}
	logging.Info("simulation stored", logging.Fields{
		constants.LogFieldBattleID: record.UUID,
		constants.LogFieldWinner:   record.WinningTeam,
		constants.LogFieldTurn:     record.Turns,
	})
	return record, nil
}

func entityNames(team []*game.Entity) []string {
	out := make([]string, len(team))
	for i, e := range team {
		out[i] = e.Name
	}
	return out
}

// castRecorder turns every resolved target of every cast into a
// CastRecord.
type castRecorder struct {
	engine.BaseObserver

	mu    sync.Mutex
	team  int
	casts []game.CastRecord
}

func (r *castRecorder) RoundStarted(_ int, team int) {
	r.mu.Lock()
	r.team = team
	r.mu.Unlock()
}

func (r *castRecorder) CardCast(turn int, caster *game.Entity, card *game.Card, targets []*game.Entity, results []engine.Resolution) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range targets {
		if i >= len(results) {
			break
		}
		res := results[i]
		r.casts = append(r.casts, game.CastRecord{
			Turn:     turn,
			Team:     r.team,
			Caster:   caster.Name,
			Card:     card.Name,
			Target:   t.Name,
			Miss:     res.Miss,
			Critical: res.Critical,
			Resisted: res.Resisted,
			Damage:   res.Damage,
			TargetHP: t.HP,
		})
	}
}

func (r *castRecorder) records() []game.CastRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]game.CastRecord(nil), r.casts...)
}
