// Package engine runs card battles: damage resolution, the cast pipeline,
// AI and player turn policies and the turn loop that ties them together.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
	"github.com/Cam-Smith-Games/Card-Game/internal/random"
)

// Battle lifecycle states.
const (
	StateNotStarted = "not_started"
	StateRunning    = "running"
	StateComplete   = "complete"
	// StateAborted is entered when Start gives up without a winner:
	// cancellation, input failure or the turn limit.
	StateAborted = "aborted"
)

const (
	eventStart  = "start"
	eventFinish = "finish"
	eventAbort  = "abort"
)

var (
	ErrInvalidBattle  = errors.New("invalid battle")
	ErrAlreadyStarted = errors.New("battle already started")
	ErrTurnLimit      = errors.New("battle exceeded turn limit")
)

// Options configures a Battle. Every field is optional except Input when a
// team contains a player controlled entity.
type Options struct {
	Stage    Stage
	Input    InputSource
	Source   random.Source
	Observer Observer
	// Policies overrides the turn policy per control tag.
	Policies map[game.Control]TurnPolicy
	HandSize int
	// PresentationTimeout bounds every presentation wait. Zero waits for
	// as long as the stage takes.
	PresentationTimeout time.Duration
	// MaxTurns aborts the battle with ErrTurnLimit once reached. Zero means
	// no limit.
	MaxTurns int
	Arena    game.Vec
}

// Outcome is the terminal result of a battle. Team 0 is the player's side.
type Outcome struct {
	BattleID    string `json:"battle_id"`
	WinningTeam int    `json:"winning_team"`
	PlayerWon   bool   `json:"player_won"`
	Turns       int    `json:"turns"`
}

// Battle is two fixed teams fighting in rounds until one side has nobody
// left alive. The whole battle is advanced by one goroutine; Start holds
// the battle lock for its entire run.
type Battle struct {
	mu sync.Mutex

	id         string
	teams      [2][]*game.Entity
	opts       Options
	machine    *fsm.FSM
	dispatcher *Dispatcher
	observer   Observer
	policies   map[game.Control]TurnPolicy

	turnIndex  int
	activeTeam int
}

// NewBattle validates the line-up and wires the battle's collaborators.
// Team membership is fixed from here on.
func NewBattle(team0, team1 []*game.Entity, opts Options) (*Battle, error) {
	teams := [2][]*game.Entity{team0, team1}
	seen := map[*game.Entity]bool{}
	needsInput := false
	for i, team := range teams {
		if len(team) == 0 {
			return nil, fmt.Errorf("%w: team %d is empty", ErrInvalidBattle, i)
		}
		for _, e := range team {
			if e == nil {
				return nil, fmt.Errorf("%w: team %d has an empty slot", ErrInvalidBattle, i)
			}
			if seen[e] {
				return nil, fmt.Errorf("%w: %s is listed twice", ErrInvalidBattle, e.Name)
			}
			seen[e] = true
			if e.PlayerControlled() {
				needsInput = true
			}
		}
	}

	if opts.Source == nil {
		opts.Source = random.NewTimeSeeded()
	}
	if opts.Arena == (game.Vec{}) {
		opts.Arena = game.Vec{X: constants.DefaultArenaWidth, Y: constants.DefaultArenaHeight}
	}
	if opts.HandSize <= 0 {
		opts.HandSize = constants.DefaultHandSize
	}

	b := &Battle{
		id:         uuid.NewString(),
		teams:      [2][]*game.Entity{append([]*game.Entity(nil), team0...), append([]*game.Entity(nil), team1...)},
		opts:       opts,
		dispatcher: NewDispatcher(NewResolver(opts.Source), opts.Stage, opts.PresentationTimeout),
		observer:   opts.Observer,
		activeTeam: -1,
		policies: map[game.Control]TurnPolicy{
			game.ControlAI: NewAIPolicy(opts.Source),
		},
	}
	if b.observer == nil {
		b.observer = BaseObserver{}
	}
	if opts.Input != nil {
		b.policies[game.ControlPlayer] = NewPlayerPolicy(opts.Input, opts.Source, opts.HandSize)
	}
	for c, p := range opts.Policies {
		b.policies[c] = p
	}
	if _, ok := b.policies[game.ControlPlayer]; needsInput && !ok {
		return nil, ErrNoInputSource
	}

	b.machine = fsm.NewFSM(
		StateNotStarted,
		fsm.Events{
			{Name: eventStart, Src: []string{StateNotStarted}, Dst: StateRunning},
			{Name: eventFinish, Src: []string{StateRunning}, Dst: StateComplete},
			{Name: eventAbort, Src: []string{StateRunning}, Dst: StateAborted},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logging.Info("battle state changed", logging.Fields{
					constants.LogFieldBattleID: b.id,
					constants.LogFieldEvent:    e.Event,
					constants.LogFieldState:    e.Dst,
				})
			},
		},
	)
	return b, nil
}

// ID is the battle's unique identifier.
func (b *Battle) ID() string { return b.id }

// State reports the lifecycle state. It is safe to call while Start runs.
func (b *Battle) State() string { return b.machine.Current() }

// Teams returns the two line-ups in their fixed order.
func (b *Battle) Teams() [2][]*game.Entity {
	return [2][]*game.Entity{
		append([]*game.Entity(nil), b.teams[0]...),
		append([]*game.Entity(nil), b.teams[1]...),
	}
}

// Start places the entities and runs rounds until one team has no living
// member. The winner is reported through the Outcome, never as an error.
// An error means the battle was abandoned (or had already been started).
func (b *Battle) Start(ctx context.Context) (Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.machine.Event(context.Background(), eventStart); err != nil {
		return Outcome{}, fmt.Errorf("%w (state %s)", ErrAlreadyStarted, b.machine.Current())
	}
	placeTeams(b.opts.Arena, b.teams)

	for {
		if err := ctx.Err(); err != nil {
			return b.abort(err)
		}
		b.turnIndex++
		b.activeTeam = (b.activeTeam + 1) % 2
		friendTeam, enemyTeam := b.activeTeam, 1-b.activeTeam

		friends := game.Living(b.teams[friendTeam])
		if len(friends) == 0 {
			return b.finish(enemyTeam), nil
		}
		if b.opts.MaxTurns > 0 && b.turnIndex > b.opts.MaxTurns {
			return b.abort(ErrTurnLimit)
		}

		logging.Info("round started", logging.Fields{
			constants.LogFieldBattleID: b.id,
			constants.LogFieldTurn:     b.turnIndex,
			constants.LogFieldTeam:     friendTeam,
		})
		b.observer.RoundStarted(b.turnIndex, friendTeam)

		// friends are not re-checked; enemies are before every turn
		for _, f := range friends {
			enemies := game.Living(b.teams[enemyTeam])
			if len(enemies) == 0 {
				return b.finish(friendTeam), nil
			}
			if err := b.takeTurn(ctx, f, friends, enemies); err != nil {
				return b.abort(err)
			}
		}
	}
}

func (b *Battle) takeTurn(ctx context.Context, self *game.Entity, friends, enemies []*game.Entity) error {
	fields := logging.Fields{
		constants.LogFieldBattleID: b.id,
		constants.LogFieldTurn:     b.turnIndex,
		constants.LogFieldEntity:   self.Name,
	}
	logging.Debug("turn started", fields)
	b.observer.TurnStarted(b.turnIndex, self)

	for _, buff := range self.Buffs {
		if err := buff.Apply(ctx, self); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Error("buff failed", err, logging.Fields{
				constants.LogFieldBattleID: b.id,
				constants.LogFieldEntity:   self.Name,
				"buff":                     buff.Name(),
			})
		}
	}
	self.AP = self.BaseAP

	policy, ok := b.policies[self.Control]
	if !ok {
		policy = b.policies[game.ControlAI]
	}
	turn := &Turn{
		Number:  b.turnIndex,
		Team:    b.activeTeam,
		Self:    self,
		Friends: friends,
		Enemies: enemies,
		battle:  b,
	}
	return policy.TakeTurn(ctx, turn)
}

func (b *Battle) finish(winner int) Outcome {
	out := Outcome{
		BattleID:    b.id,
		WinningTeam: winner,
		PlayerWon:   winner == 0,
		Turns:       b.turnIndex,
	}
	if err := b.machine.Event(context.Background(), eventFinish); err != nil {
		logging.Error("battle state change failed", err, logging.Fields{constants.LogFieldBattleID: b.id})
	}
	logging.Info("battle complete", logging.Fields{
		constants.LogFieldBattleID: b.id,
		constants.LogFieldWinner:   winner,
		constants.LogFieldTurn:     b.turnIndex,
	})
	b.observer.BattleCompleted(out)
	return out
}

func (b *Battle) abort(cause error) (Outcome, error) {
	if err := b.machine.Event(context.Background(), eventAbort); err != nil {
		logging.Error("battle state change failed", err, logging.Fields{constants.LogFieldBattleID: b.id})
	}
	logging.Warn("battle aborted", logging.Fields{
		constants.LogFieldBattleID: b.id,
		constants.LogFieldTurn:     b.turnIndex,
		"cause":                    cause.Error(),
	})
	return Outcome{BattleID: b.id, Turns: b.turnIndex}, cause
}
