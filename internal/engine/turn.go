package engine

import (
	"context"
	"errors"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
	"github.com/Cam-Smith-Games/Card-Game/internal/random"
)

// ErrNoInputSource is returned by NewBattle when a player controlled entity
// takes part but no InputSource was provided.
var ErrNoInputSource = errors.New("player controlled entity without input source")

// Turn is one entity's turn inside a round.
type Turn struct {
	Number int
	Team   int
	Self   *game.Entity
	// Friends is the round's snapshot of living team mates, Self included.
	// It is not refreshed when a friend dies mid-round.
	Friends []*game.Entity
	// Enemies holds the enemies that were alive when this turn started.
	Enemies []*game.Entity

	battle *Battle
}

// LivingEnemies re-reads the enemy team.
func (t *Turn) LivingEnemies() []*game.Entity {
	return game.Living(t.battle.teams[1-t.Team])
}

// LivingFriends re-reads the acting team.
func (t *Turn) LivingFriends() []*game.Entity {
	return game.Living(t.battle.teams[t.Team])
}

// Cast runs card against targets through the battle's dispatcher and
// reports it to the observer.
func (t *Turn) Cast(ctx context.Context, card *game.Card, targets []*game.Entity) error {
	results, err := t.battle.dispatcher.Cast(ctx, card, t.Self, targets)
	t.battle.observer.CardCast(t.Number, t.Self, card, targets, results)
	return err
}

// TurnPolicy decides what an entity does with its turn.
type TurnPolicy interface {
	TakeTurn(ctx context.Context, t *Turn) error
}

// Candidates are the entities a player may target, split by side.
type Candidates struct {
	Friends []*game.Entity
	Enemies []*game.Entity
}

// All lists friends first, then enemies.
func (c Candidates) All() []*game.Entity {
	out := make([]*game.Entity, 0, len(c.Friends)+len(c.Enemies))
	out = append(out, c.Friends...)
	return append(out, c.Enemies...)
}

func (c Candidates) contains(e *game.Entity) bool {
	for _, x := range c.All() {
		if x == e {
			return true
		}
	}
	return false
}

// InputSource supplies choices for player controlled entities. Both calls
// may block for as long as the player takes; only ctx ends them early.
type InputSource interface {
	// ChooseCard picks one of the playable cards. A nil card ends the turn.
	ChooseCard(ctx context.Context, self *game.Entity, playable []*game.Card) (*game.Card, error)
	// ChooseTarget picks exactly one target for card. A nil target ends
	// the turn.
	ChooseTarget(ctx context.Context, self *game.Entity, card *game.Card, c Candidates) (*game.Entity, error)
}

// PlayerPolicy draws a hand and lets the input play cards until it ends the
// turn, no playable card is left or no enemy is alive. Unplayable choices
// are ignored and asked again. The remaining hand is discarded at the end.
type PlayerPolicy struct {
	input    InputSource
	src      random.Source
	handSize int
}

func NewPlayerPolicy(input InputSource, src random.Source, handSize int) *PlayerPolicy {
	if handSize <= 0 {
		handSize = constants.DefaultHandSize
	}
	return &PlayerPolicy{input: input, src: src, handSize: handSize}
}

func (p *PlayerPolicy) TakeTurn(ctx context.Context, t *Turn) error {
	self := t.Self
	self.Draw(p.src, p.handSize)
	defer self.DiscardHand()

	fields := logging.Fields{constants.LogFieldEntity: self.Name, constants.LogFieldTurn: t.Number}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		playable := self.Playable()
		enemies := t.LivingEnemies()
		if len(playable) == 0 || len(enemies) == 0 {
			return nil
		}

		card, err := p.input.ChooseCard(ctx, self, playable)
		if err != nil {
			return err
		}
		if card == nil {
			logging.Debug("turn ended by player", fields)
			return nil
		}
		if !self.InHand(card) || card.Cost > self.AP {
			logging.Debug("ignoring unplayable card", logging.Fields{constants.LogFieldEntity: self.Name, constants.LogFieldCard: card.Name})
			continue
		}

		cands := Candidates{Friends: t.LivingFriends(), Enemies: enemies}
		target, err := p.input.ChooseTarget(ctx, self, card, cands)
		if err != nil {
			return err
		}
		if target == nil {
			logging.Debug("turn ended by player", fields)
			return nil
		}
		if !cands.contains(target) {
			logging.Debug("ignoring illegal target", logging.Fields{constants.LogFieldEntity: self.Name, constants.LogFieldTarget: target.Name})
			continue
		}

		self.AP -= card.Cost
		self.Discard(card)
		if err := t.Cast(ctx, card, []*game.Entity{target}); err != nil {
			return err
		}
	}
}
