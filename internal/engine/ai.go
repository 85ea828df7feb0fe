package engine

import (
	"context"

	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/random"
)

// Action is a chosen card and the targets it will be cast on.
type Action struct {
	Card    *game.Card
	Targets []*game.Entity
}

// ChooseAction is the AI policy: pick any card from the deck (cost is
// ignored), aim heals at friends and everything else at enemies, and sample
// up to MaxTargets distinct targets. ok is false when there is nothing to do.
func ChooseAction(src random.Source, self *game.Entity, friends, enemies []*game.Entity) (Action, bool) {
	card, ok := random.SampleOne(src, self.Deck)
	if !ok {
		return Action{}, false
	}
	pool := enemies
	if card.Heals() {
		pool = friends
	}
	targets := random.SampleN(src, pool, card.MaxTargets)
	if len(targets) == 0 {
		return Action{}, false
	}
	return Action{Card: card, Targets: targets}, true
}

// AIPolicy plays one card per turn for computer controlled entities.
type AIPolicy struct {
	src random.Source
}

func NewAIPolicy(src random.Source) *AIPolicy {
	return &AIPolicy{src: src}
}

func (p *AIPolicy) TakeTurn(ctx context.Context, t *Turn) error {
	act, ok := ChooseAction(p.src, t.Self, t.Friends, t.Enemies)
	if !ok {
		return nil
	}
	return t.Cast(ctx, act.Card, act.Targets)
}
