package engine

import (
	"context"

	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/random"
)

// AutoPilot plays for a player controlled entity at random: any playable
// card, heals on a living friend, everything else on a living enemy. It
// never ends a turn early. Simulations use it in place of a human.
type AutoPilot struct {
	src random.Source
}

func NewAutoPilot(src random.Source) *AutoPilot {
	return &AutoPilot{src: src}
}

func (a *AutoPilot) ChooseCard(_ context.Context, _ *game.Entity, playable []*game.Card) (*game.Card, error) {
	c, _ := random.SampleOne(a.src, playable)
	return c, nil
}

func (a *AutoPilot) ChooseTarget(_ context.Context, _ *game.Entity, card *game.Card, c Candidates) (*game.Entity, error) {
	pool := c.Enemies
	if card.Heals() {
		pool = c.Friends
	}
	t, _ := random.SampleOne(a.src, pool)
	return t, nil
}
