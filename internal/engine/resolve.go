package engine

import (
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/random"
)

// Resolution is the outcome of one card against one target.
//
// A miss carries no damage at all; presenters must tell it apart from a hit
// that was fully resisted (Miss false, Damage 0).
type Resolution struct {
	Miss     bool    `json:"miss"`
	Critical bool    `json:"critical"`
	Initial  float64 `json:"initial"`  // magnitude after stability, before crit
	Resisted float64 `json:"resisted"` // target's defense against the element
	Damage   float64 `json:"damage"`   // signed; negative heals
}

// ResolveRoll resolves card against target for a given uniform draw r.
// The same draw decides both the hit and the critical, so a card can only
// crit when r is also below its hit chance.
func ResolveRoll(card *game.Card, target *game.Entity, r float64) Resolution {
	var res Resolution

	hitChance := card.Accuracy * (1 - target.Dodge)
	if r > hitChance {
		res.Miss = true
		return res
	}

	dmg := card.Power + (1-card.Stability)*card.Power
	res.Initial = dmg

	if card.CritChance != 0 && r <= card.CritChance {
		res.Critical = true
		dmg *= card.CritMultiplier
	}

	// healing is never resisted
	if card.Power > 0 {
		res.Resisted = target.Defense.Against(card.Element)
		dmg -= res.Resisted
		if dmg < 0 {
			dmg = 0
		}
	}
	res.Damage = dmg
	return res
}

// Resolver draws one value per resolution from its source.
type Resolver struct {
	src random.Source
}

func NewResolver(src random.Source) *Resolver {
	if src == nil {
		src = random.NewTimeSeeded()
	}
	return &Resolver{src: src}
}

// Resolve computes the result without touching the target.
func (rv *Resolver) Resolve(card *game.Card, target *game.Entity) Resolution {
	return ResolveRoll(card, target, random.Uniform(rv.src))
}
