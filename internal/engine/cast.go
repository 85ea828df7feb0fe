package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
)

// Dispatcher runs the two phases of a cast: the effect, which resolves and
// applies every target synchronously, then the presentation picked by the
// card's motion.
type Dispatcher struct {
	resolver *Resolver
	stage    Stage
	wait     waiter
}

// NewDispatcher builds a dispatcher. A nil stage presents nothing; timeout
// bounds each presentation step (zero waits forever).
func NewDispatcher(resolver *Resolver, stage Stage, timeout time.Duration) *Dispatcher {
	if stage == nil {
		stage = NopStage{}
	}
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Dispatcher{resolver: resolver, stage: stage, wait: waiter{timeout: timeout}}
}

// Effect resolves card against every target and applies the hp change in the
// same pass. The result is aligned with targets. Targets are not
// re-validated, so a target may be hit after it has already died.
func (d *Dispatcher) Effect(card *game.Card, caster *game.Entity, targets []*game.Entity) []Resolution {
	results := make([]Resolution, len(targets))
	for i, t := range targets {
		res := d.resolver.Resolve(card, t)
		results[i] = res

		f := logging.Fields{
			constants.LogFieldEntity: caster.Name,
			constants.LogFieldCard:   card.Name,
			constants.LogFieldTarget: t.Name,
		}
		if res.Miss {
			logging.Debug("cast missed", f)
			continue
		}
		wasAlive := t.Alive()
		t.HP -= res.Damage
		f[constants.LogFieldDamage] = res.Damage
		f[constants.LogFieldHP] = t.HP
		f["critical"] = res.Critical
		logging.Debug("cast landed", f)
		if wasAlive && !t.Alive() {
			logging.Info(fmt.Sprintf("%s dies!", t.Name), f)
		}
	}
	return results
}

// Cast applies the effect and then waits for the presentation to finish.
// It only fails when ctx is cancelled; the effect has been applied by then.
func (d *Dispatcher) Cast(ctx context.Context, card *game.Card, caster *game.Entity, targets []*game.Entity) ([]Resolution, error) {
	results := d.Effect(card, caster, targets)
	return results, d.animate(ctx, card, caster, targets, results)
}
