package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
)

type animateFunc func(d *Dispatcher, ctx context.Context, card *game.Card, caster *game.Entity, targets []*game.Entity, results []Resolution) error

var animators = map[game.Motion]animateFunc{
	game.MotionRanged: (*Dispatcher).animateRanged,
	game.MotionMelee:  (*Dispatcher).animateMelee,
	game.MotionStill:  (*Dispatcher).animateStill,
}

func (d *Dispatcher) animate(ctx context.Context, card *game.Card, caster *game.Entity, targets []*game.Entity, results []Resolution) error {
	fn, ok := animators[card.Motion]
	if !ok {
		fn = (*Dispatcher).animateStill
	}
	return fn(d, ctx, card, caster, targets, results)
}

func castFields(card *game.Card, caster, target *game.Entity) logging.Fields {
	f := logging.Fields{
		constants.LogFieldEntity: caster.Name,
		constants.LogFieldCard:   card.Key,
	}
	if target != nil {
		f[constants.LogFieldTarget] = target.Name
	}
	return f
}

// playCaster runs the caster's animation for card. A missing animation is
// reported when warn is set and skipped either way.
func (d *Dispatcher) playCaster(ctx context.Context, card *game.Card, caster *game.Entity, warn bool) error {
	if !caster.HasAnimation(card.Key) {
		if warn {
			logging.Warn("caster is missing animation", castFields(card, caster, nil))
		}
		return nil
	}
	return d.wait.await(ctx, "cast_animation", castFields(card, caster, nil), func(ctx context.Context) error {
		return d.stage.PlayAnimation(ctx, caster, card.Key)
	})
}

func (d *Dispatcher) announce(ctx context.Context, card *game.Card, caster, target *game.Entity, res Resolution) error {
	return d.wait.await(ctx, "announce", castFields(card, caster, target), func(ctx context.Context) error {
		return d.stage.Announce(ctx, target, res)
	})
}

// animateRanged plays the cast animation when the caster has one, then
// launches one traveling effect per target. Targets are presented
// concurrently; each result is announced once its effect arrives.
func (d *Dispatcher) animateRanged(ctx context.Context, card *game.Card, caster *game.Entity, targets []*game.Entity, results []Resolution) error {
	if err := d.playCaster(ctx, card, caster, false); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			err := d.wait.await(gctx, "launch", castFields(card, caster, t), func(ctx context.Context) error {
				return d.stage.Launch(ctx, card, caster, t)
			})
			if err != nil {
				return err
			}
			return d.announce(gctx, card, caster, t, results[i])
		})
	}
	return g.Wait()
}

// meleeSpot is where the caster stands to strike target: beside it, on the
// caster's own side of the field.
func meleeSpot(caster, target *game.Entity) game.Vec {
	offset := game.Vec{X: caster.Size.X}
	if !caster.Flipped {
		offset.X = -offset.X
	}
	return target.Pos.Add(offset)
}

// animateMelee walks the caster up to each target in turn, strikes and
// announces, then puts the caster back where it started.
func (d *Dispatcher) animateMelee(ctx context.Context, card *game.Card, caster *game.Entity, targets []*game.Entity, results []Resolution) error {
	home := caster.Pos
	defer func() { caster.Pos = home }()

	for i, t := range targets {
		caster.Pos = meleeSpot(caster, t)
		if err := d.playCaster(ctx, card, caster, true); err != nil {
			return err
		}
		if err := d.announce(ctx, card, caster, t, results[i]); err != nil {
			return err
		}
	}
	return nil
}

// animateStill plays the cast animation, then spawns a stationary effect on
// every target concurrently and announces each result after its effect.
func (d *Dispatcher) animateStill(ctx context.Context, card *game.Card, caster *game.Entity, targets []*game.Entity, results []Resolution) error {
	if err := d.playCaster(ctx, card, caster, true); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			err := d.wait.await(gctx, "spawn", castFields(card, caster, t), func(ctx context.Context) error {
				return d.stage.Spawn(ctx, card, t)
			})
			if err != nil {
				return err
			}
			return d.announce(gctx, card, caster, t, results[i])
		})
	}
	return g.Wait()
}
