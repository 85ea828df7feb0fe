package engine

import (
	"context"
	"errors"
	"time"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
)

// ErrMissingAnimation may be returned by a Stage that cannot play what it
// was asked to. The cast continues without it.
var ErrMissingAnimation = errors.New("missing animation")

// Stage is the presentation sink. Every method blocks until the visual has
// finished. Ranged and still casts call it from several goroutines at once,
// so implementations must be safe for concurrent use. A Stage never mutates
// combat state.
//
// Every method must return promptly once ctx is done. A presentation
// timeout stops the cast from waiting, but the step keeps its goroutine
// until the method returns, so a Stage that ignores ctx holds one goroutine
// per abandoned step.
type Stage interface {
	// PlayAnimation runs one of the entity's own animations (named by card
	// key) and returns once it has finished.
	PlayAnimation(ctx context.Context, e *game.Entity, name string) error
	// Launch sends a traveling effect from the caster to the target and
	// returns on arrival.
	Launch(ctx context.Context, card *game.Card, caster, target *game.Entity) error
	// Spawn plays a stationary effect on the target.
	Spawn(ctx context.Context, card *game.Card, target *game.Entity) error
	// Announce shows the result over the target.
	Announce(ctx context.Context, target *game.Entity, res Resolution) error
}

// NopStage completes every step immediately. Headless simulations use it.
type NopStage struct{}

func (NopStage) PlayAnimation(context.Context, *game.Entity, string) error { return nil }
func (NopStage) Launch(context.Context, *game.Card, *game.Entity, *game.Entity) error { return nil }
func (NopStage) Spawn(context.Context, *game.Card, *game.Entity) error { return nil }
func (NopStage) Announce(context.Context, *game.Entity, Resolution) error { return nil }

// waiter awaits presentation steps. With a zero timeout it waits as long as
// the stage takes; only cancelling ctx ends the wait early.
type waiter struct {
	timeout time.Duration
}

// await runs step and waits for it. Stage failures and timeouts are logged
// and swallowed since the effect has already been applied. Only
// cancellation of ctx is returned.
func (w waiter) await(ctx context.Context, what string, fields logging.Fields, step func(context.Context) error) error {
	sctx := ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- step(sctx) }()

	var err error
	select {
	case err = <-done:
	case <-sctx.Done():
		err = sctx.Err()
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		return nil
	}

	f := logging.Fields{constants.LogFieldEvent: what}
	for k, v := range fields {
		f[k] = v
	}
	switch {
	case errors.Is(err, ErrMissingAnimation):
		logging.Warn("presentation step has no animation", f)
	case errors.Is(err, context.DeadlineExceeded):
		f["timeout"] = w.timeout.String()
		logging.Warn("presentation step timed out", f)
	default:
		logging.Error("presentation step failed", err, f)
	}
	return nil
}
