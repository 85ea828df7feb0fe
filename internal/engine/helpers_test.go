package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Cam-Smith-Games/Card-Game/internal/game"
)

func card(t *testing.T, spec game.CardSpec) *game.Card {
	t.Helper()
	c, err := game.NewCard(spec)
	require.NoError(t, err)
	return c
}

func entity(t *testing.T, spec game.EntitySpec) *game.Entity {
	t.Helper()
	e, err := game.NewEntity(spec)
	require.NoError(t, err)
	return e
}

// eventLog is shared by the fake stage and observer so their events can be
// checked against each other.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

// fakeStage records every call. Each step sleeps for delay so overlapping
// turns would interleave in the log.
type fakeStage struct {
	log   *eventLog
	delay time.Duration
	// hp seen by the first presentation step of a cast, per target
	mu       sync.Mutex
	seenHP   map[string]float64
	casterAt []game.Vec
}

func newFakeStage(log *eventLog) *fakeStage {
	return &fakeStage{log: log, seenHP: map[string]float64{}}
}

func (s *fakeStage) pause(ctx context.Context) error {
	if s.delay == 0 {
		return nil
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeStage) see(target *game.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seenHP[target.Name]; !ok {
		s.seenHP[target.Name] = target.HP
	}
}

func (s *fakeStage) PlayAnimation(ctx context.Context, e *game.Entity, name string) error {
	s.mu.Lock()
	s.casterAt = append(s.casterAt, e.Pos)
	s.mu.Unlock()
	s.log.add("animate %s %s", e.Name, name)
	return s.pause(ctx)
}

func (s *fakeStage) Launch(ctx context.Context, c *game.Card, caster, target *game.Entity) error {
	s.see(target)
	s.log.add("launch %s %s", c.Key, target.Name)
	return s.pause(ctx)
}

func (s *fakeStage) Spawn(ctx context.Context, c *game.Card, target *game.Entity) error {
	s.see(target)
	s.log.add("spawn %s %s", c.Key, target.Name)
	return s.pause(ctx)
}

func (s *fakeStage) Announce(ctx context.Context, target *game.Entity, res Resolution) error {
	s.see(target)
	s.log.add("announce start %s", target.Name)
	err := s.pause(ctx)
	s.log.add("announce end %s", target.Name)
	return err
}

// blockingStage never finishes a launch on its own and ignores ctx.
type blockingStage struct {
	NopStage
	release chan struct{}
}

func (s *blockingStage) Launch(context.Context, *game.Card, *game.Entity, *game.Entity) error {
	<-s.release
	return nil
}

// turnLog records observer events into an eventLog.
type turnLog struct {
	BaseObserver
	log      *eventLog
	outcomes []Outcome
}

func (o *turnLog) TurnStarted(turn int, e *game.Entity) { o.log.add("turn %d %s", turn, e.Name) }
func (o *turnLog) BattleCompleted(out Outcome) { o.outcomes = append(o.outcomes, out) }

// scriptedInput answers with the given functions; nil functions end the
// turn.
type scriptedInput struct {
	cardCalls    int
	chooseCard   func(self *game.Entity, playable []*game.Card) *game.Card
	chooseTarget func(c Candidates) *game.Entity
}

func (in *scriptedInput) ChooseCard(_ context.Context, self *game.Entity, playable []*game.Card) (*game.Card, error) {
	in.cardCalls++
	if in.chooseCard == nil {
		return nil, nil
	}
	return in.chooseCard(self, playable), nil
}

func (in *scriptedInput) ChooseTarget(_ context.Context, _ *game.Entity, _ *game.Card, c Candidates) (*game.Entity, error) {
	if in.chooseTarget == nil {
		return nil, nil
	}
	return in.chooseTarget(c), nil
}
