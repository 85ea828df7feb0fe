package engine

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Cam-Smith-Games/Card-Game/internal/game"
)

// Observer receives battle events. Calls come from the goroutine running
// Battle.Start, in order, after the event has fully happened (a CardCast
// arrives once the cast's presentation is over).
type Observer interface {
	RoundStarted(turn, team int)
	TurnStarted(turn int, e *game.Entity)
	CardCast(turn int, caster *game.Entity, card *game.Card, targets []*game.Entity, results []Resolution)
	BattleCompleted(o Outcome)
}

// BaseObserver ignores everything. Embed it to implement only some events.
type BaseObserver struct{}

func (BaseObserver) RoundStarted(int, int) {}
func (BaseObserver) TurnStarted(int, *game.Entity) {}
func (BaseObserver) CardCast(int, *game.Entity, *game.Card, []*game.Entity, []Resolution) {}
func (BaseObserver) BattleCompleted(Outcome) {}

// Observers fans every event out to each observer in order.
type Observers []Observer

func (os Observers) RoundStarted(turn, team int) {
	for _, o := range os {
		o.RoundStarted(turn, team)
	}
}

func (os Observers) TurnStarted(turn int, e *game.Entity) {
	for _, o := range os {
		o.TurnStarted(turn, e)
	}
}

func (os Observers) CardCast(turn int, caster *game.Entity, card *game.Card, targets []*game.Entity, results []Resolution) {
	for _, o := range os {
		o.CardCast(turn, caster, card, targets, results)
	}
}

func (os Observers) BattleCompleted(out Outcome) {
	for _, o := range os {
		o.BattleCompleted(out)
	}
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Narrator turns events into the battle log.
type Narrator struct {
	mu    sync.Mutex
	lines []string
	dead  map[*game.Entity]bool
}

func NewNarrator() *Narrator {
	return &Narrator{lines: make([]string, 0, 32), dead: map[*game.Entity]bool{}}
}

func (n *Narrator) add(msg string) { n.lines = append(n.lines, msg) }

func (n *Narrator) RoundStarted(turn, team int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.add(fmt.Sprintf("---------- Turn %d (Team %d) ----------", turn, team+1))
}

func (n *Narrator) TurnStarted(_ int, e *game.Entity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.add(e.Name + "'s Turn")
}

func (n *Narrator) CardCast(_ int, caster *game.Entity, card *game.Card, targets []*game.Entity, results []Resolution) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, t := range targets {
		n.add(describeCast(caster, card, t, results[i]))
	}
	for _, t := range targets {
		if !t.Alive() && !n.dead[t] {
			n.dead[t] = true
			n.add(t.Name + " dies!")
		}
	}
}

func (n *Narrator) BattleCompleted(o Outcome) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.add(fmt.Sprintf("FIGHT COMPLETE: Team %d Wins!", o.WinningTeam+1))
}

// Lines returns a copy of the log so far.
func (n *Narrator) Lines() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.lines...)
}

// String joins the log with newlines.
func (n *Narrator) String() string {
	return strings.Join(n.Lines(), "\n")
}

func describeCast(caster *game.Entity, card *game.Card, target *game.Entity, res Resolution) string {
	if res.Miss {
		return fmt.Sprintf("%s's %s missed %s!", caster.Name, card.Name, target.Name)
	}
	var b strings.Builder
	if card.Power > 0 {
		fmt.Fprintf(&b, "%s's %s hits %s for %s!", caster.Name, card.Name, target.Name, num(res.Damage))
	} else {
		fmt.Fprintf(&b, "%s's %s heals %s for %s!", caster.Name, card.Name, target.Name, num(-res.Damage))
	}
	if res.Critical {
		fmt.Fprintf(&b, " (CRITICAL %sX DAMAGE)", num(card.CritMultiplier))
	}
	if res.Resisted != 0 {
		fmt.Fprintf(&b, " (%s resisted by %s resistance)", num(res.Resisted), card.Element)
	}
	return b.String()
}
