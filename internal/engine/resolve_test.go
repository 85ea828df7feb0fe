package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cam-Smith-Games/Card-Game/internal/game"
	"github.com/Cam-Smith-Games/Card-Game/internal/random"
)

func rolls() []float64 {
	out := make([]float64, 0, 21)
	for i := 0; i <= 20; i++ {
		out = append(out, float64(i)/20*0.999)
	}
	return out
}

func TestScenarioPlainHit(t *testing.T) {
	c := card(t, game.CardSpec{Name: "Bonk", Power: game.Float(10)})
	target := entity(t, game.EntitySpec{Name: "Troglodyte", HP: 100, Deck: []*game.Card{c}})

	d := NewDispatcher(NewResolver(random.NewSequence(0.42)), nil, 0)
	res := d.Effect(c, target, []*game.Entity{target})
	require.Len(t, res, 1)
	assert.False(t, res[0].Miss)
	assert.Equal(t, 10.0, res[0].Damage)
	assert.Equal(t, 90.0, target.HP)
}

func TestScenarioResistedHit(t *testing.T) {
	c := card(t, game.CardSpec{Name: "Bonk", Power: game.Float(10), Element: "physical"})
	target := entity(t, game.EntitySpec{Name: "Knight", HP: 100, Deck: []*game.Card{c}, Defense: game.Defense{game.Physical: 4}})

	d := NewDispatcher(NewResolver(random.NewSequence(0.42)), nil, 0)
	res := d.Effect(c, target, []*game.Entity{target})
	assert.Equal(t, 6.0, res[0].Damage)
	assert.Equal(t, 4.0, res[0].Resisted)
	assert.Equal(t, 94.0, target.HP)
}

func TestScenarioHealIgnoresResistance(t *testing.T) {
	heal := card(t, game.CardSpec{Name: "Holy Light", Power: game.Float(-6), Element: "light"})
	target := entity(t, game.EntitySpec{Name: "Cam", HP: 100, Deck: []*game.Card{heal}, Defense: game.Defense{game.Light: 999}})
	target.HP = 50

	d := NewDispatcher(NewResolver(random.NewSequence(0.42)), nil, 0)
	res := d.Effect(heal, target, []*game.Entity{target})
	assert.Equal(t, -6.0, res[0].Damage)
	assert.Equal(t, 0.0, res[0].Resisted)
	assert.Equal(t, 56.0, target.HP)
}

func TestScenarioDodge(t *testing.T) {
	c := card(t, game.CardSpec{Name: "Lightning Strike", Power: game.Float(15), Accuracy: game.Float(0.75)})
	target := entity(t, game.EntitySpec{Name: "Mage", HP: 50, Deck: []*game.Card{c}, Dodge: game.Float(0.5)})

	d := NewDispatcher(NewResolver(random.NewSequence(0.5, 0.3)), nil, 0)

	miss := d.Effect(c, target, []*game.Entity{target})
	assert.True(t, miss[0].Miss)
	assert.Equal(t, 0.0, miss[0].Damage)
	assert.Equal(t, 50.0, target.HP)

	hit := d.Effect(c, target, []*game.Entity{target})
	assert.False(t, hit[0].Miss)
	assert.Equal(t, 35.0, target.HP)
}

func TestResolveIsDeterministicForARoll(t *testing.T) {
	c := card(t, game.CardSpec{Name: "Fireball", Power: game.Float(10), Cost: game.Int(2), Element: "fire",
		CritChance: game.Float(0.75), CritMultiplier: game.Float(1.5), Accuracy: game.Float(0.9), Stability: game.Float(0.6)})
	target := entity(t, game.EntitySpec{Name: "t", HP: 100, Deck: []*game.Card{c}, Dodge: game.Float(0.1), Defense: game.Defense{game.Fire: 2}})

	for _, r := range rolls() {
		first := ResolveRoll(c, target, r)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, ResolveRoll(c, target, r))
		}
	}
	assert.Equal(t, 100.0, target.HP, "resolving must not touch the target")
}

func TestResolveProperties(t *testing.T) {
	powers := []float64{-12, -6, 0, 1, 6, 10, 25}
	stabilities := []float64{0, 0.5, 1}
	defenses := []float64{0, 4, 999}

	for _, p := range powers {
		for _, stab := range stabilities {
			c := card(t, game.CardSpec{Name: "c", Power: game.Float(p), Stability: game.Float(stab),
				Accuracy: game.Float(0.8), CritChance: game.Float(0.3), CritMultiplier: game.Float(2)})
			for _, def := range defenses {
				target := entity(t, game.EntitySpec{Name: "t", HP: 100, Deck: []*game.Card{c},
					Dodge: game.Float(0.25), Defense: game.Defense{game.Physical: def}})
				undefended := entity(t, game.EntitySpec{Name: "u", HP: 100, Deck: []*game.Card{c}, Dodge: game.Float(0.25)})

				for _, r := range rolls() {
					res := ResolveRoll(c, target, r)
					if res.Miss {
						assert.False(t, res.Critical, "crit on a miss")
						assert.Zero(t, res.Damage)
						continue
					}
					if stab == 1 {
						assert.Equal(t, p, res.Initial)
					}
					if p > 0 {
						assert.GreaterOrEqual(t, res.Damage, 0.0)
					} else {
						assert.Equal(t, ResolveRoll(c, undefended, r).Damage, res.Damage, "heal was resisted")
					}
					bare := ResolveRoll(c, undefended, r)
					if bare.Critical {
						assert.InDelta(t, bare.Initial*2, bare.Damage, 1e-9)
					} else {
						assert.InDelta(t, bare.Initial, bare.Damage, 1e-9)
					}
				}
			}
		}
	}
}

func TestLowStabilityIsDeterministic(t *testing.T) {
	c := card(t, game.CardSpec{Name: "Wild Swing", Power: game.Float(10), Stability: game.Float(0.5)})
	target := entity(t, game.EntitySpec{Name: "t", HP: 100, Deck: []*game.Card{c}})
	for _, r := range rolls() {
		assert.Equal(t, 15.0, ResolveRoll(c, target, r).Damage)
	}
}

// The hit and the crit share one roll. A card whose crit chance is above
// its hit chance can never crit on the draws in between.
func TestSharedRollCritQuirk(t *testing.T) {
	c := card(t, game.CardSpec{Name: "Gamble", Power: game.Float(10), Accuracy: game.Float(0.5),
		CritChance: game.Float(0.75), CritMultiplier: game.Float(2)})
	target := entity(t, game.EntitySpec{Name: "t", HP: 100, Deck: []*game.Card{c}})

	res := ResolveRoll(c, target, 0.6)
	assert.True(t, res.Miss, "0.6 is inside crit chance but outside hit chance")
	assert.False(t, res.Critical)

	res = ResolveRoll(c, target, 0.4)
	assert.True(t, res.Critical)
	assert.Equal(t, 20.0, res.Damage)

	// low crit chance only crits on the lowest hit rolls
	precise := card(t, game.CardSpec{Name: "Precise", Power: game.Float(10), CritChance: game.Float(0.1)})
	assert.True(t, ResolveRoll(precise, target, 0.05).Critical)
	assert.False(t, ResolveRoll(precise, target, 0.5).Critical)
	assert.Equal(t, 12.5, ResolveRoll(precise, target, 0.05).Damage)
}

func TestZeroCritChanceNeverCrits(t *testing.T) {
	c := card(t, game.CardSpec{Name: "Bonk", Power: game.Float(10)})
	target := entity(t, game.EntitySpec{Name: "t", HP: 100, Deck: []*game.Card{c}})
	assert.False(t, ResolveRoll(c, target, 0).Critical)
}

func TestFullyResistedHitIsNotAMiss(t *testing.T) {
	c := card(t, game.CardSpec{Name: "Frostbolt", Power: game.Float(6), Element: "ice"})
	target := entity(t, game.EntitySpec{Name: "t", HP: 100, Deck: []*game.Card{c}, Defense: game.Defense{game.Ice: 10}})
	res := ResolveRoll(c, target, 0.1)
	assert.False(t, res.Miss)
	assert.Equal(t, 0.0, res.Damage)
	assert.Equal(t, 10.0, res.Resisted)
}
