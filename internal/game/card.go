package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/keys"
)

// ErrInvalidCard wraps every card construction failure.
var ErrInvalidCard = errors.New("invalid card")

// Motion selects how a card is presented once its effect is resolved.
type Motion string

const (
	// MotionRanged launches a traveling effect at every target.
	MotionRanged Motion = "ranged"
	// MotionMelee walks the caster up to each target in turn.
	MotionMelee Motion = "melee"
	// MotionStill spawns a stationary effect on every target.
	MotionStill Motion = "still"
)

// ParseMotion accepts any casing; the empty string maps to MotionStill.
func ParseMotion(s string) (Motion, error) {
	switch m := Motion(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MotionStill, nil
	case MotionRanged, MotionMelee, MotionStill:
		return m, nil
	default:
		return "", fmt.Errorf("unknown motion %q", s)
	}
}

// Effect describes what the presentation of a card looks like. The combat
// engine never reads it; it is handed to the stage untouched.
type Effect struct {
	Animation string             `json:"animation,omitempty" yaml:"animation"`
	Params    map[string]float64 `json:"params,omitempty" yaml:"params"`
}

// Card is an immutable ability definition. Cards are shared by every entity
// whose deck references them and must not be mutated after NewCard.
type Card struct {
	Key            string  `json:"key"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Power          float64 `json:"power"`
	Cost           int     `json:"cost"`
	Accuracy       float64 `json:"accuracy"`
	MaxTargets     int     `json:"max_targets"`
	CritChance     float64 `json:"crit_chance"`
	CritMultiplier float64 `json:"crit_multiplier"`
	Stability      float64 `json:"stability"`
	Element        Element `json:"element"`
	Color          string  `json:"color"`
	Icon           string  `json:"icon,omitempty"`
	Motion         Motion  `json:"motion"`
	Effect         Effect  `json:"effect"`
}

// CardSpec is the construction input for a Card. Nil pointers take the
// documented defaults; Power is required.
type CardSpec struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Power          *float64 `yaml:"power"`
	Cost           *int     `yaml:"cost"`
	Accuracy       *float64 `yaml:"accuracy"`
	MaxTargets     *int     `yaml:"max_targets"`
	CritChance     *float64 `yaml:"crit_chance"`
	CritMultiplier *float64 `yaml:"crit_multiplier"`
	Stability      *float64 `yaml:"stability"`
	Element        string   `yaml:"element"`
	Color          string   `yaml:"color"`
	Icon           string   `yaml:"icon"`
	Motion         string   `yaml:"motion"`
	Effect         Effect   `yaml:"effect"`
}

func cardErr(name, format string, args ...interface{}) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidCard, name, fmt.Sprintf(format, args...))
}

func unit(v float64) bool { return v >= 0 && v <= 1 }

// NewCard applies defaults (cost 1, accuracy 1, one target, no crit, crit
// multiplier 1.25, stability 1, physical, gray, still) and rejects
// out-of-range values instead of clamping them.
func NewCard(s CardSpec) (*Card, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidCard)
	}
	if s.Power == nil {
		return nil, cardErr(name, "missing power")
	}
	c := &Card{
		Key:            keys.CardKey(name),
		Name:           name,
		Description:    s.Description,
		Power:          *s.Power,
		Cost:           1,
		Accuracy:       1,
		MaxTargets:     1,
		CritChance:     0,
		CritMultiplier: constants.DefaultCritMultiple,
		Stability:      1,
		Color:          constants.DefaultColor,
		Icon:           s.Icon,
		Effect:         s.Effect,
	}
	if s.Cost != nil {
		c.Cost = *s.Cost
	}
	if s.Accuracy != nil {
		c.Accuracy = *s.Accuracy
	}
	if s.MaxTargets != nil {
		c.MaxTargets = *s.MaxTargets
	}
	if s.CritChance != nil {
		c.CritChance = *s.CritChance
	}
	if s.CritMultiplier != nil {
		c.CritMultiplier = *s.CritMultiplier
	}
	if s.Stability != nil {
		c.Stability = *s.Stability
	}
	if s.Color != "" {
		c.Color = s.Color
	}

	var err error
	if c.Element, err = ParseElement(s.Element); err != nil {
		return nil, cardErr(name, "%v", err)
	}
	if c.Motion, err = ParseMotion(s.Motion); err != nil {
		return nil, cardErr(name, "%v", err)
	}

	switch {
	case c.Cost < 0:
		return nil, cardErr(name, "cost %d is negative", c.Cost)
	case !unit(c.Accuracy):
		return nil, cardErr(name, "accuracy %v outside [0,1]", c.Accuracy)
	case c.MaxTargets < 1:
		return nil, cardErr(name, "max_targets %d must be at least 1", c.MaxTargets)
	case !unit(c.CritChance):
		return nil, cardErr(name, "crit_chance %v outside [0,1]", c.CritChance)
	case c.CritMultiplier < 0:
		return nil, cardErr(name, "crit_multiplier %v is negative", c.CritMultiplier)
	case !unit(c.Stability):
		return nil, cardErr(name, "stability %v outside [0,1]", c.Stability)
	}
	return c, nil
}

// MustCard is NewCard for static content; it panics on invalid input.
func MustCard(s CardSpec) *Card {
	c, err := NewCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Heals reports whether the card restores health. AI targeting uses it to
// aim at friends instead of enemies.
func (c *Card) Heals() bool { return c.Power < 0 }

// Float and Int return pointers for building specs inline.
func Float(v float64) *float64 { return &v }
func Int(v int) *int { return &v }
