package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
	"github.com/Cam-Smith-Games/Card-Game/internal/keys"
)

// ErrInvalidEntity wraps every entity construction failure.
var ErrInvalidEntity = errors.New("invalid entity")

// Control tags who decides an entity's actions.
type Control string

const (
	ControlAI     Control = "ai"
	ControlPlayer Control = "player"
)

// ParseControl accepts any casing; the empty string maps to ControlAI.
func ParseControl(s string) (Control, error) {
	switch c := Control(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ControlAI, nil
	case ControlAI, ControlPlayer:
		return c, nil
	default:
		return "", fmt.Errorf("unknown control %q", s)
	}
}

// Vec is a battlefield coordinate or size.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Entity is a mutable combat participant. An entity belongs to one team for
// the lifetime of a battle and is only mutated by the goroutine running it.
type Entity struct {
	Name    string
	HP      float64
	maxHP   float64
	Dodge   float64
	Defense Defense
	Control Control

	// Deck is the fixed pool of cards. Hand, DrawPile and DiscardPile are
	// disjoint and together always hold exactly the cards of Deck.
	Deck        []*Card
	Hand        []*Card
	DrawPile    []*Card
	DiscardPile []*Card

	BaseAP int
	AP     int
	Buffs  []Buff

	// Presentation state. The engine only moves Pos for melee strikes.
	Animations map[string]bool
	Pos        Vec
	Size       Vec
	Flipped    bool
}

// EntitySpec is the construction input for an Entity.
type EntitySpec struct {
	Name       string
	HP         float64
	Deck       []*Card
	Defense    Defense
	Dodge      *float64
	BaseAP     *int
	Buffs      []Buff
	Control    string
	Animations []string
	Size       Vec
}

func entityErr(name, format string, args ...interface{}) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidEntity, name, fmt.Sprintf(format, args...))
}

// NewEntity validates s and returns a full-health entity whose draw
// pile holds a copy of its deck.
func NewEntity(s EntitySpec) (*Entity, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidEntity)
	}
	if s.HP <= 0 {
		return nil, entityErr(name, "hp %v must be positive", s.HP)
	}
	if len(s.Deck) == 0 {
		return nil, entityErr(name, "empty deck")
	}
	for i, c := range s.Deck {
		if c == nil {
			return nil, entityErr(name, "deck slot %d is empty", i)
		}
	}
	ctrl, err := ParseControl(s.Control)
	if err != nil {
		return nil, entityErr(name, "%v", err)
	}
	if err := s.Defense.validate(); err != nil {
		return nil, entityErr(name, "%v", err)
	}

	e := &Entity{
		Name:       name,
		HP:         s.HP,
		maxHP:      s.HP,
		Defense:    Defense{},
		Control:    ctrl,
		BaseAP:     constants.DefaultBaseAP,
		Buffs:      append([]Buff(nil), s.Buffs...),
		Animations: make(map[string]bool, len(s.Animations)),
		Size:       s.Size,
	}
	for k, v := range s.Defense {
		e.Defense[k] = v
	}
	if s.Dodge != nil {
		e.Dodge = *s.Dodge
	}
	if !unit(e.Dodge) {
		return nil, entityErr(name, "dodge %v outside [0,1]", e.Dodge)
	}
	if s.BaseAP != nil {
		e.BaseAP = *s.BaseAP
	}
	if e.BaseAP < 0 {
		return nil, entityErr(name, "base_ap %d is negative", e.BaseAP)
	}
	e.AP = e.BaseAP
	if e.Size == (Vec{}) {
		e.Size = Vec{constants.DefaultEntitySize, constants.DefaultEntitySize}
	}
	for _, a := range s.Animations {
		if k := keys.CardKey(a); k != "" {
			e.Animations[k] = true
		}
	}
	e.Deck = append([]*Card(nil), s.Deck...)
	e.DrawPile = append([]*Card(nil), s.Deck...)
	return e, nil
}

// MaxHP is fixed at creation.
func (e *Entity) MaxHP() float64 { return e.maxHP }

// Alive reports hp > 0.
func (e *Entity) Alive() bool { return e.HP > 0 }

// HasAnimation reports whether the entity owns a caster animation for the
// given card key.
func (e *Entity) HasAnimation(key string) bool { return e.Animations[key] }

// PlayerControlled reports whether the entity's turns come from input.
func (e *Entity) PlayerControlled() bool { return e.Control == ControlPlayer }

// Living filters entities with hp > 0, keeping their order.
func Living(es []*Entity) []*Entity {
	out := make([]*Entity, 0, len(es))
	for _, e := range es {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}
