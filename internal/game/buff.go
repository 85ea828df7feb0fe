package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBuff wraps buff construction failures.
var ErrInvalidBuff = errors.New("invalid buff")

// Buff modifies an entity at the start of each of its turns. Debuffs are
// buffs too. Apply may block (e.g. while an effect plays) and must honor ctx.
type Buff interface {
	Name() string
	Description() string
	Apply(ctx context.Context, e *Entity) error
}

// Operator is the arithmetic a StatBuff applies.
type Operator string

const (
	OpMultiply Operator = "MULTIPLY"
	OpDivide   Operator = "DIVIDE"
	OpAdd      Operator = "ADD"
	OpSubtract Operator = "SUBTRACT"
)

func (o Operator) apply(base, v float64) float64 {
	switch o {
	case OpMultiply:
		return base * v
	case OpDivide:
		return base / v
	case OpAdd:
		return base + v
	case OpSubtract:
		return base - v
	}
	return base
}

func (o Operator) label(stat Stat, v float64) string {
	switch o {
	case OpMultiply:
		return fmt.Sprintf("Multiplies %s by %v.", stat, v)
	case OpDivide:
		return fmt.Sprintf("Divides %s by %v.", stat, v)
	case OpAdd:
		return fmt.Sprintf("Increases %s by %v.", stat, v)
	case OpSubtract:
		return fmt.Sprintf("Reduces %s by %v.", stat, v)
	}
	return ""
}

// Stat names an entity attribute a StatBuff can touch.
type Stat string

const (
	StatBaseAP Stat = "base_ap"
	StatDodge  Stat = "dodge"
	StatHP     Stat = "hp"
)

// StatBuff applies Op with Value to one stat every turn. Duration is kept
// as data for presenters; nothing expires buffs yet.
type StatBuff struct {
	Stat     Stat
	Op       Operator
	Value    float64
	Duration int
}

// NewStatBuff validates the operator and stat. Duration defaults to 1.
func NewStatBuff(stat, op string, value float64, duration int) (*StatBuff, error) {
	b := &StatBuff{
		Stat:     Stat(strings.ToLower(strings.TrimSpace(stat))),
		Op:       Operator(strings.ToUpper(strings.TrimSpace(op))),
		Value:    value,
		Duration: duration,
	}
	switch b.Stat {
	case StatBaseAP, StatDodge, StatHP:
	default:
		return nil, fmt.Errorf("%w: unknown stat %q", ErrInvalidBuff, stat)
	}
	switch b.Op {
	case OpMultiply, OpAdd, OpSubtract:
	case OpDivide:
		if value == 0 {
			return nil, fmt.Errorf("%w: division by zero", ErrInvalidBuff)
		}
	default:
		return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidBuff, op)
	}
	if b.Duration == 0 {
		b.Duration = 1
	}
	if b.Duration < 0 {
		return nil, fmt.Errorf("%w: negative duration %d", ErrInvalidBuff, duration)
	}
	return b, nil
}

func (b *StatBuff) Name() string        { return string(b.Stat) }
func (b *StatBuff) Description() string { return b.Op.label(b.Stat, b.Value) }

// Apply mutates the stat. Dodge is kept inside [0,1] and base AP never
// drops below zero; hp is left unbounded like any other damage or heal.
func (b *StatBuff) Apply(ctx context.Context, e *Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch b.Stat {
	case StatBaseAP:
		v := int(b.Op.apply(float64(e.BaseAP), b.Value))
		if v < 0 {
			v = 0
		}
		e.BaseAP = v
	case StatDodge:
		v := b.Op.apply(e.Dodge, b.Value)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		e.Dodge = v
	case StatHP:
		e.HP = b.Op.apply(e.HP, b.Value)
	}
	return nil
}
