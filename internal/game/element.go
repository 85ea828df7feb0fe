package game

import (
	"fmt"
	"strings"
)

// Element is the damage category used to look up a target's resistance.
type Element string

const (
	Physical  Element = "physical"
	Fire      Element = "fire"
	Ice       Element = "ice"
	Water     Element = "water"
	Lightning Element = "lightning"
	Air       Element = "air"
	Light     Element = "light"
	Dark      Element = "dark"
)

var elements = []Element{Physical, Fire, Ice, Water, Lightning, Air, Light, Dark}

// Elements lists every known element in declaration order.
func Elements() []Element {
	out := make([]Element, len(elements))
	copy(out, elements)
	return out
}

// Valid reports whether e is a known element.
func (e Element) Valid() bool {
	for _, k := range elements {
		if k == e {
			return true
		}
	}
	return false
}

// ParseElement accepts any casing; the empty string maps to Physical.
func ParseElement(s string) (Element, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Physical, nil
	}
	e := Element(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown element %q", s)
	}
	return e, nil
}

// Defense maps an element to resistance points. Each point negates one
// damage of that element; absent entries count as zero.
type Defense map[Element]float64

// Against returns the resistance for e.
func (d Defense) Against(e Element) float64 {
	if d == nil {
		return 0
	}
	return d[e]
}

func (d Defense) validate() error {
	for e, v := range d {
		if !e.Valid() {
			return fmt.Errorf("defense: unknown element %q", e)
		}
		if v < 0 {
			return fmt.Errorf("defense: negative %s resistance %v", e, v)
		}
	}
	return nil
}
