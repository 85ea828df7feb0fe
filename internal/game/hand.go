package game

import "github.com/Cam-Smith-Games/Card-Game/internal/random"

// removeCard drops the first occurrence of c. The same *Card may appear
// several times in a deck, so identity is enough.
func removeCard(pile []*Card, c *Card) ([]*Card, bool) {
	for i, p := range pile {
		if p == c {
			return append(pile[:i], pile[i+1:]...), true
		}
	}
	return pile, false
}

func (e *Entity) drawRandom(src random.Source, n int) {
	if n > len(e.DrawPile) {
		n = len(e.DrawPile)
	}
	for i := 0; i < n; i++ {
		c, ok := random.SampleOne(src, e.DrawPile)
		if !ok {
			return
		}
		e.DrawPile, _ = removeCard(e.DrawPile, c)
		e.Hand = append(e.Hand, c)
	}
}

// Draw discards the current hand and draws n random cards from the draw
// pile. When the draw pile runs short the whole discard pile is shuffled
// back in and the remainder is drawn. The hand may hold fewer than n cards
// when the deck itself is smaller than n.
func (e *Entity) Draw(src random.Source, n int) {
	e.DiscardHand()
	e.drawRandom(src, n)
	if remainder := n - len(e.Hand); remainder > 0 {
		e.DrawPile = append(e.DrawPile, e.DiscardPile...)
		e.DiscardPile = nil
		e.drawRandom(src, remainder)
	}
}

// Discard moves one copy of c from the hand to the discard pile. It reports
// false when c is not in hand.
func (e *Entity) Discard(c *Card) bool {
	var ok bool
	if e.Hand, ok = removeCard(e.Hand, c); !ok {
		return false
	}
	e.DiscardPile = append(e.DiscardPile, c)
	return true
}

// DiscardHand moves the whole hand to the discard pile.
func (e *Entity) DiscardHand() {
	e.DiscardPile = append(e.DiscardPile, e.Hand...)
	e.Hand = nil
}

// Playable returns the cards in hand whose cost fits the remaining AP.
func (e *Entity) Playable() []*Card {
	var out []*Card
	for _, c := range e.Hand {
		if c.Cost <= e.AP {
			out = append(out, c)
		}
	}
	return out
}

// InHand reports whether c is currently held.
func (e *Entity) InHand(c *Card) bool {
	for _, h := range e.Hand {
		if h == c {
			return true
		}
	}
	return false
}
