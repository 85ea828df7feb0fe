// Package random provides the uniform source and sampling helpers used by
// damage rolls, AI selection and card draws. Every consumer takes a Source so
// tests and replays can inject a fixed sequence.
package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniform floats in [0,1).
type Source interface {
	Float64() float64
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Source seeded with seed. It is safe for concurrent use.
func New(seed int64) Source {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a Source seeded from the wall clock.
func NewTimeSeeded() Source {
	return New(time.Now().UnixNano())
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Uniform draws one value in [0,1).
func Uniform(src Source) float64 {
	return src.Float64()
}

// index maps a draw onto [0,n). Sources that misbehave and return 1.0 still
// land on the last element.
func index(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// SampleOne picks one element uniformly. ok is false when items is empty.
func SampleOne[T any](src Source, items []T) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[index(src, len(items))], true
}

// SampleN picks min(n, len(items)) distinct elements without replacement.
// The input slice is not modified; the order of the result is unspecified.
func SampleN[T any](src Source, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	pool := make([]T, len(items))
	copy(pool, items)
	if n > len(pool) {
		n = len(pool)
	}
	// partial Fisher-Yates over the copy
	for i := 0; i < n; i++ {
		j := i + index(src, len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Sequence replays a fixed list of values, cycling when exhausted. It is
// meant for tests and deterministic replays.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewSequence builds a Sequence. An empty sequence always yields 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
