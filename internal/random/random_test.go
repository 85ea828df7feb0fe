package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleOne_Empty(t *testing.T) {
	_, ok := SampleOne[int](New(1), nil)
	assert.False(t, ok)
}

func TestSampleOne_UsesDraw(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	got, ok := SampleOne(NewSequence(0.5), items)
	require.True(t, ok)
	assert.Equal(t, "c", got)

	got, _ = SampleOne(NewSequence(0.999999), items)
	assert.Equal(t, "d", got)
}

func TestSampleN_DistinctAndBounded(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	src := New(42)
	for i := 0; i < 200; i++ {
		got := SampleN(src, items, 3)
		require.Len(t, got, 3)
		seen := map[int]bool{}
		for _, v := range got {
			assert.False(t, seen[v], "duplicate %d in %v", v, got)
			seen[v] = true
		}
	}
	assert.Len(t, SampleN(src, items, 10), 5)
	assert.Empty(t, SampleN(src, items, 0))
	assert.Empty(t, SampleN[int](src, nil, 2))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items, "input must not be reordered")
}

func TestSequence_Cycles(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.2, s.Float64())
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.0, NewSequence().Float64())
}

func TestNew_Deterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
