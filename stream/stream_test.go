package stream

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceIterator(t *testing.T) {
	it := FromSlice([]int{1, 2, 3}, false)
	require.Equal(t, 1, it.FastNext(-1))
	v, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 3, it.FastNext(-1))
	require.Equal(t, -1, it.FastNext(-1))
	require.Equal(t, []int{3, 2, 1}, Collect(FromSlice([]int{1, 2, 3}, true)))
}

func TestEmptyAndLimit(t *testing.T) {
	require.Equal(t, 7, Empty[int]().FastNext(7))
	_, ok := Empty[string]().Next()
	require.False(t, ok)
	require.Equal(t, []int{1, 2}, Collect(Limit(FromSlice([]int{1, 2, 3}, false), 2)))
	require.Nil(t, Collect(Limit(FromSlice([]int{1}, false), 0)))
}

func TestSeq(t *testing.T) {
	var got []string
	for s := range Seq(FromSlice([]string{"a", "b", "c"}, false)) {
		got = append(got, s)
		if s == "b" {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, []int{4, 5}, slices.Collect(Seq(FromSlice([]int{4, 5}, false))))
}

func TestTraverseState(t *testing.T) {
	s := NewTraverseState(10)
	require.Equal(t, 10, s.Advance())
	require.Equal(t, 11, s.Index())
	s.Halt()
	require.True(t, s.Halted())
	s.Reset(0)
	require.False(t, s.Halted())
	require.Equal(t, 0, s.Index())
}

func TestStockReducers(t *testing.T) {
	values := func() FastIterator[int] { return FromSlice([]int{3, 1, 4, 1, 5}, false) }
	require.Equal(t, 5, Reduce(values(), Count[int]()))
	require.Equal(t, 14, Reduce(values(), Sum[int]()))
	require.Equal(t, 60, Reduce(values(), Product[int]()))
	require.Equal(t, Option[int]{Value: 5, Ok: true}, Reduce(values(), Max[int]()))
	require.Equal(t, Option[int]{Value: 1, Ok: true}, Reduce(values(), Min[int]()))
	require.False(t, Reduce(Empty[int](), Max[int]()).Ok)
	require.True(t, Reduce(values(), Contains(4)))
	require.False(t, Reduce(values(), Contains(9)))
	require.Equal(t, "3,1,4,1,5", Reduce(values(), Join[int](",")))
	require.Equal(t, []int{3, 1, 4, 1, 5}, Reduce(values(), ToSlice[int]()))
}

func TestReducerHalts(t *testing.T) {
	it := FromSlice([]int{1, 2, 3, 4}, false)
	seen := 0
	r := Reducer[int, int, int]{
		Init: func() int { return 0 },
		Next: func(n int, v int, _ int, halt func()) int {
			seen++
			if v == 2 {
				halt()
			}
			return n + v
		},
	}
	require.Equal(t, 3, Reduce(it, r))
	require.Equal(t, 2, seen)
	require.Equal(t, 3, it.FastNext(0))
}

func TestReducerWithoutResultPanics(t *testing.T) {
	r := Reducer[int, int, string]{
		Init: func() int { return 0 },
		Next: func(n int, _ int, _ int, _ func()) int { return n },
	}
	require.Panics(t, func() { Reduce(FromSlice([]int{1}, false), r) })
}
