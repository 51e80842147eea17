package plist

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/npillmayer/plist/btree"
	"github.com/npillmayer/plist/stream"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func smallContext(t *testing.T) *btree.Context {
	ctx, err := btree.NewContext(btree.Config{BlockSizeBits: 2})
	require.NoError(t, err)
	return ctx
}

func upTo(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func TestListBasics(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	l := Of(1, 2, 3)
	require.Equal(t, 3, l.Len())
	require.False(t, l.IsEmpty())
	require.Equal(t, 1, l.First(-1))
	require.Equal(t, 3, l.Last(-1))
	require.Equal(t, 2, l.Get(-2, -1))
	require.Equal(t, -1, l.Get(3, -1))
	_, ok := l.At(-4)
	require.False(t, ok)
	require.Equal(t, "List(1, 2, 3)", l.String())
	require.Equal(t, "List()", Empty[int](nil).String())
}

func TestDropAllIsEmpty(t *testing.T) {
	l := Of(1, 2, 3, 4, 5)
	require.True(t, List[int]{} == Empty[int](nil))
	require.True(t, Empty[int](btree.DefaultContext()) == Empty[int](nil))
	require.True(t, l.Drop(5) == List[int]{})
	require.True(t, Filter(List[int]{}, func(int, int) bool { return false }) == List[int]{})
	require.True(t, l.Drop(5) == Empty[int](nil))
	require.True(t, l.Take(0) == Empty[int](nil))
	require.True(t, l.Drop(0) == l)
	require.True(t, l.Take(5) == l)
}

func TestUnchangedEditsKeepIdentity(t *testing.T) {
	l := OfContext(smallContext(t), upTo(40)...)
	require.True(t, l.UpdateAt(40, func(x int) int { return x + 1 }) == l)
	require.True(t, l.UpdateAt(-41, func(x int) int { return x + 1 }) == l)
	require.True(t, l.Splice(3, 0) == l)
	require.True(t, l.Rotate(40) == l)
	require.True(t, l.Concat() == l)
	require.True(t, l.Concat(Empty[int](l.Context())) == l)
	require.True(t, Filter(l, func(int, int) bool { return true }) == l)
}

func TestNegativeAmounts(t *testing.T) {
	l := Of(1, 2, 3, 4, 5)
	require.Equal(t, []int{1, 2, 3}, l.Take(-2).ToSlice())
	require.Equal(t, []int{4, 5}, l.Drop(-2).ToSlice())
	require.True(t, l.Take(-7).IsEmpty())
	require.True(t, l.Drop(-7) == l)
	require.Equal(t, []int{2, 3, 4}, l.Slice(1, -1).ToSlice())
	require.True(t, l.Slice(4, 2).IsEmpty())
}

func TestSpliceInsertRemove(t *testing.T) {
	ctx := smallContext(t)
	l := OfContext(ctx, upTo(10)...)
	require.Equal(t, []int{0, 1, 100, 101, 2, 3, 4, 5, 6, 7, 8, 9}, l.Insert(2, 100, 101).ToSlice())
	require.Equal(t, []int{0, 1, 5, 6, 7, 8, 9}, l.Remove(2, 3).ToSlice())
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 9}, l.Remove(-2, 1).ToSlice())
	require.Equal(t, []int{-1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, l.Insert(0, -1).ToSlice())
	require.Equal(t, append(upTo(10), 10), l.Insert(10, 10).ToSlice())
	require.Equal(t, append(upTo(10), 10), l.Insert(99, 10).ToSlice())
	spliced := l.Splice(1, 8, 42)
	require.Equal(t, []int{0, 42, 9}, spliced.ToSlice())
	require.NoError(t, spliced.Check())
	require.Equal(t, upTo(10), l.ToSlice())
}

func TestSpliceRemovesRest(t *testing.T) {
	l := OfContext(smallContext(t), upTo(7)...)
	rest := l.Remove(3, math.MaxInt)
	require.Equal(t, []int{0, 1, 2}, rest.ToSlice())
	require.NoError(t, rest.Check())
	require.Equal(t, []int{0, 1, 2, 9}, l.Splice(3, math.MaxInt, 9).ToSlice())
	require.Equal(t, []int{9}, l.Splice(-7, math.MaxInt, 9).ToSlice())
	require.True(t, l.Remove(7, math.MaxInt) == l)
	require.True(t, l.Remove(2, math.MinInt) == l)
}

func TestRotateAndSplit(t *testing.T) {
	l := Of(1, 2, 3, 4, 5)
	require.Equal(t, []int{4, 5, 1, 2, 3}, l.Rotate(2).ToSlice())
	require.Equal(t, []int{3, 4, 5, 1, 2}, l.Rotate(-2).ToSlice())
	require.Equal(t, []int{5, 1, 2, 3, 4}, l.Rotate(11).ToSlice())
	front, back := l.SplitAt(-2)
	require.Equal(t, []int{1, 2, 3}, front.ToSlice())
	require.Equal(t, []int{4, 5}, back.ToSlice())
}

func TestRepeatAndFlatten(t *testing.T) {
	ctx := smallContext(t)
	l := OfContext(ctx, 1, 2, 3)
	r := Repeat(l, 5)
	require.Equal(t, 15, r.Len())
	require.NoError(t, r.Check())
	require.Equal(t, 3, r.Get(14, 0))
	require.True(t, Repeat(l, 0).IsEmpty())
	flat := Flatten(Of(Of(1, 2), Empty[int](nil), Of(3)))
	require.Equal(t, []int{1, 2, 3}, flat.ToSlice())
}

func TestReversedTwiceIsOriginal(t *testing.T) {
	l := OfContext(smallContext(t), upTo(100)...)
	r := l.Reversed()
	require.Equal(t, l.ToSliceReversed(), r.ToSlice())
	require.NoError(t, r.Check())
	require.True(t, r.Reversed() == l)
}

func TestConcatAcrossContexts(t *testing.T) {
	small := OfContext(smallContext(t), upTo(30)...)
	big := Of(30, 31, 32)
	joined := big.Concat(small)
	require.True(t, joined.Context() == big.Context())
	require.Equal(t, 33, joined.Len())
	require.NoError(t, joined.Check())
	front := Empty[int](nil).Concat(small)
	require.True(t, front.Context() == btree.DefaultContext())
	require.Equal(t, small.ToSlice(), front.ToSlice())
}

func TestIterators(t *testing.T) {
	l := OfContext(smallContext(t), upTo(50)...)
	var idx []int
	for i, v := range l.All() {
		require.Equal(t, i, v)
		idx = append(idx, i)
	}
	require.Equal(t, upTo(50), idx)
	var back []int
	for i, v := range l.Backward() {
		require.Equal(t, i, v)
		back = append(back, v)
		if len(back) == 5 {
			break
		}
	}
	require.Equal(t, []int{49, 48, 47, 46, 45}, back)
	require.Equal(t, upTo(50), slices.Collect(l.Values()))
	require.Equal(t, []int{10, 11, 12}, stream.Collect(l.IteratorRange(10, 13, false)))
	require.Equal(t, []int{12, 11, 10}, stream.Collect(l.IteratorRange(10, 13, true)))
	require.Equal(t, upTo(50), FromSeq(l.Values()).ToSlice())
}

func TestForEachHalt(t *testing.T) {
	l := OfContext(smallContext(t), upTo(50)...)
	sum := 0
	l.ForEach(func(v int, i int, halt func()) {
		sum += v
		if i == 9 {
			halt()
		}
	}, nil)
	require.Equal(t, 45, sum)
}

func TestMapFilterReduce(t *testing.T) {
	l := OfContext(smallContext(t), upTo(20)...)
	squares := Map(l, func(v, _ int) int { return v * v })
	require.Equal(t, 361, squares.Last(0))
	require.NoError(t, squares.Check())
	rev := MapReversed(l, func(v, i int) int { return v*100 + i })
	require.Equal(t, 1900, rev.First(0))
	require.Equal(t, 19, rev.Last(0))
	even := Filter(l, func(v, _ int) bool { return v%2 == 0 })
	require.Equal(t, 10, even.Len())
	require.Equal(t, 190, Reduce(l, stream.Sum[int]()))
	require.Equal(t, 20, Reduce(l, stream.Count[int]()))
	require.Equal(t, stream.Option[int]{Value: 19, Ok: true}, Reduce(l, stream.Max[int]()))
	require.False(t, Reduce(Empty[int](nil), stream.Min[int]()).Ok)
	require.True(t, Reduce(l, stream.Contains(7)))
	require.Equal(t, "0-1-2", Reduce(l.Take(3), stream.Join[int]("-")))
	require.Equal(t, 190, Fold(l, 0, func(acc, v, _ int) int { return acc + v }))
	require.True(t, Equal(l, FromSlice(upTo(20))))
	require.False(t, Equal(l, l.Set(3, 0)))
}

func TestAssumeNonEmpty(t *testing.T) {
	require.PanicsWithValue(t, ErrEmptyCollection, func() {
		Empty[string](nil).AssumeNonEmpty()
	})
	require.NotPanics(t, func() { Of("a").AssumeNonEmpty() })
}

func TestJSON(t *testing.T) {
	l := OfContext(smallContext(t), upTo(12)...)
	data, err := json.Marshal(l)
	require.NoError(t, err)
	require.Equal(t, "[0,1,2,3,4,5,6,7,8,9,10,11]", string(data))
	decoded := Empty[int](smallContext(t))
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, Equal(l, decoded))
	require.NoError(t, decoded.Check())
	var zero List[int]
	require.NoError(t, json.Unmarshal([]byte(`[1,2]`), &zero))
	require.True(t, zero.Context() == btree.DefaultContext())
	require.Error(t, json.Unmarshal([]byte(`{"a":1}`), &zero))
	var nilList *List[int]
	require.ErrorIs(t, nilList.UnmarshalJSON(data), ErrInvalidState)
}

func TestStructureOutput(t *testing.T) {
	l := OfContext(smallContext(t), upTo(30)...)
	require.Contains(t, l.Structure(), "Tree")
	require.Equal(t, "<Empty>\n", Empty[int](nil).Structure())
	var dot bytes.Buffer
	List2Dot(l, &dot)
	out := dot.String()
	require.True(t, strings.HasPrefix(out, "strict digraph {"))
	require.Contains(t, out, "->")
	var plain bytes.Buffer
	PrintStructure(l, &plain)
	require.Contains(t, plain.String(), "len:30>")
}
