package btree

import (
	"errors"
	"math/rand"
	"runtime"
	"slices"
	"testing"
	"weak"

	"github.com/npillmayer/plist/stream"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func smallContext(t testing.TB) *Context {
	t.Helper()
	ctx, err := NewContext(Config{BlockSizeBits: 2})
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	return ctx
}

func intsUpTo(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func elements[T any](n Node[T]) []T {
	if n = normalizeNode(n); n == nil {
		return []T{}
	}
	out := stream.Collect(n.Iterator(false))
	if out == nil {
		out = []T{}
	}
	return out
}

func mustCheck[T any](t *testing.T, n Node[T]) {
	t.Helper()
	if n = normalizeNode(n); n == nil {
		return
	}
	if err := n.Check(); err != nil {
		t.Fatalf("invariant check failed: %v\n%s", err, n.Structure())
	}
}

func assertElements(t *testing.T, n Node[int], want []int) {
	t.Helper()
	mustCheck(t, n)
	got := elements(n)
	if !slices.Equal(got, want) {
		t.Fatalf("elements mismatch:\n got=%v\nwant=%v", got, want)
	}
	length := 0
	if n = normalizeNode(n); n != nil {
		length = n.Len()
	}
	if length != len(want) {
		t.Fatalf("length mismatch: got=%d want=%d", length, len(want))
	}
}

func TestNewContextRejectsInvalidConfig(t *testing.T) {
	for _, bits := range []int{1, 17, -3} {
		_, err := NewContext(Config{BlockSizeBits: bits})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for bits=%d, got %v", bits, err)
		}
	}
}

func TestNewContextDefaults(t *testing.T) {
	ctx, err := NewContext(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.BlockSizeBits() != DefaultBlockSizeBits || ctx.MaxBlockSize() != 32 || ctx.MinBlockSize() != 16 {
		t.Fatalf("unexpected defaults: %v max=%d min=%d", ctx, ctx.MaxBlockSize(), ctx.MinBlockSize())
	}
	if DefaultContext() != DefaultContext() {
		t.Fatalf("default context should be a singleton")
	}
}

func TestBlockPromotesToTree(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	ctx := smallContext(t)
	n := FromSlice(ctx, intsUpTo(4))
	if _, ok := n.(*block[int]); !ok {
		t.Fatalf("expected 4 elements to be stored in a block, got %T", n)
	}
	n = n.Append(5)
	if _, ok := n.(*tree[int]); !ok {
		t.Fatalf("expected 5 elements to be stored in a tree, got %T", n)
	}
	assertElements(t, n, intsUpTo(5))
}

func TestDropAllYieldsEmpty(t *testing.T) {
	ctx := smallContext(t)
	n := FromSlice(ctx, intsUpTo(5))
	if d := n.Drop(5); d != nil {
		t.Fatalf("expected nil node after dropping everything, got %v", d.Structure())
	}
	if d := n.Take(0); d != nil {
		t.Fatalf("expected nil node for Take(0)")
	}
	if n.Take(5) != n || n.Drop(0) != n {
		t.Fatalf("expected identity for full Take and empty Drop")
	}
}

func TestConcatSmallBlocks(t *testing.T) {
	ctx := smallContext(t)
	a := FromSlice(ctx, []int{1, 2, 3})
	b := FromSlice(ctx, []int{4, 5})
	assertElements(t, Concat(a, b), intsUpTo(5))
	assertElements(t, Concat(a, nil), []int{1, 2, 3})
	assertElements(t, Concat(nil, b), []int{4, 5})
}

func TestConcatAcrossContexts(t *testing.T) {
	ctx := smallContext(t)
	a := FromSlice(ctx, []int{1, 2, 3})
	b := FromSlice(DefaultContext(), []int{4, 5, 6, 7, 8})
	c := Concat(a, b)
	if c.Context() != ctx {
		t.Fatalf("expected result in context of first operand")
	}
	assertElements(t, c, intsUpTo(8))
}

func TestUpdateAtOutOfRangeIsIdentity(t *testing.T) {
	ctx := smallContext(t)
	n := FromSlice(ctx, intsUpTo(20))
	inc := func(v int) int { return v + 100 }
	if n.UpdateAt(20, inc) != n || n.UpdateAt(-1, inc) != n {
		t.Fatalf("out of range update should return the receiver")
	}
	m := n.UpdateAt(7, inc)
	want := intsUpTo(20)
	want[7] += 100
	assertElements(t, m, want)
	assertElements(t, n, intsUpTo(20))
}

func TestDoubleReversalRestoresNodes(t *testing.T) {
	ctx := smallContext(t)
	n := FromSlice(ctx, intsUpTo(50))
	r := n.Reversed()
	want := intsUpTo(50)
	slices.Reverse(want)
	assertElements(t, r, want)
	if rr := r.Reversed(); rr != n {
		t.Fatalf("expected double reversal to return the cached original node")
	}
}

// reverseAndForget reverses a fresh tree and keeps only a weak pointer to
// the original.
func reverseAndForget(ctx *Context, n int) (Node[int], weak.Pointer[tree[int]]) {
	orig := FromSlice(ctx, intsUpTo(n)).(*tree[int])
	return orig.Reversed(), weak.Make(orig)
}

func TestReversalCacheDoesNotRetainNodes(t *testing.T) {
	ctx := smallContext(t)
	r, wp := reverseAndForget(ctx, 500)
	runtime.GC()
	runtime.GC()
	if wp.Value() != nil {
		t.Fatalf("expected original tree to be collected after reversal")
	}
	rr := r.Reversed()
	assertElements(t, rr, intsUpTo(500))
	if err := rr.Check(); err != nil {
		t.Fatalf("re-reversed tree invalid: %v", err)
	}
	runtime.KeepAlive(r)
}

func TestReversalWithoutCache(t *testing.T) {
	ctx, err := NewContext(Config{BlockSizeBits: 2, ReversalCacheSize: -1})
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	n := FromSlice(ctx, intsUpTo(30))
	assertElements(t, n.Reversed().Reversed(), intsUpTo(30))
}

func TestIteratorBothDirections(t *testing.T) {
	ctx := smallContext(t)
	n := FromSlice(ctx, intsUpTo(100))
	it := n.Iterator(true)
	for want := 100; want > 0; want-- {
		if got := it.FastNext(-1); got != want {
			t.Fatalf("reversed iterator: got=%d want=%d", got, want)
		}
	}
	if it.FastNext(-1) != -1 {
		t.Fatalf("expected exhausted iterator to return fallback")
	}
}

func TestForEachHalts(t *testing.T) {
	ctx := smallContext(t)
	n := FromSlice(ctx, intsUpTo(100))
	var seen []int
	state := &stream.TraverseState{}
	n.ForEach(func(v int, index int, halt func()) {
		if index != v-1 {
			t.Fatalf("index %d does not match value %d", index, v)
		}
		seen = append(seen, v)
		if v == 37 {
			halt()
		}
	}, state)
	if len(seen) != 37 || !state.Halted() {
		t.Fatalf("expected traversal to stop after 37 elements, saw %d", len(seen))
	}
}

func TestMapKeepsOrderAndIndex(t *testing.T) {
	ctx := smallContext(t)
	n := FromSlice(ctx, intsUpTo(40))
	m := Map(n, func(v int, i int) int { return v*1000 + i }, false)
	mr := Map(n, func(v int, i int) int { return v*1000 + i }, true)
	mustCheck(t, m)
	mustCheck(t, mr)
	for i, v := range elements(m) {
		if v != (i+1)*1000+i {
			t.Fatalf("map at %d: got %d", i, v)
		}
	}
	for i, v := range elements(mr) {
		if v != (40-i)*1000+i {
			t.Fatalf("reversed map at %d: got %d", i, v)
		}
	}
}

func TestWalkVisitsAllElements(t *testing.T) {
	ctx := smallContext(t)
	n := FromSlice(ctx, intsUpTo(60))
	total, roots := 0, 0
	Walk(n, func(info NodeInfo, values []int) {
		if info.Role == RoleRoot {
			roots++
		}
		total += len(values)
	})
	if total != 60 || roots != 1 {
		t.Fatalf("walk saw %d elements and %d roots", total, roots)
	}
}

// How to run:
//   - Deterministic randomized property test:
//     go test ./btree -run TestRandomizedImmutableOps -count=1
func TestRandomizedImmutableOps(t *testing.T) {
	for _, bits := range []int{2, 3} {
		ctx, err := NewContext(Config{BlockSizeBits: bits})
		if err != nil {
			t.Fatalf("NewContext failed: %v", err)
		}
		for seed := int64(1); seed <= 20; seed++ {
			runRandomImmutableSequence(t, ctx, seed, 300)
		}
	}
}

func runRandomImmutableSequence(t *testing.T, ctx *Context, seed int64, steps int) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	var node Node[int]
	var model []int
	next := 0
	fresh := func(k int) []int {
		out := make([]int, k)
		for i := range out {
			next++
			out[i] = next
		}
		return out
	}
	for i := 0; i < steps; i++ {
		before, snapshot := node, slices.Clone(model)
		switch r.Intn(7) {
		case 0:
			v := fresh(1)[0]
			if node == nil {
				node = Singleton(ctx, v)
			} else {
				node = node.Append(v)
			}
			model = append(model, v)
		case 1:
			v := fresh(1)[0]
			if node == nil {
				node = Singleton(ctx, v)
			} else {
				node = node.Prepend(v)
			}
			model = append([]int{v}, model...)
		case 2:
			other := fresh(r.Intn(40))
			if r.Intn(2) == 0 {
				node = Concat(node, FromSlice(ctx, other))
				model = append(model, other...)
			} else {
				node = Concat(FromSlice(ctx, other), node)
				model = append(other, model...)
			}
		case 3:
			if node == nil {
				continue
			}
			k := r.Intn(len(model) + 1)
			node = node.Take(k)
			model = model[:k]
		case 4:
			if node == nil {
				continue
			}
			k := r.Intn(len(model) + 1)
			node = node.Drop(k)
			model = model[k:]
		case 5:
			if node == nil {
				continue
			}
			k := r.Intn(len(model))
			node = node.UpdateAt(k, func(v int) int { return -v })
			model[k] = -model[k]
		case 6:
			if node == nil {
				continue
			}
			node = node.Reversed()
			slices.Reverse(model)
		}
		node = normalizeNode(node)
		if model == nil {
			model = []int{}
		}
		assertElements(t, node, model)
		assertElements(t, before, snapshot)
	}
}
