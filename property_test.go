package plist

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/npillmayer/plist/btree"
)

var defaultGopterParameters = gopter.DefaultTestParameters()

func propertyContext() *btree.Context {
	ctx, err := btree.NewContext(btree.Config{BlockSizeBits: 2})
	if err != nil {
		panic(err)
	}
	return ctx
}

func intSlices() gopter.Gen {
	return gen.SliceOf(gen.IntRange(-1000, 1000))
}

func TestPropertyIndexRoundTrip(t *testing.T) {
	ctx := propertyContext()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("every value is found at its index",
		prop.ForAll(func(xs []int) bool {
			l := OfContext(ctx, xs...)
			if l.Len() != len(xs) || l.Check() != nil {
				return false
			}
			for i, x := range xs {
				if v, ok := l.At(i); !ok || v != x {
					return false
				}
			}
			return slices.Equal(l.ToSlice(), xs)
		}, intSlices()))
	properties.TestingRun(t)
}

func TestPropertyTakeDrop(t *testing.T) {
	ctx := propertyContext()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("take and drop split a list",
		prop.ForAll(func(xs []int, k int) bool {
			l := OfContext(ctx, xs...)
			front, back := l.Take(k), l.Drop(k)
			if front.Check() != nil || back.Check() != nil {
				return false
			}
			return Equal(front.Concat(back), l)
		}, intSlices(), gen.IntRange(-120, 120)))
	properties.TestingRun(t)
}

func TestPropertyConcatAssociative(t *testing.T) {
	ctx := propertyContext()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("concat is associative",
		prop.ForAll(func(xs, ys, zs []int) bool {
			a, b, c := OfContext(ctx, xs...), OfContext(ctx, ys...), OfContext(ctx, zs...)
			left := a.Concat(b).Concat(c)
			right := a.Concat(b.Concat(c))
			if left.Check() != nil || right.Check() != nil {
				return false
			}
			want := slices.Concat(xs, ys, zs)
			return slices.Equal(left.ToSlice(), want) && Equal(left, right)
		}, intSlices(), intSlices(), intSlices()))
	properties.TestingRun(t)
}

func TestPropertyPersistence(t *testing.T) {
	ctx := propertyContext()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("edits leave the receiver unchanged",
		prop.ForAll(func(xs []int, i int, v int) bool {
			l := OfContext(ctx, xs...)
			_ = l.Set(i, v)
			_ = l.Insert(i, v, v)
			_ = l.Remove(i, 3)
			_ = l.Append(v).Prepend(v)
			_ = l.Reversed()
			return slices.Equal(l.ToSlice(), xs) && l.Check() == nil
		}, intSlices(), gen.IntRange(-120, 120), gen.Int()))
	properties.TestingRun(t)
}

func TestPropertyOutOfRangeIsNoOp(t *testing.T) {
	ctx := propertyContext()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("updates out of range return the receiver",
		prop.ForAll(func(xs []int, beyond int) bool {
			l := OfContext(ctx, xs...)
			i := len(xs) + beyond
			_, ok := l.At(i)
			return !ok && l.Set(i, 0) == l && l.Set(-i-1, 0) == l
		}, intSlices(), gen.IntRange(0, 50)))
	properties.TestingRun(t)
}

func TestPropertyBuilderMatchesList(t *testing.T) {
	ctx := propertyContext()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("builder edits equal persistent edits",
		prop.ForAll(func(xs []int, positions []int) bool {
			l := OfContext(ctx, xs...)
			b := l.ToBuilder()
			for j, p := range positions {
				if j%3 == 2 {
					if _, ok := l.At(p); ok {
						b.Remove(p)
						l = l.Remove(p, 1)
					}
					continue
				}
				b.Insert(p, j)
				l = l.Insert(p, j)
			}
			built := b.Build()
			return built.Check() == nil && Equal(built, l)
		}, intSlices(), gen.SliceOf(gen.IntRange(-40, 40))))
	properties.TestingRun(t)
}

func TestPropertyReversal(t *testing.T) {
	ctx := propertyContext()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("reversal reverses",
		prop.ForAll(func(xs []int) bool {
			l := OfContext(ctx, xs...)
			r := l.Reversed()
			want := slices.Clone(xs)
			slices.Reverse(want)
			return r.Check() == nil && slices.Equal(r.ToSlice(), want) &&
				slices.Equal(l.ToSliceReversed(), want)
		}, intSlices()))
	properties.TestingRun(t)
}
