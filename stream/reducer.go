package stream

import (
	"cmp"
	"fmt"
	"strings"
)

// Reducer folds a sequence of values into a result of type R, keeping
// intermediate state of type S.
//
// Init creates a fresh state for every reduction. Next receives the state,
// the next value, its index and a function to halt the reduction early.
// Result converts the final state into the result. A nil Result requires S
// and R to be the same type.
type Reducer[T, S, R any] struct {
	Init   func() S
	Next   func(state S, value T, index int, halt func()) S
	Result func(state S) R
}

// Reduce applies r to every value of it and returns the result.
func Reduce[T, S, R any](it FastIterator[T], r Reducer[T, S, R]) R {
	state := r.Init()
	ts := TraverseState{}
	for !ts.Halted() {
		v, ok := it.Next()
		if !ok {
			break
		}
		state = r.Next(state, v, ts.Advance(), ts.Halt)
	}
	return r.finish(state)
}

func (r Reducer[T, S, R]) finish(state S) R {
	if r.Result == nil {
		res, ok := any(state).(R)
		if !ok {
			tracer().Errorf("reducer without result function: state %T is not result type", state)
			panic(fmt.Sprintf("stream: reducer state %T cannot be used as result", state))
		}
		return res
	}
	return r.Result(state)
}

// Number is the set of types Sum and Product operate on.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Count counts the values of a sequence.
func Count[T any]() Reducer[T, int, int] {
	return Reducer[T, int, int]{
		Init: func() int { return 0 },
		Next: func(n int, _ T, _ int, _ func()) int { return n + 1 },
	}
}

// Sum adds up the values of a sequence.
func Sum[N Number]() Reducer[N, N, N] {
	return Reducer[N, N, N]{
		Init: func() N { return 0 },
		Next: func(sum N, v N, _ int, _ func()) N { return sum + v },
	}
}

// Product multiplies the values of a sequence. The product of an empty
// sequence is 1.
func Product[N Number]() Reducer[N, N, N] {
	return Reducer[N, N, N]{
		Init: func() N { return 1 },
		Next: func(p N, v N, _ int, halt func()) N {
			if v == 0 {
				halt()
			}
			return p * v
		},
	}
}

// Option holds a value which may be absent.
type Option[T any] struct {
	Value T
	Ok    bool
}

// Max finds the maximum of a sequence. The result is not Ok for an empty
// sequence.
func Max[T cmp.Ordered]() Reducer[T, Option[T], Option[T]] {
	return extremum[T](func(a, b T) bool { return a > b })
}

// Min finds the minimum of a sequence. The result is not Ok for an empty
// sequence.
func Min[T cmp.Ordered]() Reducer[T, Option[T], Option[T]] {
	return extremum[T](func(a, b T) bool { return a < b })
}

func extremum[T any](better func(a, b T) bool) Reducer[T, Option[T], Option[T]] {
	return Reducer[T, Option[T], Option[T]]{
		Init: func() Option[T] { return Option[T]{} },
		Next: func(o Option[T], v T, _ int, _ func()) Option[T] {
			if !o.Ok || better(v, o.Value) {
				return Option[T]{Value: v, Ok: true}
			}
			return o
		},
	}
}

// Contains checks whether a sequence contains v. It stops at the first match.
func Contains[T comparable](v T) Reducer[T, bool, bool] {
	return Reducer[T, bool, bool]{
		Init: func() bool { return false },
		Next: func(found bool, x T, _ int, halt func()) bool {
			if x == v {
				halt()
				return true
			}
			return found
		},
	}
}

// Join concatenates the string form of all values, separated by sep.
func Join[T any](sep string) Reducer[T, *strings.Builder, string] {
	return Reducer[T, *strings.Builder, string]{
		Init: func() *strings.Builder { return &strings.Builder{} },
		Next: func(sb *strings.Builder, v T, index int, _ func()) *strings.Builder {
			if index > 0 {
				sb.WriteString(sep)
			}
			fmt.Fprint(sb, v)
			return sb
		},
		Result: func(sb *strings.Builder) string { return sb.String() },
	}
}

// ToSlice collects the values of a sequence.
func ToSlice[T any]() Reducer[T, []T, []T] {
	return Reducer[T, []T, []T]{
		Init: func() []T { return nil },
		Next: func(s []T, v T, _ int, _ func()) []T { return append(s, v) },
	}
}
