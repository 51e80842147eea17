/*
Package plist offers immutable, persistent lists.

A List is an ordered sequence of values which is never modified after
construction. Every operation which "changes" a list returns a new list,
sharing all unchanged parts with the original. Holding on to an older version
of a list is therefore cheap, and lists may be passed between goroutines
without synchronization.

Lists are stored as trees of blocks (see package btree). Prepending and
appending run in amortized constant time; random access, updates, slicing,
splitting and concatenation take time logarithmic in the length of the list.

	l := plist.Of(1, 2, 3)
	m := l.Append(4).Prepend(0)   // [0 1 2 3 4], l is unchanged
	left, right := m.SplitAt(2)   // [0 1] and [2 3 4]

For batches of edits, a Builder collects changes in mutable working nodes and
produces a new List on Build. Builders copy nodes on their first change only.

	b := l.ToBuilder()
	b.Insert(1, 10)
	b.Remove(0)
	l2 := b.Build()

Positions may be negative, counting from the end of the list: index -1
denotes the last element. Positions out of range are not errors; accessors
return a fallback value and editing operations return the list unchanged.

Block sizes are configured with a btree.Context. Lists created without
context use btree.DefaultContext.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–26, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package plist

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// errorf and debugf trace to T; generic code cannot call T directly, as
// type parameters named T shadow it.
func errorf(format string, args ...interface{}) {
	T().Errorf(format, args...)
}

func debugf(format string, args ...interface{}) {
	T().Debugf(format, args...)
}

// ListError is an error type for the plist module
type ListError string

func (e ListError) Error() string {
	return string(e)
}

// ErrEmptyCollection is raised by AssumeNonEmpty for an empty list.
const ErrEmptyCollection = ListError("empty collection")

// ErrModifiedBuilderWhileLooping is raised if a builder is changed from
// within its own ForEach.
const ErrModifiedBuilderWhileLooping = ListError("builder modified while looping")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = ListError("illegal arguments")

// ErrInvalidState is flagged whenever an object is used in a state it does
// not support, e.g. when unmarshaling into a nil list.
const ErrInvalidState = ListError("invalid state")
