/*
Package stream provides the traversal contracts shared by plist collections:
fast iterators, traversal state for halting loops, and reducers which fold a
sequence of values into a result.

The types in this package do not depend on a particular collection. Lists in
package plist hand out FastIterators and accept Reducers, and client code may
implement both for their own sources.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package stream

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'plist'
func tracer() tracing.Trace {
	return tracing.Select("plist")
}
