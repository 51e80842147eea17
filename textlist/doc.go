/*
Package textlist holds text as persistent lists of segments and lines.

Text is split at line break opportunities (Unicode UAX #14), and each
segment becomes an element of a List[string]. Wrapping a segment list yields
a list of lines, filled first-fit. Widths are measured in en, respecting East
Asian width (UAX #11).

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textlist

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'plist'
func tracer() tracing.Trace {
	return tracing.Select("plist")
}
