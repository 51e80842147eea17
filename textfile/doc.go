/*
Package textfile loads UTF-8 text files as lists of lines.

Opening a file is done synchronously, reading it happens in the background.
While lines arrive, the loader publishes growing snapshots of the list to its
subscribers. Every snapshot is an ordinary immutable plist.List, sharing its
nodes with earlier and later snapshots.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'plist'
func tracer() tracing.Trace {
	return tracing.Select("plist")
}
