package textlist

import (
	"strings"
	"sync"

	"github.com/npillmayer/plist"
	"github.com/npillmayer/plist/stream"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
	"golang.org/x/term"
)

// DefaultLineWidth is used if the width of a terminal cannot be determined.
const DefaultLineWidth = 65

var graphemeSetup sync.Once

func setup() {
	graphemeSetup.Do(grapheme.SetupGraphemeClasses)
}

// Segments splits text at line break opportunities. Concatenating the
// segments yields text again.
func Segments(text string) plist.List[string] {
	b := plist.NewBuilder[string](nil)
	if text == "" {
		return b.Build()
	}
	setup()
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(strings.NewReader(text))
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		if frag == "" {
			continue
		}
		b.Append(frag)
	}
	tracer().Debugf("textlist: %d segments", b.Len())
	return b.Build()
}

// Width returns the display width of s in en. If ctx is nil,
// uax11.LatinContext is used.
func Width(s string, ctx *uax11.Context) int {
	if s == "" {
		return 0
	}
	if ctx == nil {
		ctx = uax11.LatinContext
	}
	setup()
	return uax11.StringWidth(grapheme.StringFromString(s), ctx)
}

/*
Wrap fills segments into lines of at most lineWidth en, first-fit:

	1. |  SpaceLeft := LineWidth
	2. |  for each Word in Text
	3. |      if Width(Word) > SpaceLeft
	4. |           insert line break before Word in Text
	5. |           SpaceLeft := LineWidth - Width(Word)
	6. |      else
	7. |           SpaceLeft := SpaceLeft - Width(Word)

Trailing white space of a segment does not count when testing whether it
fits. A segment wider than lineWidth occupies a line of its own.
Concatenating the lines yields the concatenation of the segments.
*/
func Wrap(segments plist.List[string], lineWidth int, ctx *uax11.Context) plist.List[string] {
	lines := plist.NewBuilder[string](segments.Context())
	var line strings.Builder
	spaceleft := lineWidth
	segments.ForEach(func(seg string, _ int, _ func()) {
		visible := Width(strings.TrimRight(seg, " \t"), ctx)
		if visible > spaceleft && line.Len() > 0 {
			tracer().Debugf("textlist: break before %q", seg)
			lines.Append(line.String())
			line.Reset()
			spaceleft = lineWidth
		}
		line.WriteString(seg)
		spaceleft -= Width(seg, ctx)
	}, nil)
	if line.Len() > 0 {
		lines.Append(line.String())
	}
	return lines.Build()
}

// LineWidthFromTerminal derives a line width from the terminal at file
// descriptor fd. If fd is not a terminal, DefaultLineWidth is returned.
func LineWidthFromTerminal(fd int) int {
	if !term.IsTerminal(fd) {
		return DefaultLineWidth
	}
	w, _, err := term.GetSize(fd)
	switch {
	case err != nil:
		return DefaultLineWidth
	case w > 65:
		return w - 10
	case w > 30:
		return w - 5
	case w > 10:
		return w
	}
	return 10
}

// Join concatenates all segments or lines of l.
func Join(l plist.List[string]) string {
	return plist.Reduce(l, stream.Join[string](""))
}
