/*
Package html extracts the text of HTML fragments into lists of text runs.

A text run is the content of one HTML text node. Runs are kept separate, so
clients may re-assemble them with their own separators, or inspect the text
structure of a document.
*/
package html

import (
	"io"
	"strings"

	"github.com/npillmayer/plist"
	"github.com/npillmayer/plist/stream"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer writes to trace with key 'plist'
func tracer() tracing.Trace {
	return tracing.Select("plist")
}

// InnerText creates a list of the text runs of an HTML element and all its
// descendents. Joined, the runs resemble the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that html.InnerText cannot respect CSS styling
// suppressing the visibility of the node's descendents). Content of script
// and style elements is skipped.
func InnerText(n *html.Node) (plist.List[string], error) {
	if n == nil {
		return plist.List[string]{}, plist.ErrIllegalArguments
	}
	b := plist.NewBuilder[string](nil)
	collectText(n, b, false)
	return b.Build(), nil
}

// TextRuns parses an HTML fragment and returns its non-blank text runs in
// document order. It does no interpretation of layout and styling, but
// extracts the pure text.
func TextRuns(input io.Reader) (plist.List[string], error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return plist.List[string]{}, err
	}
	b := plist.NewBuilder[string](nil)
	for _, n := range nodes {
		collectText(n, b, true)
	}
	tracer().Debugf("html: collected %d text runs", b.Len())
	return b.Build(), nil
}

// Join concatenates text runs, separated by sep.
func Join(runs plist.List[string], sep string) string {
	return plist.Reduce(runs, stream.Join[string](sep))
}

func collectText(n *html.Node, b *plist.Builder[string], skipBlank bool) {
	switch n.Type {
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	case html.TextNode:
		if !skipBlank || strings.TrimSpace(n.Data) != "" {
			b.Append(n.Data)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b, skipBlank)
	}
}
