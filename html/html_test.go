package html

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestTextRuns(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	input := `<p>Hello <b>World</b>!</p>
	<script>var x = 1;</script>
	<p>Second <i>para</i></p>`
	runs, err := TextRuns(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []string{"Hello ", "World", "!", "Second ", "para"}, runs.ToSlice())
	require.Equal(t, "Hello |World|!|Second |para", Join(runs, "|"))
}

func TestInnerText(t *testing.T) {
	nodes, err := html.ParseFragment(strings.NewReader(`<div>a<span>b</span> <em>c</em></div>`), nil)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	var div *html.Node
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.Data == "html" {
			div = findElement(n, "div")
		}
	}
	require.NotNil(t, div)
	runs, err := InnerText(div)
	require.NoError(t, err)
	require.Equal(t, "ab c", Join(runs, ""))
}

func TestInnerTextNil(t *testing.T) {
	_, err := InnerText(nil)
	require.Error(t, err)
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}
