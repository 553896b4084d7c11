package song

import (
	"testing"

	"github.com/geocine/koliadnyk/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func fragment(t *testing.T, s string) []*html.Node {
	t.Helper()
	nodes, err := dom.ParseFragment(s, nil)
	require.NoError(t, err)
	return nodes
}

func renderNodes(t *testing.T, nodes []*html.Node) string {
	t.Helper()
	out, err := dom.Render(nodes...)
	require.NoError(t, err)
	return out
}

func TestShiftHeadings(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		shift int
		want  string
	}{
		{"zero", "<h1>a</h1>", 0, "<h1>a</h1>"},
		{"negative", "<h2>a</h2>", -1, "<h2>a</h2>"},
		{"collection", "<h1>a</h1><p>b</p><h2>c</h2>", 2, "<h3>a</h3><p>b</p><h4>c</h4>"},
		{"clamped", "<h5>a</h5><h6>b</h6>", 3, "<h6>a</h6><h6>b</h6>"},
		{"nested raw html", "<div class=\"x\"><h1 id=\"t\">a</h1></div>", 1, "<div class=\"x\"><h2 id=\"t\">a</h2></div>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := fragment(t, tt.in)
			ShiftHeadings(nodes, tt.shift)
			assert.Equal(t, tt.want, renderNodes(t, nodes))
		})
	}
}

func TestShiftHeadingsComposes(t *testing.T) {
	const in = "<h1>1</h1><h2>2</h2><h3>3</h3><h4>4</h4><h5>5</h5><h6>6</h6>"
	for a := 0; a <= 6; a++ {
		for b := 0; b <= 6; b++ {
			twice := fragment(t, in)
			ShiftHeadings(twice, a)
			ShiftHeadings(twice, b)

			once := fragment(t, in)
			ShiftHeadings(once, a+b)

			assert.Equal(t, renderNodes(t, once), renderNodes(t, twice), "shift %d then %d", a, b)
		}
	}
}

func TestHeadingLevel(t *testing.T) {
	nodes := fragment(t, "<h4>a</h4><p>b</p>")
	assert.Equal(t, 4, HeadingLevel(nodes[0]))
	assert.Zero(t, HeadingLevel(nodes[1]))
	assert.Zero(t, HeadingLevel(nodes[0].FirstChild))
}
