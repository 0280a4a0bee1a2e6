// Package depviz draws dependency parses as SVG arc diagrams: words along a
// baseline, tags under the words and one labelled arc per dependency, with
// the arrow pointing at the dependent.
package depviz

import (
	"fmt"
	"html"
	"strings"
)

// Node is one word of a sentence. Head is the 1-based index of the governing
// word within the same sentence, 0 for the root.
type Node struct {
	Text string
	Tag  string
	Head int
	Rel  string
}

// Options control the diagram geometry, in pixels.
type Options struct {
	WordSpacing int
	LevelHeight int
	OffsetX     int
	MaxLevel    int
}

func DefaultOptions() Options {
	return Options{WordSpacing: 130, LevelHeight: 45, OffsetX: 50, MaxLevel: 6}
}

type arc struct {
	start, end int
	level      int
	label      string
	toLeft     bool
}

func buildArcs(nodes []Node) []arc {
	var arcs []arc
	for i, n := range nodes {
		if n.Head <= 0 || n.Head > len(nodes) || n.Head-1 == i {
			continue
		}
		head := n.Head - 1
		a := arc{label: n.Rel}
		if head < i {
			a.start, a.end = head, i
		} else {
			a.start, a.end, a.toLeft = i, head, true
		}
		a.level = a.end - a.start
		arcs = append(arcs, a)
	}
	return arcs
}

// Render returns one <svg> element per sentence.
func Render(sentences [][]Node, opts Options) string {
	var b strings.Builder
	for i, nodes := range sentences {
		renderSentence(&b, i, nodes, opts)
	}
	return b.String()
}

func renderSentence(b *strings.Builder, idx int, nodes []Node, opts Options) {
	if len(nodes) == 0 {
		return
	}
	arcs := buildArcs(nodes)
	highest := 1
	for _, a := range arcs {
		highest = max(highest, min(a.level, opts.MaxLevel))
	}

	baseline := highest*opts.LevelHeight + 40
	width := opts.OffsetX*2 + (len(nodes)-1)*opts.WordSpacing
	height := baseline + 50
	x := func(i int) int { return opts.OffsetX + i*opts.WordSpacing }

	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" class="depviz" id="depviz-%d" width="%d" height="%d" viewBox="0 0 %d %d" font-family="Arial, sans-serif">`,
		idx, width, height, width, height)

	for i, n := range nodes {
		fmt.Fprintf(b, `<text class="depviz-word" text-anchor="middle" y="%d"><tspan x="%d" fill="currentColor">%s</tspan><tspan x="%d" dy="2em" fill="#8a6d9c" font-size="0.8em">%s</tspan></text>`,
			baseline+15, x(i), html.EscapeString(n.Text), x(i), html.EscapeString(n.Tag))
	}

	for j, a := range arcs {
		level := min(a.level, opts.MaxLevel)
		x1, x2 := x(a.start)+10, x(a.end)-10
		top := baseline - level*opts.LevelHeight
		fmt.Fprintf(b, `<g class="depviz-arc"><path id="arc-%d-%d" d="M%d,%d C%d,%d %d,%d %d,%d" fill="none" stroke="currentColor" stroke-width="2"/>`,
			idx, j, x1, baseline, x1, top, x2, top, x2, baseline)
		fmt.Fprintf(b, `<text font-size="0.75em" dy="-0.4em"><textPath href="#arc-%d-%d" startOffset="50%%" text-anchor="middle" fill="currentColor">%s</textPath></text>`,
			idx, j, html.EscapeString(a.label))

		tip := x2
		if a.toLeft {
			tip = x1
		}
		fmt.Fprintf(b, `<path d="M%d,%d L%d,%d %d,%d" fill="currentColor"/></g>`,
			tip, baseline+2, tip-5, baseline-8, tip+5, baseline-8)
	}
	b.WriteString(`</svg>`)
}
