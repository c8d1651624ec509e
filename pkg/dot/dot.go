// Package dot renders the IEC frame hierarchy as Graphviz diagrams.
//
// ToDOT emits the frame tree in DOT format, with the non-tree
// visualization edge drawn dashed. The DOT string can be rendered to
// SVG or PNG with [RenderSVG] and [RenderPNG], which run Graphviz
// in-process.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/beamframe/beamframe/pkg/iec"
)

// Options configures hierarchy rendering.
type Options struct {
	// EdgeNames labels each edge with its transform name.
	EdgeNames bool
}

// ToDOT converts the frame catalog to Graphviz DOT format.
// Tree edges point from parent to child; declared non-tree edges are
// drawn dashed from their source frame.
func ToDOT(opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph iec {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=16, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, f := range iec.Frames() {
		attrs := []string{fmt.Sprintf("label=%q", f.String())}
		if f == iec.Root {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", f.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	tree := make(map[iec.Edge]bool)
	for _, parent := range iec.Frames() {
		for _, child := range iec.Children(parent) {
			tree[iec.Edge{From: child, To: parent}] = true
			fmt.Fprintf(&buf, "  %q -> %q%s;\n", parent.String(), child.String(),
				edgeAttrs(iec.Edge{From: child, To: parent}, false, opts))
		}
	}
	for _, e := range iec.Edges() {
		if tree[e] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.From.String(), e.To.String(),
			edgeAttrs(e, true, opts))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e iec.Edge, nonTree bool, opts Options) string {
	var attrs []string
	if opts.EdgeNames {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Name()))
	}
	if nonTree {
		attrs = append(attrs, "style=dashed", "color=grey40", "fontcolor=grey40", "constraint=false")
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
