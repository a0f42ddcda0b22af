package controlflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the control-flow tree.
//
// The output is a complete digraph suitable for debugging what the
// parser actually produced, independent of structogram layout. Compound
// nodes (if, loop, switch, try) are drawn as ellipses labeled with
// their condition; statements as rounded boxes with their text.
//
// Render the result with the dot tool or programmatically with
// [RenderDOTSVG].
func ToDOT(n *Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph ControlFlow {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	if n != nil {
		writeDOTNode(&buf, n, 0)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, n *Node, id int) int {
	nodeID := fmt.Sprintf("n%d", id)
	next := id + 1

	link := func(children []*Node, edgeLabel string) {
		for _, c := range children {
			if edgeLabel != "" {
				fmt.Fprintf(buf, "  %s -> n%d [label=%q, fontsize=10];\n", nodeID, next, edgeLabel)
			} else {
				fmt.Fprintf(buf, "  %s -> n%d;\n", nodeID, next)
			}
			next = writeDOTNode(buf, c, next)
		}
	}

	switch n.Kind {
	case KindStatement:
		fmt.Fprintf(buf, "  %s [label=%q, shape=box, style=\"filled,rounded\"];\n", nodeID, clipLabel(n.Text))

	case KindSequence:
		fmt.Fprintf(buf, "  %s [label=\"seq\", shape=box];\n", nodeID)
		link(n.Children, "")

	case KindIf:
		fmt.Fprintf(buf, "  %s [label=%q, shape=diamond];\n", nodeID, clipLabel(n.Condition))
		link(n.ThenBranch, "T")
		link(n.ElseBranch, "F")

	case KindLoop:
		fmt.Fprintf(buf, "  %s [label=%q, shape=ellipse];\n", nodeID, clipLabel(string(n.LoopKind)+" "+n.Condition))
		link(n.Children, "")

	case KindSwitch:
		fmt.Fprintf(buf, "  %s [label=%q, shape=hexagon];\n", nodeID, clipLabel("switch "+n.Condition))
		for _, c := range n.SwitchCases {
			label := c.Label
			if label == "" {
				label = "default"
			}
			link(c.Body, label)
		}

	case KindTry:
		fmt.Fprintf(buf, "  %s [label=\"try\", shape=ellipse];\n", nodeID)
		link(n.Children, "")
		for _, c := range n.Catches {
			link(c.Body, "catch "+c.Exception)
		}
		link(n.FinallyBranch, "finally")

	default:
		fmt.Fprintf(buf, "  %s [label=%q, shape=box, style=\"filled,dashed\"];\n", nodeID, clipLabel(string(n.Kind)))
	}

	return next
}

// clipLabel keeps DOT labels readable for long statements.
func clipLabel(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 40 {
		return s[:38] + ".."
	}
	return s
}

// RenderDOTSVG renders the control-flow tree as an SVG image via
// Graphviz. It requires the Graphviz library (github.com/goccy/go-graphviz)
// and returns a complete SVG document.
func RenderDOTSVG(n *Node) ([]byte, error) {
	dot := ToDOT(n)

	gv, err := graphviz.New(context.Background())
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
	if err := gv.Render(context.Background(), g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
