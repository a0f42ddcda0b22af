package layout

import "github.com/strukto/strukto/pkg/controlflow"

// buildLoop computes the box for a loop node.
//
// Pre-test loops (while/for/foreach) render as one header band with the
// body inset to the right of a left band; the loop bar forms an L.
// Post-test loops (do-while) render as header band, full-width body and
// footer band, with no inset.
func (b *Builder) buildLoop(n *controlflow.Node) *Node {
	condition := normalizeCondition(n.Condition, defaultCondition)
	body := b.buildSequence(n.Children, emptyBodyLabel)

	if n.IsPostTest() {
		header := "do"
		footer := "while (" + condition + ")"
		width := max(b.boxWidth(header), b.boxWidth(footer), body.Width)
		return &Node{
			Kind:   KindLoop,
			Width:  width,
			Height: 2*HeaderHeight + body.Height,
			Header: header,
			Footer: footer,
			Body:   body,
		}
	}

	kind := n.LoopKind
	if kind == "" {
		kind = controlflow.LoopWhile
	}
	header := string(kind) + " (" + condition + ")"
	width := max(b.boxWidth(header), body.Width+BodyInset)
	height := max(2*RowHeight, RowHeight+body.Height)
	return &Node{
		Kind:   KindLoop,
		Width:  width,
		Height: height,
		Header: header,
		Inset:  BodyInset,
		Body:   body,
	}
}

// normalizeCondition cleans a condition or selector expression and
// substitutes the fallback label when nothing remains.
func normalizeCondition(raw, fallback string) string {
	if text, ok := NormalizeStatement(raw); ok {
		return text
	}
	return fallback
}
