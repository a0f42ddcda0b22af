package layout

import "github.com/strukto/strukto/pkg/controlflow"

// buildTry stacks, top to bottom: a fixed "try" header and the body,
// one fixed "catch (X)" header and body per catch clause, and a fixed
// "finally" header and body when a finally block exists. Section
// bodies are inset like loop bodies; the box width is the widest
// section label or body.
func (b *Builder) buildTry(n *controlflow.Node) *Node {
	body := b.buildSequence(n.Children, emptyBodyLabel)

	width := max(b.boxWidth("try"), body.Width+BodyInset)
	height := SectionHeaderHeight + body.Height

	catches := make([]CatchSection, 0, len(n.Catches))
	for _, c := range n.Catches {
		label := normalizeCondition(c.Exception, defaultCatch)
		catchBody := b.buildSequence(c.Body, emptyBodyLabel)
		width = max(width, b.boxWidth("catch ("+label+")"), catchBody.Width+BodyInset)
		height += SectionHeaderHeight + catchBody.Height
		catches = append(catches, CatchSection{Label: label, Body: catchBody})
	}

	var finally *Node
	if len(n.FinallyBranch) > 0 {
		finally = b.buildSequence(n.FinallyBranch, emptyBodyLabel)
		width = max(width, b.boxWidth("finally"), finally.Width+BodyInset)
		height += SectionHeaderHeight + finally.Height
	}

	return &Node{
		Kind:    KindTry,
		Width:   width,
		Height:  height,
		Body:    body,
		Catches: catches,
		Finally: finally,
	}
}
