package layout

// Stretch returns a node filling exactly the given height. Extra
// vertical space flows into the node's last stretchable region: the
// final child of a sequence, the body band of a loop, the branch
// columns of a decision. Statements simply grow taller.
//
// Stretching is persistent: new nodes are created along the modified
// path while unchanged subtrees are shared by reference, so the input
// tree stays valid. A target at or below the current height returns
// the node itself.
func Stretch(n *Node, height int) *Node {
	if n == nil || height <= n.Height {
		return n
	}

	switch n.Kind {
	case KindStatement:
		out := *n
		out.Height = height
		return &out

	case KindSequence:
		out := *n
		out.Children = make([]*Node, len(n.Children))
		copy(out.Children, n.Children)
		last := len(out.Children) - 1
		out.Children[last] = Stretch(out.Children[last], out.Children[last].Height+height-n.Height)
		out.Height = height
		return &out

	case KindIf:
		out := *n
		out.BranchHeight = height - n.HeaderHeight
		out.Then = Stretch(n.Then, out.BranchHeight)
		out.Else = Stretch(n.Else, out.BranchHeight)
		out.Height = height
		return &out

	case KindLoop:
		out := *n
		if n.Footer != "" {
			out.Body = Stretch(n.Body, height-2*HeaderHeight)
		} else {
			out.Body = Stretch(n.Body, height-RowHeight)
		}
		out.Height = height
		return &out

	case KindSwitch:
		out := *n
		out.BranchHeight = height - n.SelectorBand - n.LabelBand
		out.Cases = make([]CaseColumn, len(n.Cases))
		copy(out.Cases, n.Cases)
		for i := range out.Cases {
			out.Cases[i].Body = Stretch(out.Cases[i].Body, out.BranchHeight)
		}
		out.Height = height
		return &out

	case KindTry:
		// Extra space flows into the last section.
		out := *n
		delta := height - n.Height
		switch {
		case n.Finally != nil:
			out.Finally = Stretch(n.Finally, n.Finally.Height+delta)
		case len(n.Catches) > 0:
			out.Catches = make([]CatchSection, len(n.Catches))
			copy(out.Catches, n.Catches)
			last := len(out.Catches) - 1
			body := out.Catches[last].Body
			out.Catches[last].Body = Stretch(body, body.Height+delta)
		default:
			out.Body = Stretch(n.Body, n.Body.Height+delta)
		}
		out.Height = height
		return &out

	default:
		out := *n
		out.Height = height
		return &out
	}
}
