package layout

import "github.com/strukto/strukto/pkg/controlflow"

// Builder turns control-flow trees into layout trees. A Builder is
// immutable and safe for concurrent use.
type Builder struct {
	measure Measurer
}

// NewBuilder creates a Builder with the given text-width estimator.
// Passing nil selects EstimateWidth.
func NewBuilder(measure Measurer) *Builder {
	if measure == nil {
		measure = EstimateWidth
	}
	return &Builder{measure: measure}
}

// Build computes the layout tree for a control-flow tree. It returns
// nil when root is nil or contains nothing renderable; malformed input
// never fails, it degrades to fallback labels and placeholder boxes.
func (b *Builder) Build(root *controlflow.Node) *Node {
	if root == nil {
		return nil
	}
	return b.build(root)
}

// BuildMethod builds the diagram for a method: the layout of its
// control tree titled with the method declaration. It returns nil when
// the method has no control tree.
func (b *Builder) BuildMethod(m *controlflow.Method) *Diagram {
	root := b.Build(m.ControlTree)
	if root == nil {
		return nil
	}
	return &Diagram{Title: MethodDeclaration(m), Root: root}
}

func (b *Builder) build(n *controlflow.Node) *Node {
	switch n.Kind {
	case controlflow.KindStatement:
		return b.buildStatement(n.Text)
	case controlflow.KindSequence:
		return b.buildSequence(n.Children, emptyBodyLabel)
	case controlflow.KindIf:
		return b.buildIf(n)
	case controlflow.KindLoop:
		return b.buildLoop(n)
	case controlflow.KindSwitch:
		return b.buildSwitch(n)
	case controlflow.KindTry:
		return b.buildTry(n)
	default:
		// Unknown kinds from newer parsers degrade to a labeled box.
		label := n.Text
		if label == "" {
			label = string(n.Kind)
		}
		return b.placeholder(label, false)
	}
}

// buildStatement emits a fixed-height box, or nil when the text
// normalizes to nothing; the parent sequence drops such nodes.
func (b *Builder) buildStatement(raw string) *Node {
	text, ok := NormalizeStatement(raw)
	if !ok {
		return nil
	}
	return &Node{
		Kind:   KindStatement,
		Width:  b.boxWidth(text),
		Height: RowHeight,
		Text:   text,
	}
}

// placeholder emits the synthetic statement used for empty bodies.
func (b *Builder) placeholder(label string, centered bool) *Node {
	return &Node{
		Kind:     KindStatement,
		Width:    b.boxWidth(label),
		Height:   RowHeight,
		Text:     label,
		Centered: centered,
	}
}

// buildSequence builds children in order, dropping the unrenderable
// ones. An empty result degrades to a single placeholder statement so
// the box is never zero-sized.
func (b *Builder) buildSequence(children []*controlflow.Node, placeholder string) *Node {
	built := make([]*Node, 0, len(children))
	for _, c := range children {
		if node := b.build(c); node != nil {
			built = append(built, node)
		}
	}
	if len(built) == 0 {
		built = append(built, b.placeholder(placeholder, placeholder == noElseLabel))
	}

	width, height := 0, 0
	for _, c := range built {
		width = max(width, c.Width)
		height += c.Height
	}
	return &Node{
		Kind:     KindSequence,
		Width:    width,
		Height:   height,
		Children: built,
	}
}

func (b *Builder) buildIf(n *controlflow.Node) *Node {
	condition := normalizeCondition(n.Condition, defaultCondition)

	then := b.buildSequence(n.ThenBranch, emptyBodyLabel)

	// An absent else renders the no-else sentinel, centered, instead of
	// the generic empty-body placeholder.
	elseLabel := emptyBodyLabel
	if len(n.ElseBranch) == 0 {
		elseLabel = noElseLabel
	}
	els := b.buildSequence(n.ElseBranch, elseLabel)

	geom := b.solveIfGeometry(condition, then.Width, els.Width)
	branch := max(then.Height, els.Height)

	return &Node{
		Kind:         KindIf,
		Width:        geom.left + geom.right,
		Height:       geom.header + branch,
		Condition:    condition,
		Then:         Stretch(then, branch),
		Else:         Stretch(els, branch),
		LeftWidth:    geom.left,
		RightWidth:   geom.right,
		HeaderHeight: geom.header,
		BranchHeight: branch,
	}
}

func (b *Builder) buildSwitch(n *controlflow.Node) *Node {
	expression := normalizeCondition(n.Condition, defaultSelector)

	groups := mergeCases(n.SwitchCases)
	if len(groups) == 0 {
		return b.placeholder("switch ("+expression+")", false)
	}

	bodies := make([]*Node, len(groups))
	prefs := make([]int, len(groups))
	branch := 0
	for i, g := range groups {
		bodies[i] = b.buildSequence(g.body, emptyBodyLabel)
		prefs[i] = max(b.labelWidth(g.label()), bodies[i].Width, MinContentWidth)
		branch = max(branch, bodies[i].Height)
	}

	geom := b.solveSwitchGeometry(expression, prefs)

	width := 0
	cases := make([]CaseColumn, len(groups))
	for i, g := range groups {
		cases[i] = CaseColumn{
			Label: g.label(),
			Body:  Stretch(bodies[i], branch),
			Width: geom.widths[i],
		}
		width += geom.widths[i]
	}

	return &Node{
		Kind:         KindSwitch,
		Width:        width,
		Height:       geom.selector + LabelBandHeight + branch,
		Expression:   expression,
		Cases:        cases,
		SelectorBand: geom.selector,
		LabelBand:    LabelBandHeight,
		BranchHeight: branch,
	}
}
