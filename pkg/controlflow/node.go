// Package controlflow defines the control-flow tree consumed by the
// structogram layout engine.
//
// The tree is produced by an external static-analysis component and
// exchanged as JSON. It is a language-neutral description of a method
// body's control structures: plain statements, sequences, if/else
// decisions, loops, switch statements and try/catch/finally blocks.
//
// # Tree Shape
//
// Node is a discriminated union - check Kind to determine which fields
// are populated:
//
//	Statement ("statement"):
//	  - Text: the statement source text
//
//	Sequence ("sequence"):
//	  - Children: the statements in order
//
//	If ("if"):
//	  - Condition, ThenBranch, ElseBranch
//
//	Loop ("loop"):
//	  - LoopKind ("while", "for", "foreach", "doWhile"), Condition, Children
//
//	Switch ("switch"):
//	  - Condition (selector expression), SwitchCases
//
//	Try ("try"):
//	  - Children (try body), Catches, FinallyBranch
//
// Nodes are treated as immutable once decoded. The layout engine never
// mutates them; sharing subtrees between documents is safe.
package controlflow

// Kind discriminates the control-flow node variants.
type Kind string

// Control-flow node kinds.
const (
	KindSequence  Kind = "sequence"
	KindStatement Kind = "statement"
	KindIf        Kind = "if"
	KindLoop      Kind = "loop"
	KindSwitch    Kind = "switch"
	KindTry       Kind = "try"
)

// LoopKind distinguishes the loop shapes.
type LoopKind string

// Loop kinds. DoWhile is the only post-test shape; everything else is
// rendered with a single header band.
const (
	LoopWhile   LoopKind = "while"
	LoopFor     LoopKind = "for"
	LoopForEach LoopKind = "foreach"
	LoopDoWhile LoopKind = "doWhile"
)

// Node is one node of the control-flow tree.
//
// The JSON field names match the wire format emitted by the parser
// bridge, so plain struct tags are sufficient for round-tripping.
type Node struct {
	Kind Kind `json:"kind"`

	// Statement
	Text string `json:"text,omitempty"`

	// If, loop and switch
	Condition string   `json:"condition,omitempty"`
	LoopKind  LoopKind `json:"loopKind,omitempty"`

	// Sequence, loop and try bodies
	Children []*Node `json:"children,omitempty"`

	// If branches
	ThenBranch []*Node `json:"thenBranch,omitempty"`
	ElseBranch []*Node `json:"elseBranch,omitempty"`

	// Switch cases in source order
	SwitchCases []SwitchCase `json:"switchCases,omitempty"`

	// Try handlers
	Catches       []Catch `json:"catches,omitempty"`
	FinallyBranch []*Node `json:"finallyBranch,omitempty"`
}

// SwitchCase is a single case label with its body statements.
type SwitchCase struct {
	Label string  `json:"label"`
	Body  []*Node `json:"body,omitempty"`
}

// Catch is a single catch clause: the declared exception and its body.
type Catch struct {
	Exception string  `json:"exception,omitempty"`
	Body      []*Node `json:"body,omitempty"`
}

// IsPostTest reports whether the node is a post-test (do-while) loop.
func (n *Node) IsPostTest() bool {
	return n.Kind == KindLoop && n.LoopKind == LoopDoWhile
}
