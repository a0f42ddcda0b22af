package layout

// Kind discriminates the layout node variants.
type Kind string

// Layout node kinds.
const (
	KindStatement Kind = "statement"
	KindSequence  Kind = "sequence"
	KindIf        Kind = "if"
	KindLoop      Kind = "loop"
	KindSwitch    Kind = "switch"
	KindTry       Kind = "try"
)

// Node is one box of the computed layout tree.
//
// Node is a discriminated union - check Kind to determine which fields
// are populated:
//
//	Statement ("statement"):
//	  - Text, Centered
//
//	Sequence ("sequence"):
//	  - Children; Height is the sum and Width the max of the children
//
//	If ("if"):
//	  - Condition, Then, Else, LeftWidth, RightWidth, HeaderHeight,
//	    BranchHeight; Width = LeftWidth+RightWidth,
//	    Height = HeaderHeight+BranchHeight
//
//	Loop ("loop"):
//	  - Header, Body; Footer and Inset distinguish the two shapes:
//	    post-test loops have a Footer and zero Inset, all others a
//	    nonzero Inset and no Footer
//
//	Switch ("switch"):
//	  - Expression, Cases, SelectorBand, LabelBand, BranchHeight;
//	    Width is the sum of the case column widths
//
//	Try ("try"):
//	  - Body, Catches, Finally; Height is the sum of each section's
//	    fixed header band and body height
//
// Width and Height are integer pixels. Nodes are immutable after
// construction: balancing passes build new nodes along the modified
// path and share unchanged subtrees (see Stretch).
type Node struct {
	Kind   Kind `json:"kind"`
	Width  int  `json:"width"`
	Height int  `json:"height"`

	// Statement
	Text     string `json:"text,omitempty"`
	Centered bool   `json:"centered,omitempty"`

	// Sequence
	Children []*Node `json:"children,omitempty"`

	// If
	Condition    string `json:"condition,omitempty"`
	Then         *Node  `json:"then,omitempty"`
	Else         *Node  `json:"else,omitempty"`
	LeftWidth    int    `json:"leftWidth,omitempty"`
	RightWidth   int    `json:"rightWidth,omitempty"`
	HeaderHeight int    `json:"headerHeight,omitempty"`
	BranchHeight int    `json:"branchHeight,omitempty"`

	// Loop
	Header string `json:"header,omitempty"`
	Footer string `json:"footer,omitempty"`
	Inset  int    `json:"inset,omitempty"`
	Body   *Node  `json:"body,omitempty"`

	// Switch
	Expression   string       `json:"expression,omitempty"`
	Cases        []CaseColumn `json:"cases,omitempty"`
	SelectorBand int          `json:"selectorBand,omitempty"`
	LabelBand    int          `json:"labelBand,omitempty"`

	// Try
	Catches []CatchSection `json:"catches,omitempty"`
	Finally *Node          `json:"finally,omitempty"`
}

// CaseColumn is one vertical column of a switch box.
type CaseColumn struct {
	Label string `json:"label"`
	Body  *Node  `json:"body"`
	Width int    `json:"width"`
}

// CatchSection is one catch handler band of a try box.
type CatchSection struct {
	Label string `json:"label"`
	Body  *Node  `json:"body"`
}

// Diagram couples a layout tree with its title, the method declaration
// shown in the frame header.
type Diagram struct {
	Title string `json:"title,omitempty"`
	Root  *Node  `json:"root"`
}
