package layout

import (
	"testing"

	"github.com/strukto/strukto/pkg/controlflow"
)

func TestStretchNoop(t *testing.T) {
	b := NewBuilder(nil)
	n := b.Build(stmt("x();"))

	if got := Stretch(n, n.Height); got != n {
		t.Error("Stretch to current height should return the node itself")
	}
	if got := Stretch(n, n.Height-10); got != n {
		t.Error("Stretch below current height should return the node itself")
	}
	if got := Stretch(nil, 100); got != nil {
		t.Error("Stretch(nil) should return nil")
	}
}

func TestStretchStatement(t *testing.T) {
	b := NewBuilder(nil)
	n := b.Build(stmt("x();"))

	out := Stretch(n, 80)
	if out.Height != 80 {
		t.Errorf("Height = %d, want 80", out.Height)
	}
	if n.Height != RowHeight {
		t.Errorf("original Height = %d, want %d (input must stay unmodified)", n.Height, RowHeight)
	}
}

func TestStretchSequence(t *testing.T) {
	b := NewBuilder(nil)
	n := b.Build(seq(stmt("a();"), stmt("b();")))

	out := Stretch(n, n.Height+40)

	if out.Height != n.Height+40 {
		t.Fatalf("Height = %d, want %d", out.Height, n.Height+40)
	}
	// Only the last child absorbs the extra space.
	if out.Children[0] != n.Children[0] {
		t.Error("first child should be shared, not copied")
	}
	if out.Children[1] == n.Children[1] {
		t.Error("last child should be a stretched copy")
	}
	if out.Children[1].Height != n.Children[1].Height+40 {
		t.Errorf("last child Height = %d, want %d", out.Children[1].Height, n.Children[1].Height+40)
	}
	if n.Children[1].Height != RowHeight {
		t.Error("original last child modified")
	}
}

func TestStretchIf(t *testing.T) {
	b := NewBuilder(nil)
	n := b.Build(&controlflow.Node{
		Kind:       controlflow.KindIf,
		Condition:  "x",
		ThenBranch: []*controlflow.Node{stmt("a();")},
		ElseBranch: []*controlflow.Node{stmt("b();")},
	})

	out := Stretch(n, n.Height+30)

	if out.HeaderHeight != n.HeaderHeight {
		t.Errorf("HeaderHeight changed: %d -> %d", n.HeaderHeight, out.HeaderHeight)
	}
	if out.BranchHeight != n.BranchHeight+30 {
		t.Errorf("BranchHeight = %d, want %d", out.BranchHeight, n.BranchHeight+30)
	}
	if out.Then.Height != out.BranchHeight || out.Else.Height != out.BranchHeight {
		t.Errorf("branch heights = %d/%d, want %d", out.Then.Height, out.Else.Height, out.BranchHeight)
	}
}

func TestStretchLoop(t *testing.T) {
	b := NewBuilder(nil)

	t.Run("pre-test body absorbs extra", func(t *testing.T) {
		n := b.Build(&controlflow.Node{
			Kind:      controlflow.KindLoop,
			Condition: "go",
			Children:  []*controlflow.Node{stmt("a();")},
		})
		out := Stretch(n, n.Height+20)
		if out.Body.Height != out.Height-RowHeight {
			t.Errorf("Body.Height = %d, want %d", out.Body.Height, out.Height-RowHeight)
		}
	})

	t.Run("post-test keeps both bands", func(t *testing.T) {
		n := b.Build(&controlflow.Node{
			Kind:      controlflow.KindLoop,
			LoopKind:  controlflow.LoopDoWhile,
			Condition: "go",
			Children:  []*controlflow.Node{stmt("a();")},
		})
		out := Stretch(n, n.Height+20)
		if out.Body.Height != out.Height-2*HeaderHeight {
			t.Errorf("Body.Height = %d, want %d", out.Body.Height, out.Height-2*HeaderHeight)
		}
	})
}

func TestStretchSwitch(t *testing.T) {
	b := NewBuilder(nil)
	n := b.Build(&controlflow.Node{
		Kind:      controlflow.KindSwitch,
		Condition: "s",
		SwitchCases: []controlflow.SwitchCase{
			{Label: "1", Body: []*controlflow.Node{stmt("a();"), stmt("break;")}},
			{Label: "", Body: []*controlflow.Node{stmt("b();")}},
		},
	})

	out := Stretch(n, n.Height+44)

	if out.BranchHeight != n.BranchHeight+44 {
		t.Errorf("BranchHeight = %d, want %d", out.BranchHeight, n.BranchHeight+44)
	}
	for i, c := range out.Cases {
		if c.Body.Height != out.BranchHeight {
			t.Errorf("case %d body height = %d, want %d", i, c.Body.Height, out.BranchHeight)
		}
		if c.Width != n.Cases[i].Width {
			t.Errorf("case %d width changed: %d -> %d", i, n.Cases[i].Width, c.Width)
		}
	}
}

func TestStretchTry(t *testing.T) {
	b := NewBuilder(nil)

	base := &controlflow.Node{
		Kind:     controlflow.KindTry,
		Children: []*controlflow.Node{stmt("risky();")},
	}

	t.Run("extra flows into finally when present", func(t *testing.T) {
		node := *base
		node.Catches = []controlflow.Catch{{Exception: "E", Body: []*controlflow.Node{stmt("c();")}}}
		node.FinallyBranch = []*controlflow.Node{stmt("f();")}
		n := b.Build(&node)

		out := Stretch(n, n.Height+16)
		if out.Finally.Height != n.Finally.Height+16 {
			t.Errorf("Finally.Height = %d, want %d", out.Finally.Height, n.Finally.Height+16)
		}
		if out.Catches[0].Body != n.Catches[0].Body {
			t.Error("catch body should be shared when finally absorbs the delta")
		}
	})

	t.Run("extra flows into last catch without finally", func(t *testing.T) {
		node := *base
		node.Catches = []controlflow.Catch{{Exception: "E", Body: []*controlflow.Node{stmt("c();")}}}
		n := b.Build(&node)

		out := Stretch(n, n.Height+16)
		if out.Catches[0].Body.Height != n.Catches[0].Body.Height+16 {
			t.Errorf("catch body height = %d, want %d", out.Catches[0].Body.Height, n.Catches[0].Body.Height+16)
		}
	})

	t.Run("extra flows into body without handlers", func(t *testing.T) {
		n := b.Build(base)

		out := Stretch(n, n.Height+16)
		if out.Body.Height != n.Body.Height+16 {
			t.Errorf("Body.Height = %d, want %d", out.Body.Height, n.Body.Height+16)
		}
	})
}
