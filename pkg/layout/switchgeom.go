package layout

import (
	"math"
	"strings"

	"github.com/strukto/strukto/pkg/controlflow"
)

// caseGroup is one rendered switch column after fallthrough merging:
// the accumulated labels, the statements displayed in the column and
// whether the column's own code ends in an explicit flow terminator.
type caseGroup struct {
	labels     []string
	body       []*controlflow.Node
	terminates bool
}

// label joins the accumulated case labels for display.
func (g caseGroup) label() string {
	return strings.Join(g.labels, ", ")
}

// mergeCases folds the source-order switch cases into rendered column
// groups, modelling fallthrough.
//
// A single trailing "break" is stripped from each case before
// rendering; the vertical column boundary already implies it. Whether
// a case terminates is decided on the pre-strip body. Cases with no
// remaining code and no terminator are fallthrough labels: they attach
// to the next case that carries code. A terminating empty case closes
// the accumulated labels as an empty column. Labels still pending
// after the walk form a trailing empty, non-terminating column.
//
// A closing backward walk fills the columns that ended up with no code
// of their own and no terminator with the following column's displayed
// body, so a fallthrough label chain shows the code it actually runs.
// Columns that carry their own statements keep exactly those: the
// column boundary absorbs the fallthrough visually.
func mergeCases(cases []controlflow.SwitchCase) []caseGroup {
	var groups []caseGroup
	var pending []string

	for _, c := range cases {
		label := c.Label
		if label == "" {
			label = "default"
		}

		terminates := endsInTerminator(c.Body)
		body := stripTrailingBreak(c.Body)

		if len(body) == 0 {
			if terminates {
				groups = append(groups, caseGroup{
					labels:     append(pending, label),
					terminates: true,
				})
				pending = nil
			} else {
				pending = append(pending, label)
			}
			continue
		}

		groups = append(groups, caseGroup{
			labels:     append(pending, label),
			body:       body,
			terminates: terminates,
		})
		pending = nil
	}

	if len(pending) > 0 {
		groups = append(groups, caseGroup{labels: pending})
	}

	for i := len(groups) - 2; i >= 0; i-- {
		if len(groups[i].body) == 0 && !groups[i].terminates {
			groups[i].body = groups[i+1].body
		}
	}
	return groups
}

// endsInTerminator reports whether the last statement of a case body
// is an explicit flow terminator (pre-strip classification).
func endsInTerminator(body []*controlflow.Node) bool {
	if len(body) == 0 {
		return false
	}
	last := body[len(body)-1]
	if last.Kind != controlflow.KindStatement {
		return false
	}
	text, ok := NormalizeStatement(last.Text)
	return ok && IsTerminating(text)
}

// stripTrailingBreak removes a single trailing break statement; the
// returned slice aliases the input.
func stripTrailingBreak(body []*controlflow.Node) []*controlflow.Node {
	if len(body) == 0 {
		return body
	}
	last := body[len(body)-1]
	if last.Kind != controlflow.KindStatement {
		return body
	}
	if text, ok := NormalizeStatement(last.Text); ok && strings.EqualFold(firstToken(text), "break") {
		return body[:len(body)-1]
	}
	return body
}

// switchGeometry is the solved selector-band geometry of a switch box.
type switchGeometry struct {
	widths   []int
	selector int
}

// solveSwitchGeometry generalizes the binary decision solver to N case
// columns. All columns but the last share one combined diagonal run
// from the left edge down to the apex above the default column; the
// default column forms the right run with a full vertical divider on
// its left edge. Both runs must satisfy the same clearance and ratio
// constraints as an if header. Column widening on the combined side is
// distributed with FitColumnWidths so proportions survive.
//
// A single-column switch has no left/default split, so the lone column
// must carry the doubled minimum run on its own.
func (b *Builder) solveSwitchGeometry(expression string, prefWidths []int) switchGeometry {
	half := math.Ceil(float64(b.labelWidth(expression)) / 2)
	required := int(half) + SideClearance
	if denom := 1 - float64(condLabelBottom)/HeaderMaxHeight; denom > 0 {
		required = max(required, int(math.Ceil(half/denom)))
	}

	widths := make([]int, len(prefWidths))
	copy(widths, prefWidths)

	if len(widths) == 1 {
		widths[0] = max(widths[0], 2*required)
		return switchGeometry{widths: widths, selector: b.headerFor(half, widths[0]/2)}
	}

	leftRun := 0
	for _, w := range widths[:len(widths)-1] {
		leftRun += w
	}
	if leftRun < required {
		fitted := FitColumnWidths(widths[:len(widths)-1], required)
		copy(widths, fitted)
		leftRun = required
	}

	rightRun := widths[len(widths)-1]
	if rightRun < required {
		rightRun = required
		widths[len(widths)-1] = required
	}

	return switchGeometry{widths: widths, selector: b.headerFor(half, min(leftRun, rightRun))}
}
