package layout

import "math"

// Fixed sizes in pixels. These drive sizing decisions only; colors and
// other purely visual attributes live in the renderer's theme.
const (
	// RowHeight is the height of a single statement box.
	RowHeight = 28

	// HeaderHeight is the height of a loop header or footer band.
	HeaderHeight = 28

	// HeaderBaseHeight and HeaderMaxHeight bound the diagonal header of
	// decision boxes. The solver picks the smallest safe height within
	// this range.
	HeaderBaseHeight = 36
	HeaderMaxHeight  = 64

	// LabelBandHeight is the fixed band below a switch header that
	// carries the case labels.
	LabelBandHeight = 22

	// SectionHeaderHeight is the fixed band for try/catch/finally
	// section headers.
	SectionHeaderHeight = 24

	// BodyInset is the width of the left band of pre-test loop and
	// try-section bodies.
	BodyInset = 24

	// MinContentWidth is the narrowest any content box may be.
	MinContentWidth = 40

	// TextPadX is the horizontal padding around box text.
	TextPadX = 8

	// SideClearance is the horizontal margin between a condition
	// label's end and the point where it meets a header diagonal.
	SideClearance = 12

	// FontSize is the nominal label font size used by the default
	// width estimate and the condition clearance computation.
	FontSize = 13
)

// condLabelBottom is the vertical space a centered condition label
// needs inside a decision header: top padding, the glyph line itself
// and clearance below the baseline.
const condLabelBottom = 6 + FontSize + 5

// charWidthRatio approximates average glyph width as a fraction of the
// font size.
const charWidthRatio = 0.55

// Measurer estimates the rendered width of a text label in pixels.
// Implementations must be pure: the same input always yields the same
// width.
type Measurer func(text string) float64

// EstimateWidth is the default Measurer: a per-character width
// heuristic. It is intentionally font-agnostic.
func EstimateWidth(text string) float64 {
	return float64(len([]rune(text))) * FontSize * charWidthRatio
}

// boxWidth returns the width of a content box holding the given text.
func (b *Builder) boxWidth(text string) int {
	w := int(math.Ceil(b.measure(text))) + 2*TextPadX
	return max(w, MinContentWidth)
}

// labelWidth returns the padded width of a label without the content
// minimum applied.
func (b *Builder) labelWidth(text string) int {
	return int(math.Ceil(b.measure(text))) + 2*TextPadX
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
