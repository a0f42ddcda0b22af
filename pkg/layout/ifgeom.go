package layout

import "math"

// ifGeometry is the solved header geometry of a binary decision box:
// the two branch column widths and the height of the diagonal header.
type ifGeometry struct {
	left   int
	right  int
	header int
}

// solveIfGeometry computes branch widths and header height so the
// centered condition label never clips the header diagonals.
//
// The header is drawn as two diagonals meeting at an apex above the
// left/right split. The label is centered at the apex and needs
// condLabelBottom pixels of vertical space. On either side the
// diagonal runs from the outer top corner down to the apex, so at the
// label's outer end (half the label width from the apex) the diagonal
// must already have dropped below the label:
//
//	condLabelBottom <= header * (1 - half/side)
//
// Solving for the side width at the maximum header height gives the
// similar-triangles widening bound; solving for the header at the
// narrower of the two final sides gives the minimum safe height.
func (b *Builder) solveIfGeometry(condition string, prefLeft, prefRight int) ifGeometry {
	half := math.Ceil(float64(b.labelWidth(condition)) / 2)
	required := int(half) + SideClearance

	left := max(prefLeft, required)
	right := max(prefRight, required)

	// Even the maximum header height cannot make a side narrower than
	// this safe; widen both columns up to the ratio-safe width.
	if denom := 1 - float64(condLabelBottom)/HeaderMaxHeight; denom > 0 {
		ratioSafe := int(math.Ceil(half / denom))
		left = max(left, ratioSafe)
		right = max(right, ratioSafe)
	}

	return ifGeometry{left: left, right: right, header: b.headerFor(half, min(left, right))}
}

// headerFor returns the clamped header height that keeps a label of
// the given half width clear of the diagonal on a column of width
// side. Degenerate ratios fall back to the maximum height instead of
// dividing by zero.
func (b *Builder) headerFor(half float64, side int) int {
	if side <= 0 {
		return HeaderMaxHeight
	}
	ratio := 1 - half/float64(side)
	if ratio <= 0 {
		return HeaderMaxHeight
	}
	h := int(math.Ceil(condLabelBottom / ratio))
	return clamp(h, HeaderBaseHeight, HeaderMaxHeight)
}
