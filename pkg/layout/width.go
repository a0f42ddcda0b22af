package layout

// FitColumnWidths distributes target across the given column widths
// proportionally, rounding so the result sums to exactly target.
//
// Each width is scaled by floor(w/sum * target); the remaining pixels
// are then handed out one at a time starting from column 0 until the
// sum matches (largest-remainder correction). Any residual rounding
// error lands on the last column so the sum is always exact.
//
// The input slice is never modified. It is returned unchanged when it
// already sums to target, when it is empty, or when target or the
// current sum is non-positive (degenerate inputs must not divide by
// zero).
func FitColumnWidths(widths []int, target int) []int {
	if len(widths) == 0 || target <= 0 {
		return widths
	}

	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum == target || sum <= 0 {
		return widths
	}

	fitted := make([]int, len(widths))
	scaled := 0
	for i, w := range widths {
		fitted[i] = w * target / sum
		scaled += fitted[i]
	}

	// Stride correction: hand out the shortfall pixel by pixel.
	for i := 0; scaled < target; i++ {
		fitted[i%len(fitted)]++
		scaled++
	}
	if scaled != target {
		fitted[len(fitted)-1] += target - scaled
	}
	return fitted
}
