package layout

import (
	"reflect"
	"testing"
)

func TestFitColumnWidths(t *testing.T) {
	tests := []struct {
		name   string
		widths []int
		target int
		want   []int
	}{
		{
			name:   "shrink three equal columns",
			widths: []int{100, 100, 100},
			target: 250,
			want:   []int{84, 83, 83},
		},
		{
			name:   "widen two columns",
			widths: []int{40, 60},
			target: 200,
			want:   []int{80, 120},
		},
		{
			name:   "single column",
			widths: []int{70},
			target: 53,
			want:   []int{53},
		},
		{
			name:   "already exact",
			widths: []int{30, 30},
			target: 60,
			want:   []int{30, 30},
		},
		{
			name:   "uneven remainder strides from the left",
			widths: []int{1, 1, 1},
			target: 5,
			want:   []int{2, 2, 1},
		},
		{
			name:   "empty input",
			widths: []int{},
			target: 100,
			want:   []int{},
		},
		{
			name:   "non-positive target returned unchanged",
			widths: []int{10, 20},
			target: 0,
			want:   []int{10, 20},
		},
		{
			name:   "zero sum returned unchanged",
			widths: []int{0, 0},
			target: 50,
			want:   []int{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitColumnWidths(tt.widths, tt.target)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FitColumnWidths(%v, %d) = %v, want %v", tt.widths, tt.target, got, tt.want)
			}
		})
	}
}

func TestFitColumnWidthsExactSum(t *testing.T) {
	tests := []struct {
		name   string
		widths []int
		target int
	}{
		{"prime widths", []int{37, 41, 43}, 100},
		{"large shrink", []int{500, 300, 200, 100}, 321},
		{"large grow", []int{3, 5, 7}, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitColumnWidths(tt.widths, tt.target)
			sum := 0
			for _, w := range got {
				sum += w
			}
			if sum != tt.target {
				t.Errorf("sum(FitColumnWidths(%v, %d)) = %d, want %d", tt.widths, tt.target, sum, tt.target)
			}
		})
	}
}

func TestFitColumnWidthsDoesNotModifyInput(t *testing.T) {
	widths := []int{100, 100, 100}
	FitColumnWidths(widths, 250)
	if !reflect.DeepEqual(widths, []int{100, 100, 100}) {
		t.Errorf("input modified: %v", widths)
	}
}
