package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/strukto/strukto/pkg/layout"
)

// Frame geometry around the diagram itself.
const (
	framePad        = 10
	titleBandHeight = 32
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme   Theme
	measure layout.Measurer
}

// WithTheme sets the visual theme (default: Light).
func WithTheme(t Theme) SVGOption {
	return func(r *svgRenderer) { r.theme = t }
}

// WithMeasurer sets the estimator used to size the title band. It
// should match the estimator the layout was built with.
func WithMeasurer(m layout.Measurer) SVGOption {
	return func(r *svgRenderer) { r.measure = m }
}

// RenderSVG renders a structogram diagram as a complete SVG document.
func RenderSVG(d *layout.Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{theme: Light(), measure: layout.EstimateWidth}
	for _, opt := range opts {
		opt(&r)
	}

	width := d.Root.Width
	if d.Title != "" {
		width = max(width, int(math.Ceil(r.measure(d.Title)))+2*layout.TextPadX)
	}
	height := d.Root.Height
	if d.Title != "" {
		height += titleBandHeight
	}

	totalW := width + 2*framePad
	totalH := height + 2*framePad

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		totalW, totalH, totalW, totalH)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", totalW, totalH, r.theme.Background)
	fmt.Fprintf(&buf, `  <g font-family="%s" font-size="%d" stroke-width="1">`+"\n", escapeXML(r.theme.FontFamily), layout.FontSize)

	y := framePad
	if d.Title != "" {
		r.text(&buf, framePad+layout.TextPadX, y+titleBandHeight/2+layout.FontSize/2-2, "start", r.theme.Text, d.Title)
		y += titleBandHeight
	}
	r.node(&buf, d.Root, framePad, y, width)

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// node draws a layout node at the given position. The width may exceed
// the node's own: sequences hand their full width to every child, so
// boxes always close flush with their parent. Heights are exact by
// construction (branch columns are pre-stretched by the layout).
func (r *svgRenderer) node(buf *bytes.Buffer, n *layout.Node, x, y, w int) {
	switch n.Kind {
	case layout.KindStatement:
		r.statement(buf, n, x, y, w)
	case layout.KindSequence:
		cy := y
		for _, c := range n.Children {
			r.node(buf, c, x, cy, w)
			cy += c.Height
		}
	case layout.KindIf:
		r.ifBox(buf, n, x, y, w)
	case layout.KindLoop:
		r.loopBox(buf, n, x, y, w)
	case layout.KindSwitch:
		r.switchBox(buf, n, x, y, w)
	case layout.KindTry:
		r.tryBox(buf, n, x, y, w)
	}
}

func (r *svgRenderer) statement(buf *bytes.Buffer, n *layout.Node, x, y, w int) {
	r.rect(buf, x, y, w, n.Height, "none")
	baseline := y + layout.RowHeight/2 + layout.FontSize/2 - 2
	if n.Centered {
		r.text(buf, x+w/2, baseline, "middle", r.theme.Text, n.Text)
	} else {
		r.text(buf, x+layout.TextPadX, baseline, "start", r.theme.Text, n.Text)
	}
}

// ifBox draws the diagonal header with the centered condition, the T/F
// corner labels and the two branch columns.
func (r *svgRenderer) ifBox(buf *bytes.Buffer, n *layout.Node, x, y, w int) {
	widths := layout.FitColumnWidths([]int{n.LeftWidth, n.RightWidth}, w)
	apexX := x + widths[0]
	apexY := y + n.HeaderHeight

	r.rect(buf, x, y, w, n.HeaderHeight, r.theme.HeaderFill)
	r.line(buf, x, y, apexX, apexY)
	r.line(buf, x+w, y, apexX, apexY)

	r.text(buf, apexX, y+6+layout.FontSize, "middle", r.theme.Text, n.Condition)
	r.text(buf, x+6, apexY-6, "start", r.theme.AccentText, "T")
	r.text(buf, x+w-6, apexY-6, "end", r.theme.AccentText, "F")

	r.node(buf, n.Then, x, apexY, widths[0])
	r.node(buf, n.Else, apexX, apexY, widths[1])
}

func (r *svgRenderer) loopBox(buf *bytes.Buffer, n *layout.Node, x, y, w int) {
	if n.Footer != "" {
		// Post-test shape: header band, full-width body, footer band.
		r.rect(buf, x, y, w, layout.HeaderHeight, r.theme.HeaderFill)
		r.text(buf, x+layout.TextPadX, y+layout.HeaderHeight-9, "start", r.theme.Text, n.Header)
		r.node(buf, n.Body, x, y+layout.HeaderHeight, w)
		fy := y + n.Height - layout.HeaderHeight
		r.rect(buf, x, fy, w, layout.HeaderHeight, r.theme.HeaderFill)
		r.text(buf, x+layout.TextPadX, fy+layout.HeaderHeight-9, "start", r.theme.Text, n.Footer)
		r.rect(buf, x, y, w, n.Height, "none")
		return
	}

	// Pre-test shape: the loop bar forms an L around the inset body.
	r.rect(buf, x, y, w, layout.RowHeight, r.theme.HeaderFill)
	r.rect(buf, x, y+layout.RowHeight, n.Inset, n.Height-layout.RowHeight, r.theme.HeaderFill)
	r.text(buf, x+layout.TextPadX, y+layout.RowHeight-9, "start", r.theme.Text, n.Header)
	r.node(buf, n.Body, x+n.Inset, y+layout.RowHeight, w-n.Inset)
	r.rect(buf, x, y, w, n.Height, "none")
}

// switchBox draws the selector band with the combined diagonal running
// to the apex above the default column, the case label band, and the
// case columns. The default column keeps a full vertical divider on
// its left edge.
func (r *svgRenderer) switchBox(buf *bytes.Buffer, n *layout.Node, x, y, w int) {
	prefs := make([]int, len(n.Cases))
	for i, c := range n.Cases {
		prefs[i] = c.Width
	}
	widths := layout.FitColumnWidths(prefs, w)

	last := len(widths) - 1
	apexX := x + w - widths[last]
	if last == 0 {
		apexX = x + w/2
	}
	apexY := y + n.SelectorBand
	labelY := apexY + n.LabelBand

	r.rect(buf, x, y, w, n.SelectorBand, r.theme.HeaderFill)
	r.line(buf, x, y, apexX, apexY)
	r.line(buf, x+w, y, apexX, apexY)
	r.text(buf, apexX, y+6+layout.FontSize, "middle", r.theme.Text, n.Expression)

	// Label band and columns.
	cx := x
	for i, c := range n.Cases {
		mid := cx + widths[i]/2
		r.text(buf, mid, labelY-6, "middle", r.theme.AccentText, c.Label)
		if i > 0 {
			top := apexY
			if i == last {
				top = y // full divider in front of the default column
			}
			r.line(buf, cx, top, cx, y+n.Height)
		}
		r.node(buf, c.Body, cx, labelY, widths[i])
		cx += widths[i]
	}
	r.line(buf, x, apexY, x+w, apexY)
	r.rect(buf, x, y, w, n.Height, "none")
}

func (r *svgRenderer) tryBox(buf *bytes.Buffer, n *layout.Node, x, y, w int) {
	cy := y
	section := func(label string, body *layout.Node) {
		r.rect(buf, x, cy, w, layout.SectionHeaderHeight, r.theme.SectionFill)
		r.text(buf, x+layout.TextPadX, cy+layout.SectionHeaderHeight-7, "start", r.theme.Text, label)
		cy += layout.SectionHeaderHeight
		r.rect(buf, x, cy, layout.BodyInset, body.Height, r.theme.SectionFill)
		r.node(buf, body, x+layout.BodyInset, cy, w-layout.BodyInset)
		cy += body.Height
	}

	section("try", n.Body)
	for _, c := range n.Catches {
		section("catch ("+c.Label+")", c.Body)
	}
	if n.Finally != nil {
		section("finally", n.Finally)
	}
	r.rect(buf, x, y, w, n.Height, "none")
}

func (r *svgRenderer) rect(buf *bytes.Buffer, x, y, w, h int, fill string) {
	fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s"/>`+"\n",
		x, y, w, h, fill, r.theme.Stroke)
}

func (r *svgRenderer) line(buf *bytes.Buffer, x1, y1, x2, y2 int) {
	fmt.Fprintf(buf, `    <line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`+"\n",
		x1, y1, x2, y2, r.theme.Stroke)
}

func (r *svgRenderer) text(buf *bytes.Buffer, x, y int, anchor, color, s string) {
	fmt.Fprintf(buf, `    <text x="%d" y="%d" text-anchor="%s" fill="%s">%s</text>`+"\n",
		x, y, anchor, color, escapeXML(s))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
