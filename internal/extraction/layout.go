package extraction

import (
	"sort"
	"strings"
)

// Fragment is a positioned text run extracted from a PDF page. Coordinates
// are in page space with the origin at the bottom-left, so larger Y means
// higher on the page.
type Fragment struct {
	Text   string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// splitColumns classifies a page as two-column when both halves carry more
// than MinColumnFragments fragments outside a margin band around the
// horizontal midpoint. The band keeps a few right-aligned dates from
// triggering a false column split.
func splitColumns(frags []Fragment, pageWidth float64, opts Options) (left, right []Fragment, twoColumn bool) {
	midpoint := pageWidth / 2
	margin := pageWidth * opts.ColumnMarginRatio

	for _, f := range frags {
		switch {
		case f.X < midpoint-margin:
			left = append(left, f)
		case f.X > midpoint+margin:
			right = append(right, f)
		}
	}
	twoColumn = len(left) > opts.MinColumnFragments && len(right) > opts.MinColumnFragments
	return left, right, twoColumn
}

// sortColumn orders fragments of one column top-to-bottom, left-to-right
// within a visual row (descending Y, then ascending X).
func sortColumn(frags []Fragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y != frags[j].Y {
			return frags[i].Y > frags[j].Y
		}
		return frags[i].X < frags[j].X
	})
}

// sortReadingOrder orders a single-column page with a tolerant comparator:
// fragments within rowTolerance of each other's Y are treated as one line
// and ordered by X; otherwise higher fragments come first.
func sortReadingOrder(frags []Fragment, rowTolerance float64) {
	sort.SliceStable(frags, func(i, j int) bool {
		dy := frags[i].Y - frags[j].Y
		if dy < 0 {
			dy = -dy
		}
		if dy < rowTolerance {
			return frags[i].X < frags[j].X
		}
		return frags[i].Y > frags[j].Y
	})
}

// joinText concatenates fragment text with single spaces.
func joinText(frags []Fragment) string {
	parts := make([]string, len(frags))
	for i, f := range frags {
		parts[i] = f.Text
	}
	return strings.Join(parts, " ")
}

// layoutPageText orders a page's fragments into reading order and renders
// them, labeling the two blocks explicitly on two-column pages so that a
// skills sidebar does not interleave with the main content.
func layoutPageText(frags []Fragment, pageWidth float64, opts Options) (string, bool) {
	left, right, twoColumn := splitColumns(frags, pageWidth, opts)
	if twoColumn {
		sortColumn(left)
		sortColumn(right)
		return "[LEFT COLUMN]\n" + joinText(left) + "\n\n[RIGHT COLUMN]\n" + joinText(right), true
	}

	ordered := append([]Fragment(nil), frags...)
	sortReadingOrder(ordered, opts.RowTolerance)
	return joinText(ordered), false
}
