package extraction

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// LinkAnnotation is a page-scoped hyperlink rectangle from PDF metadata.
type LinkAnnotation struct {
	X1, Y1, X2, Y2 float64
	URL            string
}

// AttributedLink pairs a link annotation with the text nearest to it.
type AttributedLink struct {
	Context string
	URL     string
}

// attributeLinks matches each link annotation to its nearest visible text:
// fragments within LinkYTolerance of the rectangle's vertical center,
// ordered by horizontal distance to the center, closest LinkContextSize of
// them joined as context. Annotation rectangles often do not exactly bound
// their text, so the vertical window is deliberately generous.
func attributeLinks(frags []Fragment, annots []LinkAnnotation, opts Options) []AttributedLink {
	links := make([]AttributedLink, 0, len(annots))
	for _, annot := range annots {
		centerX := (annot.X1 + annot.X2) / 2
		centerY := (annot.Y1 + annot.Y2) / 2

		var nearby []Fragment
		for _, f := range frags {
			if math.Abs(f.Y-centerY) < opts.LinkYTolerance {
				nearby = append(nearby, f)
			}
		}
		sort.SliceStable(nearby, func(i, j int) bool {
			return math.Abs(nearby[i].X-centerX) < math.Abs(nearby[j].X-centerX)
		})
		if len(nearby) > opts.LinkContextSize {
			nearby = nearby[:opts.LinkContextSize]
		}

		context := strings.TrimSpace(joinText(nearby))
		if context == "" {
			context = "Link"
		}
		links = append(links, AttributedLink{Context: context, URL: annot.URL})
	}
	return links
}

// renderLinks emits one line per attributed link in the fixed form the
// downstream prompt expects.
func renderLinks(links []AttributedLink) string {
	lines := make([]string, len(links))
	for i, link := range links {
		lines[i] = fmt.Sprintf("[LINK: context=%q url=%q]", link.Context, link.URL)
	}
	return strings.Join(lines, "\n")
}
