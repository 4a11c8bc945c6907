package export

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Offline rewrites a standalone document so it renders without network
// access: every external stylesheet, font hint, and CDN script is removed
// and replaced by an inlined stylesheet covering the classes the templates
// use.
func Offline(standalone string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(standalone))
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}

	doc.Find("script[src]").Remove()
	doc.Find(`link[rel="stylesheet"]`).Remove()
	doc.Find(`link[rel="preconnect"]`).Remove()

	doc.Find("head").AppendHtml("<style>\n" + offlineCSS + "\n</style>")

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	return out, nil
}
