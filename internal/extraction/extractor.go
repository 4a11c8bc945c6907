// Package extraction reads PDF resumes into a structured text blob: per-page
// reading-order text with explicit column markers, plus hyperlink
// annotations attributed to their nearest visible text.
package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Options holds the layout heuristics. These are empirically tuned knobs,
// not protocol invariants; tests and deployments may override them.
type Options struct {
	// ColumnMarginRatio is the half-width of the band around the page
	// midpoint, as a fraction of page width, excluded from column counting.
	ColumnMarginRatio float64
	// MinColumnFragments is the fragment count each half must exceed before
	// a page is treated as two-column.
	MinColumnFragments int
	// RowTolerance is the Y distance within which single-column fragments
	// are considered part of the same visual line.
	RowTolerance float64
	// LinkYTolerance is the vertical window around a link rectangle's center
	// when gathering context text.
	LinkYTolerance float64
	// LinkContextSize is the number of nearest fragments joined as context.
	LinkContextSize int
}

// DefaultOptions returns the tuning used in production.
func DefaultOptions() Options {
	return Options{
		ColumnMarginRatio:  0.10,
		MinColumnFragments: 10,
		RowTolerance:       5,
		LinkYTolerance:     15,
		LinkContextSize:    5,
	}
}

// letterWidth is the fallback page width when the media box is missing.
const letterWidth = 612.0

// Extractor performs layout-aware text and link extraction. Pages are
// processed strictly sequentially and concatenated in page order; no column
// state crosses a page boundary.
type Extractor struct {
	opts Options
	log  *zap.SugaredLogger
}

// New creates an Extractor. A nil logger disables debug output.
func New(opts Options, log *zap.SugaredLogger) *Extractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Extractor{opts: opts, log: log}
}

// ExtractFile extracts from a PDF on disk.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", newError(KindRead, "failed to read the PDF file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", newError(KindRead, "failed to read the PDF file", err)
	}
	return e.Extract(ctx, f, info.Size())
}

// ExtractBytes extracts from an in-memory PDF (e.g. a multipart upload).
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (string, error) {
	return e.Extract(ctx, bytes.NewReader(data), int64(len(data)))
}

// Extract reads every page of the document and returns the accumulated
// structured text. All failures surface as *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", mapOpenError(err)
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", newError(KindEmpty, "PDF has no pages; please upload a valid resume", nil)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", newError(KindRead, "extraction interrupted", err)
		}

		frags, annots, pageWidth, err := e.readPage(reader, pageNum)
		if err != nil {
			return "", err
		}

		text, twoColumn := layoutPageText(frags, pageWidth, e.opts)
		links := attributeLinks(frags, annots, e.opts)

		fmt.Fprintf(&sb, "--- PAGE %d TEXT ---\n%s\n\n", pageNum, text)
		if len(links) > 0 {
			fmt.Fprintf(&sb, "--- PAGE %d ATTRIBUTED LINKS ---\n%s\n\n", pageNum, renderLinks(links))
		}

		e.log.Debugw("page extracted",
			"page", pageNum, "fragments", len(frags), "links", len(links), "two_column", twoColumn)
	}

	return strings.TrimSpace(sb.String()), nil
}

// mapOpenError folds the PDF library's open failures into the taxonomy.
func mapOpenError(err error) *ExtractionError {
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return newError(KindEncrypted, "this PDF is password-protected; please upload an unprotected PDF", err)
	}
	return newError(KindInvalid, "invalid PDF file; please upload a valid PDF document", err)
}

// readPage gathers one page's text fragments, link annotations, and width.
// The content-stream interpreter panics on malformed streams, so the whole
// pass runs under a recover that maps into the taxonomy.
func (e *Extractor) readPage(reader *pdf.Reader, pageNum int) (frags []Fragment, annots []LinkAnnotation, pageWidth float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newError(KindInvalid, fmt.Sprintf("malformed content on page %d", pageNum), fmt.Errorf("%v", r))
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil, letterWidth, nil
	}

	pageWidth = mediaBoxWidth(page)
	frags = mergeRuns(page.Content().Text)
	annots = linkAnnotations(page)
	return frags, annots, pageWidth, nil
}

// mediaBoxWidth resolves the page width, walking up the page tree since the
// media box may be inherited.
func mediaBoxWidth(page pdf.Page) float64 {
	v := page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			if w := mb.Index(2).Float64() - mb.Index(0).Float64(); w > 0 {
				return w
			}
		}
		v = v.Key("Parent")
	}
	return letterWidth
}

// linkAnnotations collects the page's Link annotations with resolvable URLs.
func linkAnnotations(page pdf.Page) []LinkAnnotation {
	raw := page.V.Key("Annots")
	if raw.Kind() != pdf.Array {
		return nil
	}

	var annots []LinkAnnotation
	for i := 0; i < raw.Len(); i++ {
		annot := raw.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}
		url := annotationURI(annot)
		if url == "" {
			continue
		}

		rect := annot.Key("Rect")
		la := LinkAnnotation{URL: url}
		if rect.Kind() == pdf.Array && rect.Len() == 4 {
			la.X1 = rect.Index(0).Float64()
			la.Y1 = rect.Index(1).Float64()
			la.X2 = rect.Index(2).Float64()
			la.Y2 = rect.Index(3).Float64()
		}
		annots = append(annots, la)
	}
	return annots
}

// annotationURI resolves a link target from the action dictionary or a
// direct URI entry.
func annotationURI(annot pdf.Value) string {
	if uri := annot.Key("A").Key("URI"); uri.Kind() == pdf.String {
		return uri.RawString()
	}
	if uri := annot.Key("URI"); uri.Kind() == pdf.String {
		return uri.RawString()
	}
	return ""
}

// mergeRuns groups the interpreter's per-glyph text elements into word-level
// fragments: a run continues while it stays on the same baseline and the
// horizontal gap stays under roughly one em.
func mergeRuns(texts []pdf.Text) []Fragment {
	var frags []Fragment
	var cur *Fragment
	var lastEnd float64

	flush := func() {
		if cur != nil && strings.TrimSpace(cur.Text) != "" {
			frags = append(frags, *cur)
		}
		cur = nil
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		fs := t.FontSize
		if fs <= 0 {
			fs = 10
		}

		sameRun := cur != nil &&
			math.Abs(t.Y-cur.Y) < 0.5 &&
			t.X >= lastEnd-fs*0.2 &&
			t.X-lastEnd <= fs

		if sameRun {
			if t.X-lastEnd > fs*0.25 {
				cur.Text += " "
			}
			cur.Text += t.S
			if end := t.X + t.W; end > lastEnd {
				lastEnd = end
			}
			cur.Width = lastEnd - cur.X
			if fs > cur.Height {
				cur.Height = fs
			}
			continue
		}

		flush()
		cur = &Fragment{Text: t.S, X: t.X, Y: t.Y, Width: t.W, Height: fs}
		lastEnd = t.X + t.W
	}
	flush()
	return frags
}
