// Package extract produces per-page text for a PDF file, falling back to
// OCR on pages whose embedded text is missing or too short to be real
// content.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"unicode"

	"github.com/gen2brain/go-fitz"
	pdflib "github.com/ledongthuc/pdf"

	"github.com/moosang1125-png/dangwan/internal/ocr"
	"github.com/moosang1125-png/dangwan/internal/plan"
)

// ErrUnreadable marks a PDF that cannot be opened: missing, encrypted
// without a password, or corrupt. Fatal for that file only.
var ErrUnreadable = errors.New("unreadable pdf")

// DefaultMinChars is the non-whitespace character count below which a
// page's direct text is considered empty and sent to OCR.
const DefaultMinChars = 16

// Extractor reads a PDF page by page. Direct text extraction comes from
// the embedded content streams; pages below the threshold are rendered
// and handed to the OCR provider.
type Extractor struct {
	ocr      ocr.Provider
	minChars int
}

func New(provider ocr.Provider, minChars int) *Extractor {
	if provider == nil {
		provider = ocr.Noop{}
	}
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return &Extractor{ocr: provider, minChars: minChars}
}

// Pages returns the file's pages in order. Each call re-reads the file,
// so the sequence is restartable. A page whose OCR also yields nothing
// comes back with empty text rather than an error.
func (e *Extractor) Pages(ctx context.Context, path string) ([]plan.PageText, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	if total < 1 {
		return nil, fmt.Errorf("%w: %s: no pages", ErrUnreadable, path)
	}

	var render *fitz.Document
	defer func() {
		if render != nil {
			render.Close()
		}
	}()

	pages := make([]plan.PageText, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := directText(reader, i)
		if countNonSpace(text) >= e.minChars {
			pages = append(pages, plan.PageText{Page: i, Text: text, Source: plan.SourceDirect})
			continue
		}

		// Render lazily: most text PDFs never need it.
		if render == nil {
			if d, err := fitz.New(path); err == nil {
				render = d
			}
		}
		ocrText := ""
		if render != nil {
			if img, err := renderPNG(render, i-1); err == nil {
				t, err := e.ocr.Recognize(ctx, img)
				if err != nil && ctx.Err() != nil {
					return nil, ctx.Err()
				}
				if err == nil {
					ocrText = strings.TrimSpace(t)
				}
			}
		}
		if ocrText != "" {
			pages = append(pages, plan.PageText{Page: i, Text: ocrText, Source: plan.SourceOCR})
		} else {
			pages = append(pages, plan.PageText{Page: i, Text: text, Source: plan.SourceDirect})
		}
	}
	return pages, nil
}

// directText extracts a page's embedded text, preserving row structure so
// the detector can classify individual lines.
func directText(reader *pdflib.Reader, pageNum int) string {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		for _, word := range row.Content {
			line.WriteString(word.S)
		}
		s := strings.TrimSpace(line.String())
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s)
	}
	return b.String()
}

func renderPNG(doc *fitz.Document, pageIndex int) ([]byte, error) {
	img, err := doc.Image(pageIndex)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
