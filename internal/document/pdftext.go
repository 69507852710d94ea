package document

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/esgpipe/esgpipe/internal/common"
)

// PDFSource extracts per-page text from a PDF file using a pure-Go reader.
type PDFSource struct {
	logger *slog.Logger
}

var _ PageSource = (*PDFSource)(nil)

func NewPDFSource(logger *slog.Logger) *PDFSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFSource{logger: logger}
}

// ExtractPages returns one Page per PDF page, 1-based, in document order.
// Pages whose text cannot be extracted (scans, vector-only pages) come back
// with empty text rather than an error.
func (s *PDFSource) ExtractPages(ctx context.Context, path string) ([]Page, error) {
	start := time.Now()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("pdf.close_error", "path", path, "error", cerr)
		}
	}()

	total := r.NumPage()
	if total == 0 {
		return nil, common.NewAppError("PDF_ERROR", fmt.Sprintf("%q has zero pages", path), common.ErrInvalidInput)
	}

	pages := make([]Page, 0, total)
	empty := 0
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := ""
		page := r.Page(i)
		if !page.V.IsNull() {
			if t, err := page.GetPlainText(nil); err == nil {
				text = CleanText(t)
			} else {
				s.logger.Warn("pdf.page_text_error", "path", path, "page", i, "error", err)
			}
		}
		if text == "" {
			empty++
		}
		pages = append(pages, Page{Number: i, Text: text})
	}

	s.logger.Info("pdf.extract.ok",
		"path", path,
		"pages", total,
		"empty_pages", empty,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pages, nil
}

var spaceRun = regexp.MustCompile(`[ \t]+`)

// CleanText collapses whitespace runs so page text stays compact in prompts.
// Newlines survive; the models read layout hints from them.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
