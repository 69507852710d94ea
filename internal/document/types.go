package document

import "context"

// Page is the extracted text of a single page. Number is the absolute,
// 1-based page number within the original report. Text may be empty
// (image-only pages); downstream stages must tolerate that.
type Page struct {
	Number int
	Text   string
}

// Chunk is a contiguous, non-overlapping window of pages from a report.
type Chunk struct {
	Index int
	Pages []Page
}

// StartPage returns the absolute number of the chunk's first page.
func (c Chunk) StartPage() int {
	if len(c.Pages) == 0 {
		return 0
	}
	return c.Pages[0].Number
}

// EndPage returns the absolute number of the chunk's last page.
func (c Chunk) EndPage() int {
	if len(c.Pages) == 0 {
		return 0
	}
	return c.Pages[len(c.Pages)-1].Number
}

// Text concatenates the chunk's page texts in page order.
func (c Chunk) Text() string {
	var b []byte
	for i, p := range c.Pages {
		if i > 0 {
			b = append(b, '\n', '\n')
		}
		b = append(b, p.Text...)
	}
	return string(b)
}

// PageSource is the external collaborator that turns a report file into
// ordered page texts.
type PageSource interface {
	ExtractPages(ctx context.Context, path string) ([]Page, error)
}
