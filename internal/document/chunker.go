package document

import (
	"fmt"

	"github.com/esgpipe/esgpipe/internal/common"
)

// Split partitions pages into ordered windows of at most pagesPerPart pages.
// Window i holds pages [i*pagesPerPart, min((i+1)*pagesPerPart, len(pages))),
// in original order, so the windows cover the report exactly with no gaps or
// overlaps.
func Split(pages []Page, pagesPerPart int) ([]Chunk, error) {
	if len(pages) == 0 {
		return nil, common.NewAppError("CHUNK_ERROR", "document has zero pages", common.ErrInvalidInput)
	}
	if pagesPerPart < 1 {
		return nil, common.NewAppError("CHUNK_ERROR",
			fmt.Sprintf("pages per part must be positive, got %d", pagesPerPart),
			common.ErrInvalidInput)
	}

	chunks := make([]Chunk, 0, (len(pages)+pagesPerPart-1)/pagesPerPart)
	for start := 0; start < len(pages); start += pagesPerPart {
		end := start + pagesPerPart
		if end > len(pages) {
			end = len(pages)
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Pages: pages[start:end],
		})
	}
	return chunks, nil
}
