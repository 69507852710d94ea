package metrics

import (
	"fmt"
	"strconv"

	"github.com/esgpipe/esgpipe/constants"
)

// Normalize standardizes the record's category against the ESG taxonomy and
// stamps the human-readable source citation. Anything that is not a
// case-insensitive match for Environmental, Social or Governance is coerced
// to Environmental; the second return reports whether that coercion
// happened so callers can surface the lossy mapping. No other field is
// touched.
func Normalize(r Record, documentName string) (Record, bool) {
	cat, matched := constants.Canonicalize(r.Category)
	r.Category = string(cat)

	page := "unknown"
	if r.SourcePage > 0 {
		page = strconv.Itoa(r.SourcePage)
	}
	r.Source = fmt.Sprintf("%s - page %s", documentName, page)

	return r, !matched
}
