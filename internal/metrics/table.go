package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/esgpipe/esgpipe/internal/common"
)

// Table is the ordered metric set for one document. Order follows chunk
// order then per-chunk record order; duplicates are kept on purpose, each
// occurrence is evidence.
type Table struct {
	Document string
	Records  []Record
}

// FilterCategory returns the records whose category equals the given label,
// compared case-insensitively. Record order is preserved.
func (t Table) FilterCategory(category string) []Record {
	var out []Record
	for _, r := range t.Records {
		if strings.EqualFold(r.Category, category) {
			out = append(out, r)
		}
	}
	return out
}

// WriteCSV writes the table with the fixed column order.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range t.Records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTableCSV parses a persisted table. The header must contain every
// expected column (extras are ignored); anything less means the artifact was
// not produced by this pipeline and the load fails with invalid input.
func ReadTableCSV(r io.Reader, document string) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return Table{}, common.NewAppError("TABLE_ERROR",
			fmt.Sprintf("%s: empty table artifact", document), common.ErrInvalidInput)
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return Table{}, common.NewAppError("TABLE_ERROR",
				fmt.Sprintf("%s: missing expected column %q", document, col), common.ErrInvalidInput)
		}
	}

	cell := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	t := Table{Document: document, Records: make([]Record, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		rec := Record{
			MetricName: cell(row, "metric_name"),
			Unit:       cell(row, "unit"),
			Category:   cell(row, "category"),
			Source:     cell(row, "source"),
		}
		if v := cell(row, "value"); v != "" {
			rec.Value = v
		}
		if y := cell(row, "year"); y != "" {
			rec.Year = y
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}
