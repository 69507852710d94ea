// Package metrics holds the extracted-fact model: records, per-document
// tables, and cross-document comparison groups.
package metrics

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one extracted sustainability fact. Value and Year stay whatever
// type the oracle produced (string or number); nothing coerces them. A
// record with RawOutput set is a synthetic "unparsed" record wrapping model
// output no JSON could be recovered from.
type Record struct {
	MetricName string `json:"metric_name,omitempty"`
	Value      any    `json:"value,omitempty"`
	Unit       string `json:"unit,omitempty"`
	Year       any    `json:"year,omitempty"`
	Category   string `json:"category,omitempty"`
	Source     string `json:"source,omitempty"`
	SourcePage int    `json:"source_page,omitempty"`
	RawOutput  string `json:"raw_output,omitempty"`
}

// Columns is the persisted column order. Changing it breaks every cached
// table on disk.
var Columns = []string{"metric_name", "value", "unit", "year", "category", "source"}

// Unparsed reports whether this is a synthetic record carrying raw model
// output instead of structured fields.
func (r Record) Unparsed() bool {
	return r.RawOutput != ""
}

// Row projects the record onto Columns. Fields the oracle never supplied
// become empty cells; fields outside the fixed set (source_page, raw_output)
// are dropped.
func (r Record) Row() []string {
	return []string{
		r.MetricName,
		CellString(r.Value),
		r.Unit,
		CellString(r.Year),
		r.Category,
		r.Source,
	}
}

// FromObject builds a Record from a decoded JSON object, keeping Value and
// Year at their decoded types and rendering other fields as strings.
func FromObject(m map[string]any) Record {
	r := Record{
		MetricName: CellString(m["metric_name"]),
		Value:      m["value"],
		Unit:       CellString(m["unit"]),
		Year:       m["year"],
		Category:   CellString(m["category"]),
		Source:     CellString(m["source"]),
		RawOutput:  CellString(m["raw_output"]),
	}
	switch v := m["source_page"].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			r.SourcePage = int(n)
		}
	case float64:
		r.SourcePage = int(v)
	}
	return r
}

// CellString renders an oracle-supplied value for a tabular cell.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
