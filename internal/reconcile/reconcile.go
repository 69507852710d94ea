// Package reconcile recovers structured metric records from raw oracle
// output. Model responses are best-effort text: sometimes clean JSON,
// sometimes JSON wrapped in code fences or prose, sometimes garbage. All
// recovery lives here; call sites never parse model text themselves.
package reconcile

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/esgpipe/esgpipe/internal/metrics"
)

var (
	fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	bracketSpan = regexp.MustCompile(`(?s)(\[.*\]|\{.*\})`)
)

// Reconcile turns raw oracle text into metric records, stamping each with
// sourcePage. Recovery order: the text as-is, then the first fenced code
// block, then the widest [...] or {...} span. A lone object wraps into a
// one-element list; array items that are not objects are skipped. When
// nothing parses, the output degrades to a single synthetic unparsed record
// carrying the raw text verbatim. An all-whitespace response yields no
// records at all; there is no text worth preserving. Reconcile never fails.
func Reconcile(raw string, sourcePage int) []metrics.Record {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if payload, ok := RecoverJSON(raw); ok {
		if records, ok := decodeRecords(payload); ok {
			for i := range records {
				records[i].SourcePage = sourcePage
			}
			return records
		}
	}
	return []metrics.Record{{RawOutput: raw, SourcePage: sourcePage}}
}

// RecoverJSON extracts the first parseable JSON array or object from model
// text. The second return is false when no candidate parses.
func RecoverJSON(raw string) ([]byte, bool) {
	trimmed := strings.TrimSpace(raw)

	candidates := make([]string, 0, 3)
	candidates = append(candidates, trimmed)
	if m := fencedBlock.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if m := bracketSpan.FindStringSubmatch(trimmed); m != nil {
		candidates = append(candidates, m[1])
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		// Only arrays and objects count as recovered structure; a bare
		// scalar like "42" is a non-answer.
		if c[0] != '[' && c[0] != '{' {
			continue
		}
		if json.Valid([]byte(c)) {
			return []byte(c), true
		}
	}
	return nil, false
}

func decodeRecords(payload []byte) ([]metrics.Record, bool) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}

	switch t := v.(type) {
	case []any:
		records := make([]metrics.Record, 0, len(t))
		for _, item := range t {
			if obj, ok := item.(map[string]any); ok {
				records = append(records, metrics.FromObject(obj))
			}
		}
		return records, true
	case map[string]any:
		return []metrics.Record{metrics.FromObject(t)}, true
	default:
		return nil, false
	}
}
