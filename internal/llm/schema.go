package llm

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildMetricArraySchema returns a JSON-Schema (draft 2020-12 subset) for
// the array of metric records the extraction prompt asks for. It checks
// presence of the expected keys only; the oracle may answer with strings or
// numbers and we keep whatever it produced.
func BuildMetricArraySchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"metric_name": map[string]any{},
				"value":       map[string]any{},
				"unit":        map[string]any{},
				"year":        map[string]any{},
				"category":    map[string]any{},
			},
			"required": []string{"metric_name", "value", "unit", "year", "category"},
		},
	}
}

// ValidateJSONAgainstSchema validates a JSON document against a schema given
// as a generic map. Callers treat failures as advisory: records that miss
// fields still flow through the pipeline, projected onto empty cells.
func ValidateJSONAgainstSchema(schema map[string]any, doc []byte) error {
	sb, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiled, err := jsonschema.CompileString("metrics.schema.json", string(sb))
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return compiled.Validate(v)
}
