package metrics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Group is one cross-document cluster of semantically equivalent metrics.
// Datasets maps the oracle's positional keys ("dataset_1", "dataset_2", …)
// to the matching records from each participating document, in
// oracle-assigned order.
type Group struct {
	CommonMetric string
	Datasets     map[string][]Record
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Datasets = make(map[string][]Record)
	for key, msg := range raw {
		if key == "common_metric" {
			if err := json.Unmarshal(msg, &g.CommonMetric); err != nil {
				return fmt.Errorf("common_metric: %w", err)
			}
			continue
		}
		if !strings.HasPrefix(key, "dataset_") {
			continue
		}
		var recs []Record
		if err := json.Unmarshal(msg, &recs); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		g.Datasets[key] = recs
	}
	return nil
}

// DatasetKeys returns the group's dataset keys ordered by positional index.
func (g Group) DatasetKeys() []string {
	keys := make([]string, 0, len(g.Datasets))
	for k := range g.Datasets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return datasetIndex(keys[i]) < datasetIndex(keys[j])
	})
	return keys
}

func datasetIndex(key string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(key, "dataset_"))
	if err != nil {
		return 0
	}
	return n
}

// DecodeGroups parses a reconciled comparison response. A single group
// object is accepted and wrapped as a one-element list.
func DecodeGroups(data []byte) ([]Group, error) {
	var groups []Group
	if err := json.Unmarshal(data, &groups); err == nil {
		return groups, nil
	}
	var one Group
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("decode comparison groups: %w", err)
	}
	return []Group{one}, nil
}
