package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupsJSON = `[
  {
    "common_metric": "GHG Emissions (Scope 1)",
    "dataset_1": [
      {"metric_name": "Scope 1 emissions", "value": "100", "unit": "tCO2e", "year": "2023", "category": "Environmental", "source": "a.pdf - page 1"}
    ],
    "dataset_2": [
      {"metric_name": "Direct GHG", "value": 95, "unit": "tCO2e", "year": 2023, "category": "Environmental", "source": "b.pdf - page 4"}
    ]
  },
  {
    "common_metric": "Water Use",
    "dataset_2": [
      {"metric_name": "Water withdrawal", "value": "12", "unit": "ML", "year": "2023", "category": "Environmental", "source": "b.pdf - page 9"}
    ],
    "dataset_1": []
  }
]`

func TestDecodeGroups(t *testing.T) {
	groups, err := DecodeGroups([]byte(groupsJSON))
	require.NoError(t, err)
	require.Len(t, groups, 2)

	first := groups[0]
	assert.Equal(t, "GHG Emissions (Scope 1)", first.CommonMetric)
	assert.Equal(t, []string{"dataset_1", "dataset_2"}, first.DatasetKeys())
	require.Len(t, first.Datasets["dataset_1"], 1)
	assert.Equal(t, "Scope 1 emissions", first.Datasets["dataset_1"][0].MetricName)
	assert.Equal(t, "95", CellString(first.Datasets["dataset_2"][0].Value))

	second := groups[1]
	assert.Empty(t, second.Datasets["dataset_1"])
	assert.Len(t, second.Datasets["dataset_2"], 1)
}

func TestDecodeGroupsSingleObject(t *testing.T) {
	one := `{"common_metric": "Energy", "dataset_1": [], "dataset_2": []}`
	groups, err := DecodeGroups([]byte(one))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Energy", groups[0].CommonMetric)
}

func TestDecodeGroupsRejectsNonGroups(t *testing.T) {
	_, err := DecodeGroups([]byte(`"just a string"`))
	require.Error(t, err)
}

func TestDecodeGroupsIgnoresUnknownKeys(t *testing.T) {
	raw := `[{"common_metric": "X", "dataset_1": [], "explanation": "ignore me"}]`
	groups, err := DecodeGroups([]byte(raw))
	require.NoError(t, err)
	require.Len(t, groups, 1)
	_, hasExplanation := groups[0].Datasets["explanation"]
	assert.False(t, hasExplanation)
}
