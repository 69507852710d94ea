package metrics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esgpipe/esgpipe/internal/common"
)

func sampleTable() Table {
	return Table{
		Document: "acme-2023",
		Records: []Record{
			{MetricName: "Scope 1", Value: "100", Unit: "tCO2e", Year: "2023", Category: "Environmental", Source: "acme-2023.pdf - page 1"},
			{MetricName: "Scope 1", Value: json.Number("100"), Unit: "tCO2e", Year: json.Number("2023"), Category: "Environmental", Source: "acme-2023.pdf - page 6"},
			{MetricName: "Women in workforce", Value: "44", Unit: "%", Year: "2023", Category: "Social", Source: "acme-2023.pdf - page 11"},
		},
	}
}

func TestTableCSVRoundTrip(t *testing.T) {
	table := sampleTable()

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])

	got, err := ReadTableCSV(&buf, "acme-2023")
	require.NoError(t, err)
	assert.Equal(t, "acme-2023", got.Document)
	require.Len(t, got.Records, 3)

	// Duplicates survive; order is preserved; values come back as strings.
	assert.Equal(t, "Scope 1", got.Records[0].MetricName)
	assert.Equal(t, "Scope 1", got.Records[1].MetricName)
	assert.Equal(t, "100", CellString(got.Records[1].Value))
	assert.Equal(t, "acme-2023.pdf - page 11", got.Records[2].Source)
}

func TestTableCSVProjectsMissingFields(t *testing.T) {
	table := Table{
		Document: "sparse",
		Records: []Record{
			// An unparsed synthetic record: only category/source after
			// normalization; raw_output and source_page are not columns.
			{Category: "Environmental", Source: "sparse.pdf - page 3", SourcePage: 3, RawOutput: "I found nothing."},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))

	got, err := ReadTableCSV(&buf, "sparse")
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Empty(t, got.Records[0].MetricName)
	assert.Nil(t, got.Records[0].Value)
	assert.Equal(t, "Environmental", got.Records[0].Category)
	assert.Empty(t, got.Records[0].RawOutput, "raw output must not leak into the artifact")
}

func TestReadTableCSVMissingColumn(t *testing.T) {
	csv := "metric_name,value,unit,year\nScope 1,100,tCO2e,2023\n"
	_, err := ReadTableCSV(strings.NewReader(csv), "broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Contains(t, err.Error(), "category")
}

func TestReadTableCSVExtraColumnsIgnored(t *testing.T) {
	csv := "metric_name,value,unit,year,category,source,confidence\nScope 1,100,tCO2e,2023,Environmental,r.pdf - page 1,0.9\n"
	got, err := ReadTableCSV(strings.NewReader(csv), "extra")
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "Scope 1", got.Records[0].MetricName)
}

func TestReadTableCSVEmpty(t *testing.T) {
	_, err := ReadTableCSV(strings.NewReader(""), "empty")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestFilterCategory(t *testing.T) {
	table := sampleTable()
	assert.Len(t, table.FilterCategory("environmental"), 2)
	assert.Len(t, table.FilterCategory("SOCIAL"), 1)
	assert.Empty(t, table.FilterCategory("Governance"))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", CellString(nil))
	assert.Equal(t, "abc", CellString("abc"))
	assert.Equal(t, "100", CellString(json.Number("100")))
	assert.Equal(t, "100.5", CellString(json.Number("100.5")))
	assert.Equal(t, "100", CellString(float64(100)))
	assert.Equal(t, "3", CellString(3))
	assert.Equal(t, "true", CellString(true))
}
