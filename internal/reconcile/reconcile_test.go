package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esgpipe/esgpipe/internal/metrics"
)

func TestReconcileCleanJSON(t *testing.T) {
	records := []metrics.Record{
		{MetricName: "Scope 1 emissions", Value: "1200", Unit: "tCO2e", Year: "2023", Category: "Environmental"},
		{MetricName: "Board independence", Value: json.Number("60"), Unit: "%", Year: json.Number("2023"), Category: "Governance"},
	}
	raw, err := json.Marshal(records)
	require.NoError(t, err)

	got := Reconcile(string(raw), 4)
	require.Len(t, got, 2)
	for i, rec := range got {
		assert.Equal(t, records[i].MetricName, rec.MetricName)
		assert.Equal(t, metrics.CellString(records[i].Value), metrics.CellString(rec.Value))
		assert.Equal(t, records[i].Unit, rec.Unit)
		assert.Equal(t, metrics.CellString(records[i].Year), metrics.CellString(rec.Year))
		assert.Equal(t, records[i].Category, rec.Category)
		assert.Equal(t, 4, rec.SourcePage)
		assert.False(t, rec.Unparsed())
	}
}

func TestReconcileFencedBlock(t *testing.T) {
	raw := "Sure, here are the metrics you asked for:\n" +
		"```json\n" +
		`[{"metric_name":"Water withdrawal","value":3400,"unit":"ML","year":2022,"category":"environmental"}]` +
		"\n```\n" +
		"Let me know if you need anything else."

	got := Reconcile(raw, 7)
	require.Len(t, got, 1)
	assert.Equal(t, "Water withdrawal", got[0].MetricName)
	assert.Equal(t, "3400", metrics.CellString(got[0].Value))
	assert.Equal(t, "ML", got[0].Unit)
	assert.Equal(t, "2022", metrics.CellString(got[0].Year))
	assert.Equal(t, "environmental", got[0].Category)
	assert.Equal(t, 7, got[0].SourcePage)
}

func TestReconcileUntaggedFence(t *testing.T) {
	raw := "```\n[{\"metric_name\":\"LTIFR\",\"value\":\"0.8\",\"unit\":\"rate\",\"year\":\"2023\",\"category\":\"Social\"}]\n```"
	got := Reconcile(raw, 2)
	require.Len(t, got, 1)
	assert.Equal(t, "LTIFR", got[0].MetricName)
}

func TestReconcileEmbeddedSpan(t *testing.T) {
	raw := `Based on the report text, the relevant figure is {"metric_name":"Renewable share","value":"42","unit":"%","year":"2023","category":"Environmental"} as disclosed on that page.`
	got := Reconcile(raw, 9)
	require.Len(t, got, 1)
	assert.Equal(t, "Renewable share", got[0].MetricName)
	assert.Equal(t, 9, got[0].SourcePage)
}

func TestReconcileSingleObjectWraps(t *testing.T) {
	raw := `{"metric_name":"Gender pay gap","value":"4.2","unit":"%","year":"2023","category":"Social"}`
	got := Reconcile(raw, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "Gender pay gap", got[0].MetricName)
}

func TestReconcileGarbageNeverPanics(t *testing.T) {
	garbage := []string{
		"I could not find any sustainability metrics in this text.",
		"[{\"metric_name\": truncated mid-stre",
		"```json\nnot json at all\n```",
		"42",
		"null",
		"\"just a string\"",
	}
	for _, raw := range garbage {
		t.Run(raw, func(t *testing.T) {
			got := Reconcile(raw, 5)
			require.Len(t, got, 1)
			assert.Equal(t, raw, got[0].RawOutput, "raw text must be preserved verbatim")
			assert.Empty(t, got[0].MetricName)
			assert.Equal(t, 5, got[0].SourcePage)
		})
	}
}

func TestReconcileSkipsNonObjectItems(t *testing.T) {
	raw := `[1, "two", {"metric_name":"Energy use","value":"10","unit":"GWh","year":"2023","category":"Environmental"}, null]`
	got := Reconcile(raw, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Energy use", got[0].MetricName)
}

func TestReconcileEmptyResponse(t *testing.T) {
	assert.Empty(t, Reconcile("", 4))
	assert.Empty(t, Reconcile("   \n\t ", 4))
}

func TestReconcileEmptyArray(t *testing.T) {
	// A valid empty array is a parsed non-answer, not a failure; no
	// synthetic record is produced.
	got := Reconcile("[]", 6)
	assert.Empty(t, got)
}

func TestRecoverJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{name: "direct array", raw: `[{"a":1}]`, want: `[{"a":1}]`, ok: true},
		{name: "fenced wins over broken direct", raw: "prose ```json\n[1,2]\n``` prose", want: "[1,2]", ok: true},
		{name: "span fallback", raw: `leading text {"a":1} trailing`, want: `{"a":1}`, ok: true},
		{name: "scalar rejected", raw: "42", ok: false},
		{name: "garbage", raw: "nothing here", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RecoverJSON(tt.raw)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, string(got))
			}
		})
	}
}
