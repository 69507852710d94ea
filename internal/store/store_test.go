package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esgpipe/esgpipe/internal/common"
	"github.com/esgpipe/esgpipe/internal/metrics"
)

func newTableStore(t *testing.T) *TableStore {
	t.Helper()
	s, err := NewTableStore(filepath.Join(t.TempDir(), "extracted_results"), nil)
	require.NoError(t, err)
	return s
}

func TestTableStoreRoundTrip(t *testing.T) {
	s := newTableStore(t)

	table := metrics.Table{
		Document: "acme-2023",
		Records: []metrics.Record{
			{MetricName: "Scope 1", Value: "100", Unit: "tCO2e", Year: "2023", Category: "Environmental", Source: "acme-2023.pdf - page 1"},
		},
	}

	assert.False(t, s.Exists("acme-2023"))
	_, ok, err := s.Load("acme-2023")
	require.NoError(t, err)
	assert.False(t, ok)

	dst, err := s.Store(table)
	require.NoError(t, err)
	assert.Equal(t, s.Path("acme-2023"), dst)
	assert.True(t, s.Exists("acme-2023"))

	got, ok, err := s.Load("acme-2023")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "Scope 1", got.Records[0].MetricName)

	stems, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"acme-2023"}, stems)
}

func TestTableStoreMalformedArtifact(t *testing.T) {
	s := newTableStore(t)
	require.NoError(t, os.WriteFile(s.Path("broken"), []byte("not,a,table\n1,2,3\n"), 0o644))

	_, ok, err := s.Load("broken")
	assert.True(t, ok, "artifact is present even though it is malformed")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCompareKey(t *testing.T) {
	// Order-insensitive, lowercased category, spaces escaped.
	a := Key("Environmental", []string{"beta report", "alpha"})
	b := Key("Environmental", []string{"alpha", "beta report"})
	assert.Equal(t, a, b)
	assert.Equal(t, "common_metrics_environmental_alpha_beta_report", a)
}

func TestCompareStoreRoundTrip(t *testing.T) {
	s, err := NewCompareStore(filepath.Join(t.TempDir(), "cached_json"), nil)
	require.NoError(t, err)

	key := Key("Social", []string{"a", "b"})
	_, ok, err := s.Load(key)
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte(`[{"common_metric":"X","dataset_1":[],"dataset_2":[]}]`)
	dst, err := s.Store(key, payload)
	require.NoError(t, err)
	assert.Equal(t, s.Path(key), dst)

	got, ok, err := s.Load(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}
