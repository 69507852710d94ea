package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esgpipe/esgpipe/constants"
)

func TestLedgerLifecycle(t *testing.T) {
	ctx := context.Background()
	led, err := Open(ctx, filepath.Join(t.TempDir(), "runs.db"), nil)
	require.NoError(t, err)
	defer func() { _ = led.Close() }()

	id := led.Begin(ctx, constants.RunKindExtract, "acme-2023")
	require.NotEmpty(t, id)
	led.Finish(ctx, id, constants.RunStatusSucceeded, 3, 12, nil)

	failedID := led.Begin(ctx, constants.RunKindCompare, "common_metrics_environmental_a_b")
	led.Finish(ctx, failedID, constants.RunStatusFailed, 0, 0, errors.New("oracle unavailable"))

	runs, err := led.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byID := map[string]Run{}
	for _, r := range runs {
		byID[r.ID] = r
	}

	ok := byID[id]
	assert.Equal(t, constants.RunKindExtract, ok.Kind)
	assert.Equal(t, constants.RunStatusSucceeded, ok.Status)
	assert.Equal(t, 3, ok.Chunks)
	assert.Equal(t, 12, ok.Records)
	assert.Empty(t, ok.Error)
	require.NotNil(t, ok.FinishedAt)

	failed := byID[failedID]
	assert.Equal(t, constants.RunStatusFailed, failed.Status)
	assert.Equal(t, "oracle unavailable", failed.Error)
}

func TestNilLedgerIsNoOp(t *testing.T) {
	ctx := context.Background()
	var led *Ledger

	assert.Empty(t, led.Begin(ctx, constants.RunKindExtract, "x"))
	led.Finish(ctx, "", constants.RunStatusSucceeded, 0, 0, nil)
	runs, err := led.Recent(ctx, 5)
	assert.NoError(t, err)
	assert.Nil(t, runs)
	assert.NoError(t, led.Close())
}
