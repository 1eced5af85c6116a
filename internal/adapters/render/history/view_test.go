package history

import (
	"testing"
	"time"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmptyHistory(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Recent Commands")
	assert.Contains(t, output, "records: 0")
	assert.Contains(t, output, "No commands recorded yet.")
}

func TestRenderSingleRecord(t *testing.T) {
	now := time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC)

	output, err := Render([]domain.CommandRecord{
		{
			Command:       "sync",
			CorrelationID: "run-42",
			Tagged:        true,
			DurationUS:    2_350_000,
			InitUS:        900,
			Retries:       1,
			StartedAt:     now.Add(-10 * time.Minute),
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "records: 1")
	assert.Contains(t, output, "sync (tagged)")
	assert.Contains(t, output, "2.35s")
	assert.Contains(t, output, "init 900µs")
	assert.Contains(t, output, "1 retry")
	assert.Contains(t, output, "run-42")
	assert.Contains(t, output, "10:50:00")
	assert.NotContains(t, output, "failed")
}

func TestRenderMarksFailures(t *testing.T) {
	now := time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC)

	output, err := Render([]domain.CommandRecord{
		{Command: "info", DurationUS: 1500, StartedAt: now, Failed: true},
		{Command: "changes", DurationUS: 12_000, StartedAt: now.Add(-time.Minute), Retries: 3},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "records: 2")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "3 retries")
	assert.Contains(t, output, "1ms")
	assert.Contains(t, output, "12ms")
}

func TestRenderShowsDateForOlderRecords(t *testing.T) {
	now := time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC)

	output, err := Render([]domain.CommandRecord{
		{Command: "tickets", StartedAt: now.Add(-3 * 24 * time.Hour)},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "11:00:00 22 Aug")
}
