package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/objectpool/benchmarks"
)

func sampleReport() *benchmarks.Report {
	phases := func(d time.Duration) map[string]time.Duration {
		m := make(map[string]time.Duration, len(benchmarks.Phases))
		for _, p := range benchmarks.Phases {
			m[p] = d
		}
		return m
	}

	return &benchmarks.Report{
		Config:  benchmarks.Config{Size: 1000, Workers: 4},
		Repeats: 2,
		Rows: []benchmarks.Row{
			{Rank: 1, Variant: "bag", Phases: phases(time.Millisecond), Total: 4 * time.Millisecond},
			{Rank: 2, Variant: "stack", Phases: phases(2 * time.Millisecond), Total: 8 * time.Millisecond},
			{Rank: 3, Variant: "queue", Phases: phases(3 * time.Millisecond), Total: 12 * time.Millisecond},
			{Rank: 4, Variant: "channel", Phases: phases(4 * time.Millisecond), Total: 16 * time.Millisecond},
		},
	}
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, sampleReport()))

	out := buf.String()
	for _, want := range []string{"🥇", "🥈", "🥉", "bag", "channel", "baseline", "2.00x", "4.00x", "size=1000"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "Fastest: bag")
}

func TestRenderReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, renderReport(&buf, &benchmarks.Report{}))
}

func TestRenderList(t *testing.T) {
	var buf bytes.Buffer
	renderList(&buf, []string{"bag", "stack"})

	assert.Contains(t, buf.String(), "- bag")
	assert.Contains(t, buf.String(), "- stack")
}

func TestRankIcon(t *testing.T) {
	assert.Equal(t, "🥇", rankIcon(1))
	assert.Equal(t, "🥉", rankIcon(3))
	assert.Equal(t, "7", rankIcon(7))
}

func TestVsFastest(t *testing.T) {
	assert.Equal(t, "baseline", vsFastest(time.Second, time.Second, 1))
	assert.Equal(t, "1.50x", vsFastest(3*time.Second, 2*time.Second, 2))
	assert.Equal(t, "baseline", vsFastest(time.Second, 0, 2))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0"},
		{500 * time.Nanosecond, "500ns"},
		{1500 * time.Nanosecond, "1.5µs"},
		{2500 * time.Microsecond, "2.50ms"},
		{1500 * time.Millisecond, "1.50s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}
