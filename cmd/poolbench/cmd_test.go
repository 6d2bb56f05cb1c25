package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/objectpool/benchmarks"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestListCmd(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	for _, name := range benchmarks.Names() {
		assert.Contains(t, out, name)
	}
}

func TestRunCmd(t *testing.T) {
	out, err := execute(t, "run", "--size", "200", "--repeat", "1", "--workers", "2",
		"--variants", "bag,concurrent-queue", "--quiet")
	require.NoError(t, err)

	assert.Contains(t, out, "bag")
	assert.Contains(t, out, "concurrent-queue")
	assert.Contains(t, out, "baseline")
}

func TestRunCmd_WithProgress(t *testing.T) {
	_, err := execute(t, "run", "--size", "50", "--repeat", "2", "--variants", "stack")
	assert.NoError(t, err)
}

func TestRunCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown variant", []string{"run", "--variants", "heap", "-q"}},
		{"zero repeat", []string{"run", "--repeat", "0", "-q"}},
		{"zero size", []string{"run", "--size", "0", "--variants", "bag", "-q"}},
		{"bad log level", []string{"run", "--log-level", "loud", "-q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("DEBUG")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}
