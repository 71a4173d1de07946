package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pivotaxis/internal/app"
)

func TestParse(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{"-r", "sales", "-output", "JSON", "-layout", "reports", "more.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, []string{"reports", "more.hcl"}, cfg.ReportPaths)
	assert.Equal(t, "sales", cfg.ReportName)
	assert.Equal(t, app.OutputJSON, cfg.Output)
	assert.True(t, cfg.Layout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseWithoutPathsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "REPORT_PATH")
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	_, exit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"-bogus"}, "flag provided but not defined"},
		{"bad log level", []string{"-log-level", "trace", "r.hcl"}, "invalid log-level"},
		{"bad output", []string{"-output", "xml", "r.hcl"}, "invalid output"},
		{"missing settings", []string{"-config", "/nonexistent/pivotaxis.yaml", "r.hcl"}, "failed to read settings"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}

func TestParseSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pivotaxis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: [reports]\noutput: json\nlog_format: text\n"), 0o600))

	var out bytes.Buffer
	cfg, exit, err := Parse([]string{"-config", path, "-log-format", "json"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, []string{"reports"}, cfg.ReportPaths)
	assert.Equal(t, app.OutputJSON, cfg.Output)
	assert.Equal(t, "json", cfg.LogFormat, "flags set on the command line win")
}
