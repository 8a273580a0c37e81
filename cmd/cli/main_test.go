package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuesioner/domain/survey"
)

const responsesCSV = "timestamp,nama,A1,A2,G1\n" +
	"2025-01-01T10:00:00.000Z,Budi,Ya,Tidak,Ya\n" +
	"2025-01-01T11:00:00.000Z,Sari,Ya\n"

func writeResponses(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "responses.csv")
	require.NoError(t, os.WriteFile(path, []byte(responsesCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTallyFromFile(t *testing.T) {
	out, err := run(t, "tally", "--file", writeResponses(t))
	require.NoError(t, err)

	var result survey.AggregateResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.TotalResponses)
	assert.Equal(t, survey.Tally{Yes: 2, No: 1}, result.Tally(survey.DimensionAdaptation))
	assert.Equal(t, survey.Tally{Yes: 1}, result.Tally(survey.DimensionGoal))
}

func TestTallyPretty(t *testing.T) {
	out, err := run(t, "tally", "-f", writeResponses(t), "--pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"totalResponses\": 2")
}

func TestTallyRequiresEndpointWithoutFile(t *testing.T) {
	t.Setenv("SHEET_ENDPOINT_URL", "")
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := run(t, "tally")
	assert.Error(t, err)
}

func TestChartFromFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	stdout, err := run(t, "chart", "--file", writeResponses(t), "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 responses")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestChartWriteFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "chart.png")
	_, err := run(t, "chart", "--file", writeResponses(t), "--out", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write chart to "+out)
}

func TestExportFromFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.xlsx")
	_, err := run(t, "export", "--file", writeResponses(t), "-o", out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestReportFromFile(t *testing.T) {
	out, err := run(t, "report", "--file", writeResponses(t), "--title", "Rekap")
	require.NoError(t, err)
	assert.Contains(t, out, "# Rekap")
	assert.Contains(t, out, "| adaptation | 2 | 1 | 3 | 66.7% |")

	html, err := run(t, "report", "--file", writeResponses(t), "--html")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields([]string{"nama=Budi Santoso", "A1=Ya", "catatan=a=b", "kosong="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"nama":    "Budi Santoso",
		"A1":      "Ya",
		"catatan": "a=b",
		"kosong":  "",
	}, fields)

	_, err = parseFields([]string{"A1"})
	assert.Error(t, err)

	_, err = parseFields([]string{"=Ya"})
	assert.Error(t, err)
}
