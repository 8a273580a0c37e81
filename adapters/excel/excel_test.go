package excel

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"kuesioner/domain/survey"
	"kuesioner/internal"
)

var quietLogger = internal.NewLoggerWithWriter(internal.LogLevelError, io.Discard)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	path := filepath.Join(t.TempDir(), "responses.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "responses.csv", "\ufeff timestamp ,nama,A1,A2\n"+
		"2025-01-01T10:00:00.000Z,Budi,Ya,Tidak\n"+
		"2025-01-01T11:00:00.000Z,Sari,Ya\n"+
		"2025-01-01T12:00:00.000Z,Andi, Ya,Tidak\n")

	table, err := NewReader(path).WithLogger(quietLogger).Read()
	require.NoError(t, err)

	require.Len(t, table, 4)
	assert.Equal(t, []string{"timestamp", "nama", "A1", "A2"}, table.Header())
	assert.Equal(t, []string{"2025-01-01T11:00:00.000Z", "Sari", "Ya"}, table[2])
	assert.Equal(t, " Ya", table[3][2], "data cells must not be trimmed")

	result := survey.Aggregate(table)
	assert.Equal(t, 3, result.TotalResponses)
	assert.Equal(t, survey.Tally{Yes: 2, No: 2}, result.Tally(survey.DimensionAdaptation))
}

func TestReadEmptyCSV(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.NotNil(t, table)
	assert.Empty(t, table)
}

func TestReadMalformedCSV(t *testing.T) {
	path := writeFile(t, "broken.csv", "A1,A2\n\"Ya,Tidak\n")

	_, err := ReadTable(path)
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]interface{}{
		{"nama", "G1", "G2", "L1"},
		{"Budi", "Ya", "Ya", "Tidak"},
		{"Sari", "Tidak"},
	})

	table, err := NewReader(path).WithLogger(quietLogger).Read()
	require.NoError(t, err)

	require.Len(t, table, 3)
	assert.Equal(t, []string{"nama", "G1", "G2", "L1"}, table.Header())
	assert.Equal(t, []string{"Sari", "Tidak"}, table[2])

	result := survey.Aggregate(table)
	assert.Equal(t, survey.Tally{Yes: 2, No: 1}, result.Tally(survey.DimensionGoal))
	assert.Equal(t, survey.Tally{No: 1}, result.Tally(survey.DimensionLatency))
}

func TestReadXLSXNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Responses", [][]interface{}{
		{"I1"},
		{"Ya"},
	})

	table, err := NewReader(path).WithSheet("Responses").WithLogger(quietLogger).Read()
	require.NoError(t, err)
	assert.Equal(t, survey.RawTable{{"I1"}, {"Ya"}}, table)

	_, err = ReadTableFromSheet(path, "Missing")
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	result := survey.ZeroAggregate()
	result.TotalResponses = 4
	result.Dimensions[survey.DimensionAdaptation] = survey.Tally{Yes: 3, No: 1}
	result.Dimensions[survey.DimensionLatency] = survey.Tally{Yes: 1, No: 1}

	summary := survey.Summary{
		TotalResponses: 4,
		Dimensions: []survey.DimensionSummary{
			{Dimension: survey.DimensionAdaptation, Yes: 3, No: 1, Answered: 4, YesRate: 0.75},
			{Dimension: survey.DimensionLatency, Yes: 1, No: 1, Answered: 2, YesRate: 0.5},
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteReport(path, result, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.Equal(t, []string{"Dimension", "Ya", "Tidak", "Answered", "Yes rate"}, rows[0])
	assert.Equal(t, []string{"adaptation", "3", "1", "4", "0.75"}, rows[1])
	assert.Equal(t, []string{"goal", "0", "0", "0", "0"}, rows[2])
	assert.Equal(t, []string{"latency", "1", "1", "2", "0.5"}, rows[4])
	assert.Equal(t, []string{"Total responses", "4"}, rows[6])
}
