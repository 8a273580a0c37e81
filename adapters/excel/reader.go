// Package excel loads exported response sheets from disk and writes tally reports.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"kuesioner/domain/survey"
	"kuesioner/internal"
)

const utf8BOM = "\ufeff"

// Reader loads a RawTable from an .xlsx or .csv export of the response sheet
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewReader creates a reader; the file type is taken from the extension
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// WithSheet selects a worksheet by name instead of the first one. Ignored for CSV.
func (r *Reader) WithSheet(sheet string) *Reader {
	r.sheet = sheet
	return r
}

// WithLogger sets the logger
func (r *Reader) WithLogger(logger *internal.Logger) *Reader {
	r.logger = logger
	return r
}

// ReadTable reads the first worksheet of an xlsx file, or a csv file
func ReadTable(path string) (survey.RawTable, error) {
	return NewReader(path).Read()
}

// ReadTableFromSheet reads a named worksheet of an xlsx file
func ReadTableFromSheet(path, sheet string) (survey.RawTable, error) {
	return NewReader(path).WithSheet(sheet).Read()
}

// Read loads the table. Header cells are trimmed; data cells are returned as stored
// so "Ya" and "Tidak" are matched exactly. An empty file gives an empty table.
func (r *Reader) Read() (survey.RawTable, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSV()
	default:
		rows, err = r.readExcel()
	}
	if err != nil {
		return nil, err
	}

	return r.toTable(rows), nil
}

func (r *Reader) readExcel() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.logger.Debug("[Excel] %s read in %.2fms (%d rows)", sheet,
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *Reader) readCSV() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[Excel] CSV read (%d rows)", len(rows))
	return rows, nil
}

// toTable trims the header row and leaves data rows untouched
func (r *Reader) toTable(rows [][]string) survey.RawTable {
	table := make(survey.RawTable, 0, len(rows))
	if len(rows) == 0 {
		return table
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		if i == 0 {
			cell = strings.TrimPrefix(cell, utf8BOM)
		}
		header[i] = strings.TrimSpace(cell)
	}
	table = append(table, header)

	table = append(table, rows[1:]...)

	r.logger.Info("[Excel] %s loaded (%d columns, %d responses)",
		filepath.Base(r.filePath), len(header), len(table)-1)
	return table
}
