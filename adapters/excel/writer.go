package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"kuesioner/domain/survey"
)

// SummarySheet is the worksheet WriteReport fills
const SummarySheet = "Summary"

var reportHeaders = []interface{}{"Dimension", "Ya", "Tidak", "Answered", "Yes rate"}

// WriteReport saves the tally and its rates as an xlsx workbook with one Summary sheet
func WriteReport(path string, result survey.AggregateResult, summary survey.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SummarySheet, "A1", &reportHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rates := make(map[survey.Dimension]float64, len(summary.Dimensions))
	for _, ds := range summary.Dimensions {
		rates[ds.Dimension] = ds.YesRate
	}

	row := 2
	for _, d := range survey.Dimensions {
		tally := result.Tally(d)
		values := []interface{}{d.String(), tally.Yes, tally.No, tally.Answered(), rates[d]}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row: %w", d, err)
		}
		row++
	}

	totalCell, _ := excelize.CoordinatesToCellName(1, row+1)
	totals := []interface{}{"Total responses", result.TotalResponses}
	if err := f.SetSheetRow(SummarySheet, totalCell, &totals); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	if err := styleReport(f, row-1); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func styleReport(f *excelize.File, lastRow int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "E1", bold); err != nil {
		return err
	}

	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "E2", fmt.Sprintf("E%d", lastRow), percent); err != nil {
		return err
	}

	return f.SetColWidth(SummarySheet, "A", "A", 18)
}
