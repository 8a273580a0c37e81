package survey

import "strings"

// SchemaReport describes how a sheet header lines up with the question columns.
type SchemaReport struct {
	// Missing lists question columns absent from the header, in dimension order.
	Missing []string `json:"missing,omitempty"`
	// Unknown lists header columns that are not question columns, in header order.
	Unknown []string `json:"unknown,omitempty"`
}

// Complete reports whether every question column is present.
func (s SchemaReport) Complete() bool {
	return len(s.Missing) == 0
}

// InspectHeader compares a header row against the fixed question columns.
// Blank header cells are skipped.
func InspectHeader(header []string) SchemaReport {
	present := make(map[string]bool, len(header))
	var report SchemaReport

	for _, column := range header {
		if strings.TrimSpace(column) == "" {
			continue
		}
		present[column] = true
		if _, ok := DimensionOf(column); !ok {
			report.Unknown = append(report.Unknown, column)
		}
	}

	for _, key := range QuestionKeys() {
		if !present[key] {
			report.Missing = append(report.Missing, key)
		}
	}

	return report
}
