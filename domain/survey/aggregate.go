// Package survey turns the questionnaire's response sheet into per-dimension
// yes/no tallies.
package survey

// Aggregate counts every response in the table.
//
// A table with no header or no data rows yields ZeroAggregate. Otherwise each
// data row is one response; for each dimension every one of its five question
// columns holding "Ya" adds to Yes and every one holding "Tidak" adds to No, so
// a single response contributes up to five answers per dimension. Any other
// value, including a missing cell, is ignored. Aggregate never fails and does
// not modify the table.
func Aggregate(table RawTable) AggregateResult {
	if len(table) < 2 {
		return ZeroAggregate()
	}
	return AggregateRecords(BuildRecords(table))
}

// AggregateRecords counts already-zipped records. The total is len(records).
func AggregateRecords(records []Record) AggregateResult {
	result := ZeroAggregate()
	if len(records) == 0 {
		return result
	}

	result.TotalResponses = len(records)
	for _, d := range Dimensions {
		keys := d.Keys()
		tally := result.Dimensions[d]
		for _, record := range records {
			for _, key := range keys {
				switch record.Answer(key) {
				case AnswerYes:
					tally.Yes++
				case AnswerNo:
					tally.No++
				}
			}
		}
		result.Dimensions[d] = tally
	}

	return result
}
