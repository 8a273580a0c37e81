package survey

// Header returns the first row of the table, or nil for an empty table.
func (t RawTable) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// DataRows returns every row after the header.
func (t RawTable) DataRows() [][]string {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// BuildRecord zips one data row against the header. Columns the row does not
// reach are left out of the record; cells past the end of the header are dropped.
func BuildRecord(header, row []string) Record {
	record := make(Record, len(header))
	for i, column := range header {
		if i >= len(row) {
			break
		}
		record[column] = row[i]
	}
	return record
}

// BuildRecords converts every data row of the table into a Record.
func BuildRecords(table RawTable) []Record {
	rows := table.DataRows()
	if len(rows) == 0 {
		return nil
	}

	header := table.Header()
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, BuildRecord(header, row))
	}
	return records
}

// Answer classifies the value stored under key. Missing keys are AnswerNone.
func (r Record) Answer(key string) Answer {
	value, ok := r[key]
	if !ok {
		return AnswerNone
	}
	return Classify(value)
}
