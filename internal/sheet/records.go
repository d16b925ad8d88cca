package sheet

// Record maps header text to the cell value of one data row.
type Record map[string]string

// Get returns the value stored under header, or "" when the header is absent.
func (r Record) Get(header string) string {
	return r[header]
}

// ToRecords treats the first row of matrix as the header set and zips every
// following row against it.
//
// Missing trailing cells become "", cells beyond the header width are dropped,
// and duplicate header names keep the value of the last matching column.
// An empty matrix yields nil headers and nil records; callers treat that as
// "no data".
func ToRecords(matrix [][]string) ([]string, []Record) {
	if len(matrix) == 0 {
		return nil, nil
	}

	headers := make([]string, len(matrix[0]))
	copy(headers, matrix[0])

	records := make([]Record, 0, len(matrix)-1)
	for _, row := range matrix[1:] {
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}

	return headers, records
}

// UniqueHeaders returns headers with positional duplicates removed, keeping
// the first occurrence of each name.
func UniqueHeaders(headers []string) []string {
	seen := make(map[string]struct{}, len(headers))
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
