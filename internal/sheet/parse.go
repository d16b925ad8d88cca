// Package sheet turns a published spreadsheet export into header-keyed records.
//
// The parser is deliberately forgiving: spreadsheet exports mix comma and tab
// separators, CRLF and LF line endings, and occasionally ship with a dangling
// quote. None of these are errors here; the parser always terminates with a
// best-effort matrix and leaves shape problems to [ToRecords].
package sheet

import "strings"

// Parse splits delimited text into rows of cells.
//
// Outside quotes, ',' and '\t' end a field, '\r' and '\n' end a row ("\r\n"
// counts once). A doubled quote inside a quoted field yields one literal '"'.
// Lines that carry no cells at all are skipped, so trailing blank lines never
// produce an empty row. An unterminated quote swallows the rest of the input.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	flushField := func() {
		row = append(row, field.String())
		field.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == '"' {
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
			continue
		}

		if inQuotes {
			field.WriteByte(c)
			continue
		}

		switch c {
		case ',', '\t':
			flushField()
		case '\r', '\n':
			if field.Len() > 0 || len(row) > 0 {
				flushField()
				rows = append(rows, row)
				row = nil
			}
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		flushField()
		rows = append(rows, row)
	}

	return rows
}
