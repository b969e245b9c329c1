package parser

import "strings"

// SplitRecords tokenizes CSV text into rows of trimmed fields.
//
// Unlike encoding/csv it never fails: a newline inside a quoted field is
// folded into a single space (banks wrap addresses inside descriptions),
// stray quotes just toggle quoted mode, and rows made only of empty fields
// are dropped.
func SplitRecords(text string) [][]string {
	var (
		records  [][]string
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)

	endField := func() {
		fields = append(fields, strings.TrimSpace(cur.String()))
		cur.Reset()
	}
	endRecord := func() {
		endField()
		if !allEmpty(fields) {
			records = append(records, fields)
		}
		fields = nil
	}

	n := len(text)
	for i := 0; i < n; i++ {
		ch := text[i]

		if inQuotes {
			switch ch {
			case '"':
				if i+1 < n && text[i+1] == '"' {
					cur.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			case '\r':
				cur.WriteByte(' ')
				if i+1 < n && text[i+1] == '\n' {
					i++
				}
			case '\n':
				cur.WriteByte(' ')
			default:
				cur.WriteByte(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\r':
			if i+1 < n && text[i+1] == '\n' {
				i++
			}
			endRecord()
		case '\n':
			endRecord()
		default:
			cur.WriteByte(ch)
		}
	}

	// Last record without a trailing newline.
	if cur.Len() > 0 || len(fields) > 0 {
		endRecord()
	}

	return records
}

func allEmpty(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
