package writer

import (
	"bytes"
	"strings"
)

// byteOrderMark makes spreadsheet tools decode the file as UTF-8
const byteOrderMark = "\uFEFF"

// EncodeCSV renders rows as comma-separated text with a leading BOM. Every field
// is quoted and embedded quotes are doubled.
func EncodeCSV(rows [][]string) []byte {
	var buf bytes.Buffer
	buf.WriteString(byteOrderMark)
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
