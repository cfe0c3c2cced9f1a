// Package hexdump renders an assembled byte stream for inspection, either
// as plain text or as an interactive tview byte browser. It is a pure
// collaborator over the encoder's output: it never touches the encoding
// or label-resolution logic, only the finished bytes and the per-
// instruction (offset, length) table the encoder records alongside them.
package hexdump

import (
	"fmt"
	"strings"
)

// DefaultBytesPerLine matches the teacher debugger's memory view width.
const DefaultBytesPerLine = 16

// Format renders data as rows of "OFFSET: XX XX ... XX  ascii", following
// the row layout of the teacher's debugger memory view (address, hex
// columns, two-space gutter, ASCII column with '.' for non-printable
// bytes).
func Format(data []byte, bytesPerLine int) string {
	if bytesPerLine <= 0 {
		bytesPerLine = DefaultBytesPerLine
	}

	var sb strings.Builder
	for row := 0; row < len(data); row += bytesPerLine {
		end := row + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		chunk := data[row:end]

		fmt.Fprintf(&sb, "%08X: ", row)

		hexCols := make([]string, bytesPerLine)
		ascii := make([]byte, 0, bytesPerLine)
		for col := 0; col < bytesPerLine; col++ {
			if col >= len(chunk) {
				hexCols[col] = "  "
				continue
			}
			b := chunk[col]
			hexCols[col] = fmt.Sprintf("%02X", b)
			if b >= 32 && b < 127 {
				ascii = append(ascii, b)
			} else {
				ascii = append(ascii, '.')
			}
		}

		sb.WriteString(strings.Join(hexCols, " "))
		sb.WriteString("  ")
		sb.Write(ascii)
		sb.WriteByte('\n')
	}
	return sb.String()
}
