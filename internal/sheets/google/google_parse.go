package google

import (
	"fmt"
	"strings"
)

// findRow returns the 1-based sheet row whose first cell equals id, or -1.
// The header row never matches.
func findRow(values [][]any, id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i, row := range values {
		if i == 0 || len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == id {
			return i + 1
		}
	}
	return -1
}

// rowRange covers width cells of row n starting at column A.
func rowRange(tab string, n, width int) string {
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%s!A%d:%s%d", tab, n, column(width), n)
}

// column returns the A1 letters of a 1-based column index.
func column(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

func wholeRow(tab string, n int) string {
	return fmt.Sprintf("%s!%d:%d", tab, n, n)
}
