package output

import "strings"

// sanitizeCell guards against CSV injection by prefixing characters that
// could trigger formula execution in spreadsheet applications.
func sanitizeCell(val string) string {
	if len(val) == 0 {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		// Escape existing single quotes and prefix with quote
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}
