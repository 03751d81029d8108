package progress

import "strconv"

// formatPercent renders pct with one decimal and a percent sign, e.g. "42.5%".
func formatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
