package standings

import "strconv"

// FormatDiff renders a point differential with an explicit sign: +15, 0, -3.
func FormatDiff(diff int) string {
	if diff > 0 {
		return "+" + strconv.Itoa(diff)
	}
	return strconv.Itoa(diff)
}
