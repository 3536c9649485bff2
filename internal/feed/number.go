package feed

import (
	"strconv"
)

// ExtractNumber returns the first run of ASCII digits in s, or 0 when there is none.
// "25歳" → 25, "3回目" → 3, "1000〜2000円" → 1000.
func ExtractNumber(s string) int {
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		isDigit := c >= '0' && c <= '9'
		if isDigit && start < 0 {
			start = i
		}
		if !isDigit && start >= 0 {
			return atoi(s[start:i])
		}
	}
	if start >= 0 {
		return atoi(s[start:])
	}
	return 0
}

func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// Out of range; clamp so oversized values still sort last.
		return int(^uint(0) >> 1)
	}
	return n
}
