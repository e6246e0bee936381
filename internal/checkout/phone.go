package checkout

import (
	"errors"
	"strings"
)

// FormatPhone progressively masks typed input into the national pattern
// "+7 (XXX) XXX-XX-XX". Partial input yields a partial mask, the way the
// form reformats on every keystroke.
func FormatPhone(raw string) string {
	digits := phoneDigits(raw)
	if digits == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("+7")
	b.WriteString(" (")
	b.WriteString(digits[:min(3, len(digits))])
	if len(digits) >= 4 {
		b.WriteString(") ")
		b.WriteString(digits[3:min(6, len(digits))])
	}
	if len(digits) >= 7 {
		b.WriteString("-")
		b.WriteString(digits[6:min(8, len(digits))])
	}
	if len(digits) >= 9 {
		b.WriteString("-")
		b.WriteString(digits[8:min(10, len(digits))])
	}
	return b.String()
}

// NormalizePhone reduces the display formatting to the submitted digits:
// "+7" plus exactly ten significant digits.
func NormalizePhone(raw string) (string, error) {
	digits := phoneDigits(raw)
	if len(digits) != 10 {
		return "", errors.New("phone must have 10 digits")
	}
	return "+7" + digits, nil
}

// phoneDigits strips non-digits and the leading country digit (7 or 8).
func phoneDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 0 && (digits[0] == '7' || digits[0] == '8') {
		digits = digits[1:]
	}
	if len(digits) > 10 {
		digits = digits[:10]
	}
	return digits
}
