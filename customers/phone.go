package customers

import (
	"fmt"
	"strings"
)

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneVariants expands a Vietnamese phone number into the spellings it may
// be stored under: local 0-prefix, +84, bare 84, the national digits, and the
// spaced display format. The input itself always comes first.
func PhoneVariants(phone string) []string {
	phone = strings.TrimSpace(phone)
	seen := map[string]bool{}
	out := []string{}
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	add(phone)

	digits := digitsOf(phone)
	var national string
	switch {
	case strings.HasPrefix(digits, "84"):
		national = digits[2:]
	case strings.HasPrefix(digits, "0"):
		national = digits[1:]
	default:
		national = digits
	}
	if national == "" {
		return out
	}

	add("0" + national)
	add("+84" + national)
	add("84" + national)
	add(national)
	if len(national) == 9 {
		add(fmt.Sprintf("+84 %s %s %s", national[:1], national[1:4], national[4:]))
	}
	return out
}

// LooksLikePhone reports whether a search query is phone-shaped: at least one
// digit, and nothing beyond digits, spaces, "+", parentheses and hyphens.
func LooksLikePhone(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return false
	}
	hasDigit := false
	for _, r := range q {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == ' ' || r == '+' || r == '(' || r == ')' || r == '-':
		default:
			return false
		}
	}
	return hasDigit
}
