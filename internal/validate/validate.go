// Package validate holds the per-endpoint request validators. Each validator
// is a pure function: it normalizes the input (trimmed strings, lowercased
// email) and returns a field -> first-violated-rule message map. No I/O, no
// partial mutation; callers persist only when the map comes back empty.
package validate

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

type Errors map[string]string

// add records the first violation per field only.
func (e Errors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s\-+()]+$`)
	timeRe  = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	slugRe  = regexp.MustCompile(`^[a-z0-9-]+$`)
)

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	return emailRe.MatchString(s)
}

func validPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// strongPassword requires at least one lowercase letter, one uppercase
// letter and one digit.
func strongPassword(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
