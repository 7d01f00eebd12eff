package br

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateBR = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ParseCurrency converts a Brazilian-locale monetary string ("1.234,56") to
// a decimal. Dots are thousands separators, the comma is the decimal mark,
// and any other foreign character is stripped first. Empty or unparseable
// input yields an invalid NullDecimal rather than an error: a malformed
// amount in an upstream payload degrades to null, it never aborts a sync.
func ParseCurrency(v string) decimal.NullDecimal {
	var b strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := strings.ReplaceAll(b.String(), ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// ParseDate parses a DD/MM/YYYY date. It rejects any other layout, including
// ISO, and rejects dates that do not exist on the calendar (32/01, 31/04).
// The boolean reports whether the input was a valid date.
func ParseDate(v string) (time.Time, bool) {
	m := dateBR.FindStringSubmatch(v)
	if m == nil {
		return time.Time{}, false
	}
	day := atoi2(m[1])
	month := atoi2(m[2])
	year := atoi4(m[3])
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31/04 becomes 01/05); a shifted
	// component means the calendar date did not exist.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

func atoi2(s string) int { return int(s[0]-'0')*10 + int(s[1]-'0') }

func atoi4(s string) int {
	n := 0
	for i := 0; i < 4; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
