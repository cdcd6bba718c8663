// Package normalize turns Brazilian-locale numbers and dates found in scraped HTML
// or OCR text into canonical values.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NotFound marks a field that could not be located in the source document.
const NotFound = "not found"

// DateLayout is the canonical DD/MM/YYYY rendering used across extraction results.
const DateLayout = "02/01/2006"

var (
	numberToken = regexp.MustCompile(`-?\d[\d.,]*`)
	dateToken   = regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4}|\d{2})\b`)

	// 1.234,56 | 1234,56 | 12.50 | 1,234.56
	amountToken = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+,\d{2}\b|\d+,\d{2}\b|\d{1,3}(?:,\d{3})+\.\d{2}\b|\d+\.\d{2}\b`)

	thousandsOnly = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
)

// ParseAmount extracts the first number in text and returns it as a float.
// Brazilian separators ("1.234,56") and dot-decimal OCR artifacts ("12.50") are
// both accepted; currency symbols and labels around the number are ignored.
// Unparsable input yields 0.
func ParseAmount(text string) float64 {
	token := numberToken.FindString(text)
	token = strings.TrimRight(token, ".,")
	if token == "" || token == "-" {
		return 0
	}

	neg := strings.HasPrefix(token, "-")
	token = strings.TrimPrefix(token, "-")

	value, err := strconv.ParseFloat(canonical(token), 64)
	if err != nil {
		return 0
	}
	if neg {
		return -value
	}
	return value
}

// canonical rewrites a digits-and-separators token into strconv form.
func canonical(token string) string {
	lastDot := strings.LastIndex(token, ".")
	lastComma := strings.LastIndex(token, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// 1.234,56
			token = strings.ReplaceAll(token, ".", "")
			return strings.Replace(token, ",", ".", 1)
		}
		// 1,234.56
		return strings.ReplaceAll(token, ",", "")
	case lastComma >= 0:
		if strings.Count(token, ",") > 1 {
			return strings.ReplaceAll(token, ",", "")
		}
		return strings.Replace(token, ",", ".", 1)
	case lastDot >= 0:
		if thousandsOnly.MatchString(token) {
			return strings.ReplaceAll(token, ".", "")
		}
		if strings.Count(token, ".") > 1 {
			i := strings.LastIndex(token, ".")
			return strings.ReplaceAll(token[:i], ".", "") + token[i:]
		}
		return token
	default:
		return token
	}
}

// ParseDate returns the first valid DD/MM/YYYY or DD/MM/YY date found in text,
// rendered as DD/MM/YYYY. Two-digit years are widened with a "20" prefix and
// impossible dates such as 31/02 are skipped. The boolean is false when no date
// is found; what to substitute is up to the caller.
func ParseDate(text string) (string, bool) {
	for _, m := range dateToken.FindAllStringSubmatch(text, -1) {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		date := m[1] + "/" + m[2] + "/" + year
		if _, err := time.Parse(DateLayout, date); err == nil {
			return date, true
		}
	}
	return "", false
}

// DateOr returns the first date in text or fallback when none is present.
func DateOr(text, fallback string) string {
	if d, ok := ParseDate(text); ok {
		return d
	}
	return fallback
}

// LastAmount returns the last currency-shaped token in text. Totals are usually
// printed at the bottom of a receipt, which is what this relies on. Tokens that
// belong to a dotted date like 15.07.2025 are not amounts.
func LastAmount(text string) (float64, bool) {
	locs := amountToken.FindAllStringIndex(text, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		start, end := locs[i][0], locs[i][1]
		if dotted(text, start, end) {
			continue
		}
		return ParseAmount(text[start:end]), true
	}
	return 0, false
}

// dotted reports whether text[start:end] continues into, or follows, another
// dot-separated digit group.
func dotted(text string, start, end int) bool {
	if end+1 < len(text) && text[end] == '.' && isDigit(text[end+1]) {
		return true
	}
	return start >= 2 && text[start-1] == '.' && isDigit(text[start-2])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
