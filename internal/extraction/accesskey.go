package extraction

import (
	"regexp"
	"strings"
)

// AccessKeyPlaceholder is replaced by the key in lookup URL templates.
const AccessKeyPlaceholder = "{key}"

var (
	// maximal runs of digit groups separated by spaces or tabs
	digitRun = regexp.MustCompile(`\d+(?:[ \t]+\d+)*`)
	nonDigit = regexp.MustCompile(`\D`)
)

// FindAccessKey looks for an NF-e access key in OCR text: a run of exactly 44
// digits, printed either unbroken or as eleven groups of four. Longer runs,
// such as the 48-digit payment line of a bill, are not keys.
func FindAccessKey(text string) (string, bool) {
	for _, run := range digitRun.FindAllString(text, -1) {
		if key, ok := accessKeyRun(run); ok {
			return key, true
		}
	}
	return "", false
}

func accessKeyRun(run string) (string, bool) {
	groups := strings.Fields(run)
	for _, g := range groups {
		if len(g) == 44 {
			return g, true
		}
	}
	if len(groups) != 11 {
		return "", false
	}
	for _, g := range groups {
		if len(g) != 4 {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

// NormalizeAccessKey strips spaces, dots and dashes from user input and checks
// that exactly 44 digits remain.
func NormalizeAccessKey(input string) (string, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '.', '-':
			return -1
		}
		return r
	}, strings.TrimSpace(input))

	if len(key) != 44 || nonDigit.MatchString(key) {
		return "", ErrInvalidAccessKey
	}
	return key, nil
}

// LookupURL renders the lookup page address for key. Templates without the
// placeholder get the key appended.
func LookupURL(template, key string) string {
	if strings.Contains(template, AccessKeyPlaceholder) {
		return strings.ReplaceAll(template, AccessKeyPlaceholder, key)
	}
	return template + key
}
