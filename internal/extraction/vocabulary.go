package extraction

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	Uncategorized = "Uncategorized"
	// UnknownEstablishment is the classifier's answer when it cannot tell.
	UnknownEstablishment = "Unknown"
)

// Vocabulary is the closed set of categories an item can be filed under.
var Vocabulary = []string{
	"Food",
	"Beverages",
	"Bakery",
	"Meat",
	"Produce",
	"Dairy",
	"Frozen",
	"Cleaning",
	"Personal Care",
	"Pharmacy",
	"Health",
	"Vehicle",
	"Home",
	"Electronics",
	"Clothing",
	"Pets",
	"Education",
	"Leisure",
	"Services",
	"Other",
	Uncategorized,
}

var vocabularyIndex = func() map[string]string {
	idx := make(map[string]string, len(Vocabulary))
	for _, label := range Vocabulary {
		idx[foldKey(label)] = label
	}
	return idx
}()

// CanonicalCategory maps a model-produced label onto Vocabulary, ignoring case,
// accents and surrounding whitespace. Anything else becomes Uncategorized.
func CanonicalCategory(label string) string {
	if canonical, ok := vocabularyIndex[foldKey(label)]; ok {
		return canonical
	}
	return Uncategorized
}

// foldKey lowercases, strips diacritics and collapses whitespace.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
