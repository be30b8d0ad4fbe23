package cohort

import (
	"strings"
	"unicode"
)

// legalSuffixes are trailing tokens dropped during normalization so
// "Acme Inc" and "ACME, LLC" merge into one identity.
var legalSuffixes = map[string]bool{
	"inc":     true,
	"llc":     true,
	"corp":    true,
	"ltd":     true,
	"co":      true,
	"company": true,
}

// Normalize reduces a counterparty name to a canonical identity key:
// lowercase, punctuation stripped, trailing legal suffixes removed,
// whitespace collapsed.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for len(tokens) > 1 && legalSuffixes[tokens[len(tokens)-1]] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.Join(tokens, " ")
}
