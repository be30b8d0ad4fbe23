package cohort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Inc", "acme"},
		{"ACME, LLC", "acme"},
		{"Acme Corp.", "acme"},
		{"Acme Holding Company", "acme holding"},
		{"Stripe", "stripe"},
		{"O'Brien & Sons Ltd", "o brien sons"},
		{"  Spaced   Out  Co ", "spaced out"},
		{"Co", "co"}, // a bare suffix is still a name
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNormalize_MultipleSuffixes(t *testing.T) {
	assert.Equal(t, "acme", Normalize("Acme Co Ltd"))
}

func TestNormalize_UnicodeLettersSurvive(t *testing.T) {
	assert.Equal(t, "müller gmbh", Normalize("Müller GmbH"))
	assert.Equal(t, "café römer", Normalize("Café Römer"))
	assert.Equal(t, "株式会社acme", Normalize("株式会社Acme"))
}
