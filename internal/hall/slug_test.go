package hall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Grand Palace", "grand-palace"},
		{"diacritics", "Salle des Fêtes Élégance", "salle-des-fetes-elegance"},
		{"collapses separator runs", "Le  Grand -- Salon", "le-grand-salon"},
		{"trims edges", "  --Hall One--  ", "hall-one"},
		{"keeps digits", "Salon 21", "salon-21"},
		{"punctuation only", "!!! ???", ""},
		{"empty", "", ""},
		{"mixed case", "VILLA MiMOSA", "villa-mimosa"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeSlug(tc.in))
		})
	}
}
