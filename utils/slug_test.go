// File: /utils/slug_test.go
package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"accented title", "V Duatlón Cros Jerez-La Bazana", "v-duatlon-cros-jerez-la-bazana"},
		{"spanish characters", "Campeonato de España Máster", "campeonato-de-espana-master"},
		{"enye", "La Coruña", "la-coruna"},
		{"symbols collapse", "Swim & Run: 2026!!", "swim-run-2026"},
		{"leading and trailing junk", "  ---Open Water---  ", "open-water"},
		{"already clean", "triatlon-madrid-2026", "triatlon-madrid-2026"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyOutputAlphabet(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9-]*$`)

	inputs := []string{
		"V Duatlón Cros Jerez-La Bazana",
		"Travesía a Nado Playa de la Concha",
		"Waterpolo ¡Gran Final! (2026)",
		"ÀÉÎÕÜ çñ",
	}
	for _, in := range inputs {
		slug := Slugify(in)
		require.True(t, pattern.MatchString(slug), "slug %q contains invalid characters", slug)
	}
}

func TestIsValidCapacity(t *testing.T) {
	require.True(t, IsValidCapacity("250"))
	require.True(t, IsValidCapacity("ilimitado"))
	require.True(t, IsValidCapacity(""))
	require.False(t, IsValidCapacity("-5"))
	require.False(t, IsValidCapacity("muchos"))
}
