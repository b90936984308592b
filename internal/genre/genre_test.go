package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bilim Kurgu", "bilim-kurgu"},
		{"Kişisel Gelişim", "kisisel-gelisim"},
		{"R&B", "r-b"},
		{"Aksiyon", "aksiyon"},
		{"Sci-Fi/Fantasy", "sci-fi-fantasy"},
		{"  Gerilim  ", "gerilim"},
		{"KISA", "kisa"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// English aliases land on the catalog's Turkish labels.
		{"sci-fi", "bilim-kurgu"},
		{"Science Fiction", "bilim-kurgu"},
		{"thriller", "gerilim"},
		{"Comedy", "komedi"},
		{"romance", "romantik"},
		{"self help", "kisisel-gelisim"},
		{"hip hop", "rap"},
		{"RnB", "r-b"},

		// Exact catalog labels match themselves.
		{"Bilim Kurgu", "bilim-kurgu"},
		{"Romantik", "romantik"},
		{"Pop", "pop"},

		// Unknown genres pass through as slugs.
		{"Caz", "caz"},
		{"K-Pop", "k-pop"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}
