package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Heritage Medallion":        "heritage-medallion",
		"  Living Room  ":           "living-room",
		"Hand-Knotted & Flat-Woven": "hand-knotted-and-flat-woven",
		"Kilim Café":                "kilim-cafe",
		"---":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
