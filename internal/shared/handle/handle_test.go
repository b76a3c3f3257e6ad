package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTitle(t *testing.T) {
	cases := map[string]string{
		"Linen Shirt":            "linen-shirt",
		"  Crème Brûlée Mug  ":   "creme-brulee-mug",
		"Tee / Long-Sleeve (XL)": "tee-long-sleeve-xl",
		"!!!":                    "product",
		"":                       "product",
	}
	for in, want := range cases {
		assert.Equal(t, want, FromTitle(in), in)
	}
}

func TestUnique(t *testing.T) {
	used := map[string]bool{"tote": true, "tote-2": true}
	got := Unique("tote", func(s string) bool { return used[s] })
	assert.Equal(t, "tote-3", got)
	assert.Equal(t, "cap", Unique("cap", func(string) bool { return false }))
}
