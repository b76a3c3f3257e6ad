package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
currency: eur
products:
  - title: Classic Tee
    vendor: Lumen
    options:
      - name: Size
        values: [S, M]
      - name: Color
        values:
          - {value: Red, swatch: "#c0392b"}
          - {value: Blue, linked_handle: classic-tee-blue}
    variants:
      - {options: [S, Red], price: "25", available: true, quantity: 3}
      - {options: [M, Red], price: "25.5", compare_at: "30.00", currency: usd}
`

func TestParseSeed(t *testing.T) {
	got, err := ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "Classic Tee", p.Title)
	require.Len(t, p.Options, 2)
	assert.Equal(t, []string{"S", "M"}, p.Options[0].ValueNames())
	assert.Equal(t, "#c0392b", p.Options[1].Values[0].SwatchColor)
	assert.Equal(t, "classic-tee-blue", p.Options[1].Values[1].LinkedProductHandle)

	require.Len(t, p.Variants, 2)
	assert.Equal(t, int64(2500), p.Variants[0].PriceCents)
	assert.Equal(t, "EUR", p.Variants[0].Currency)
	assert.True(t, p.Variants[0].AvailableForSale)
	assert.Equal(t, "S / Red", p.Variants[0].Title())

	assert.Equal(t, int64(2550), p.Variants[1].PriceCents)
	assert.Equal(t, int64(3000), p.Variants[1].CompareAtCents)
	assert.Equal(t, "USD", p.Variants[1].Currency)
	assert.False(t, p.Variants[1].AvailableForSale)
}

func TestParseSeed_Rejects(t *testing.T) {
	for name, doc := range map[string]string{
		"option count": `products: [{title: A, options: [{name: Size, values: [S]}], variants: [{options: [S, X], price: "1"}]}]`,
		"bad price":    `products: [{title: A, variants: [{price: "abc"}]}]`,
		"negative":     `products: [{title: A, variants: [{price: "-1"}]}]`,
		"unknown key":  `products: [{title: A, colour: red}]`,
	} {
		_, err := ParseSeed(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}
