package catalog

func opts(pairs ...string) []SelectedOption {
	out := make([]SelectedOption, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, SelectedOption{Name: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func axis(name string, values ...string) Option {
	o := Option{Name: name}
	for _, v := range values {
		o.Values = append(o.Values, OptionValue{Value: v})
	}
	return o
}

// tee is the Size x Color example: S/Red in stock, M/Red sold out, S/Blue in
// stock, M/Blue never made.
func tee() Product {
	return Product{
		ID:     "p-tee",
		Handle: "tee",
		Title:  "Tee",
		Options: []Option{
			axis("Size", "S", "M"),
			axis("Color", "Red", "Blue"),
		},
		Variants: []Variant{
			{ID: "v-s-red", SKU: "TEE-S-RED", SelectedOptions: opts("Size", "S", "Color", "Red"), AvailableForSale: true, QuantityAvailable: 4, PriceCents: 2500, Currency: "USD"},
			{ID: "v-m-red", SKU: "TEE-M-RED", SelectedOptions: opts("Size", "M", "Color", "Red"), AvailableForSale: false, QuantityAvailable: 0, PriceCents: 2500, Currency: "USD"},
			{ID: "v-s-blue", SKU: "TEE-S-BLUE", SelectedOptions: opts("Size", "S", "Color", "Blue"), AvailableForSale: true, QuantityAvailable: 2, PriceCents: 2700, Currency: "USD"},
		},
	}
}
