package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML catalog fixture loaded by the seed tool.
//
//	products:
//	  - title: Classic Tee
//	    options:
//	      - name: Color
//	        values:
//	          - {value: Red, swatch: "#c0392b"}
//	          - {value: Blue, linked_handle: classic-tee-blue}
//	    variants:
//	      - {options: [Red], price: "25.00", available: true, quantity: 5}
type SeedFile struct {
	Currency string        `yaml:"currency"`
	Products []SeedProduct `yaml:"products"`
}

type SeedProduct struct {
	Title       string        `yaml:"title"`
	Vendor      string        `yaml:"vendor"`
	Description string        `yaml:"description"`
	Options     []SeedOption  `yaml:"options"`
	Variants    []SeedVariant `yaml:"variants"`
}

type SeedOption struct {
	Name   string      `yaml:"name"`
	Values []SeedValue `yaml:"values"`
}

// SeedValue accepts either a bare string or a mapping.
type SeedValue struct {
	Value        string `yaml:"value"`
	Swatch       string `yaml:"swatch"`
	SwatchImage  string `yaml:"swatch_image"`
	LinkedHandle string `yaml:"linked_handle"`
}

func (v *SeedValue) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		v.Value = n.Value
		return nil
	}
	type plain SeedValue
	return n.Decode((*plain)(v))
}

type SeedVariant struct {
	SKU       string   `yaml:"sku"`
	Options   []string `yaml:"options"` // positional, one per product option
	Price     string   `yaml:"price"`
	CompareAt string   `yaml:"compare_at"`
	Currency  string   `yaml:"currency"`
	Available bool     `yaml:"available"`
	Quantity  int      `yaml:"quantity"`
}

// ParseSeed decodes a fixture into product inputs. Prices are decimal
// strings in major units.
func ParseSeed(r io.Reader) ([]NewProductInput, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	currency := strings.ToUpper(strings.TrimSpace(f.Currency))
	if currency == "" {
		currency = "USD"
	}

	out := make([]NewProductInput, 0, len(f.Products))
	for i, sp := range f.Products {
		in, err := sp.input(currency)
		if err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i, sp.Title, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func (sp SeedProduct) input(currency string) (NewProductInput, error) {
	in := NewProductInput{Title: sp.Title, Vendor: sp.Vendor, Description: sp.Description}
	for _, so := range sp.Options {
		o := Option{Name: strings.TrimSpace(so.Name)}
		for _, sv := range so.Values {
			o.Values = append(o.Values, OptionValue{
				Value:               strings.TrimSpace(sv.Value),
				SwatchColor:         sv.Swatch,
				SwatchImageURL:      sv.SwatchImage,
				LinkedProductHandle: sv.LinkedHandle,
			})
		}
		in.Options = append(in.Options, o)
	}

	for j, sv := range sp.Variants {
		if len(sv.Options) != len(in.Options) {
			return NewProductInput{}, fmt.Errorf("variant %d: want %d option values, got %d", j, len(in.Options), len(sv.Options))
		}
		price, err := toCents(sv.Price)
		if err != nil {
			return NewProductInput{}, fmt.Errorf("variant %d price: %w", j, err)
		}
		var compareAt int64
		if sv.CompareAt != "" {
			if compareAt, err = toCents(sv.CompareAt); err != nil {
				return NewProductInput{}, fmt.Errorf("variant %d compare_at: %w", j, err)
			}
		}
		cur := currency
		if sv.Currency != "" {
			cur = strings.ToUpper(sv.Currency)
		}
		v := Variant{
			SKU:               sv.SKU,
			PriceCents:        price,
			CompareAtCents:    compareAt,
			Currency:          cur,
			AvailableForSale:  sv.Available,
			QuantityAvailable: sv.Quantity,
		}
		for k, val := range sv.Options {
			v.SelectedOptions = append(v.SelectedOptions, SelectedOption{Name: in.Options[k].Name, Value: strings.TrimSpace(val)})
		}
		in.Variants = append(in.Variants, v)
	}
	return in, nil
}

func toCents(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", s)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}
