package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ThemeSettings are the merchant-editable storefront options.
type ThemeSettings struct {
	StoreName string `yaml:"store_name"`
	Currency  string `yaml:"currency"`

	// HideUnavailableOptions drops option values that no in-stock variant
	// realises instead of rendering them crossed out.
	HideUnavailableOptions bool `yaml:"hide_unavailable_options"`

	SoldOutLabel     string `yaml:"sold_out_label"`
	UnavailableLabel string `yaml:"unavailable_label"`

	ReviewsPerPage    int  `yaml:"reviews_per_page"`
	ShowReviewSummary bool `yaml:"show_review_summary"`

	ProductsPerPage int `yaml:"products_per_page"`
}

func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		StoreName:         "Lumen",
		Currency:          "USD",
		SoldOutLabel:      "Sold out",
		UnavailableLabel:  "Unavailable",
		ReviewsPerPage:    5,
		ShowReviewSummary: true,
		ProductsPerPage:   24,
	}
}

// LoadTheme merges the YAML file at path over DefaultTheme. An empty path
// yields the defaults.
func LoadTheme(path string) (ThemeSettings, error) {
	theme := DefaultTheme()
	if strings.TrimSpace(path) == "" {
		return theme, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ThemeSettings{}, err
	}
	if err := yaml.Unmarshal(raw, &theme); err != nil {
		return ThemeSettings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return theme.normalized(), nil
}

func (t ThemeSettings) normalized() ThemeSettings {
	def := DefaultTheme()
	t.Currency = strings.ToUpper(strings.TrimSpace(t.Currency))
	if t.Currency == "" {
		t.Currency = def.Currency
	}
	if t.SoldOutLabel == "" {
		t.SoldOutLabel = def.SoldOutLabel
	}
	if t.UnavailableLabel == "" {
		t.UnavailableLabel = def.UnavailableLabel
	}
	if t.ReviewsPerPage <= 0 || t.ReviewsPerPage > 50 {
		t.ReviewsPerPage = def.ReviewsPerPage
	}
	if t.ProductsPerPage <= 0 || t.ProductsPerPage > 100 {
		t.ProductsPerPage = def.ProductsPerPage
	}
	return t
}
