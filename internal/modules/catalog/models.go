package catalog

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"lumenstore.com/app/pkg/view"
)

const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

type Product struct {
	ID          string    `gorm:"primaryKey;type:char(36)"`
	Handle      string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_products_handle"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Vendor      string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(16);not null;default:active;index"`
	CreatedAt   time.Time `gorm:"precision:3;not null"`
	UpdatedAt   time.Time `gorm:"precision:3;not null"`

	Options  []Option  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images   []Image   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

// VariantImageURL is the variant's own image, falling back to the first
// gallery image.
func (p Product) VariantImageURL(v Variant) string {
	if v.ImageID != nil {
		for _, im := range p.Images {
			if im.ID == *v.ImageID {
				return im.URL
			}
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// Option is one named axis of a product ("Color", "Size").
type Option struct {
	ID        string        `gorm:"primaryKey;type:char(36)"`
	ProductID string        `gorm:"type:char(36);not null;index"`
	Name      string        `gorm:"type:varchar(64);not null"`
	Position  int           `gorm:"not null"`
	Values    []OptionValue `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE"`
}

func (Option) TableName() string { return "product_options" }

// ValueNames returns the option's values in display order.
func (o Option) ValueNames() []string {
	out := make([]string, 0, len(o.Values))
	for _, v := range o.Values {
		out = append(out, v.Value)
	}
	return out
}

type OptionValue struct {
	ID       string `gorm:"primaryKey;type:char(36)"`
	OptionID string `gorm:"type:char(36);not null;index"`
	Value    string `gorm:"type:varchar(128);not null"`
	Position int    `gorm:"not null"`

	SwatchColor    string `gorm:"type:varchar(32)"`
	SwatchImageURL string `gorm:"type:varchar(512)"`

	// LinkedProductHandle points at a sibling product that realises this
	// value (combined listings, one product per colour).
	LinkedProductHandle string `gorm:"type:varchar(191)"`
}

func (OptionValue) TableName() string { return "product_option_values" }

func (v OptionValue) Swatch() *view.Swatch {
	if v.SwatchColor == "" && v.SwatchImageURL == "" {
		return nil
	}
	return &view.Swatch{Color: v.SwatchColor, ImageURL: v.SwatchImageURL}
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Variant struct {
	ID                string                              `gorm:"primaryKey;type:char(36)"`
	ProductID         string                              `gorm:"type:char(36);not null;index"`
	SKU               string                              `gorm:"type:varchar(64);uniqueIndex:ux_variants_sku"`
	SelectedOptions   datatypes.JSONSlice[SelectedOption] `gorm:"column:selected_options;type:json;not null"`
	PriceCents        int64                               `gorm:"not null"`
	CompareAtCents    int64                               `gorm:"not null;default:0"`
	Currency          string                              `gorm:"type:char(3);not null"`
	AvailableForSale  bool                                `gorm:"not null"`
	QuantityAvailable int                                 `gorm:"not null"`
	ImageID           *string                             `gorm:"type:char(36)"`
	Position          int                                 `gorm:"not null"`
	CreatedAt         time.Time                           `gorm:"precision:3;not null"`
	UpdatedAt         time.Time                           `gorm:"precision:3;not null"`

	// Virtual marks a placeholder built for a combination no variant
	// realises. Never persisted.
	Virtual bool `gorm:"-"`
}

func (Variant) TableName() string { return "product_variants" }

// Title joins the option values: "Red / S".
func (v Variant) Title() string {
	parts := make([]string, 0, len(v.SelectedOptions))
	for _, o := range v.SelectedOptions {
		parts = append(parts, o.Value)
	}
	return strings.Join(parts, " / ")
}

func (v Variant) Price() view.Money { return view.MoneyFromCents(v.PriceCents, v.Currency) }

func (v Variant) CompareAtPrice() *view.Money {
	if v.CompareAtCents <= v.PriceCents {
		return nil
	}
	m := view.MoneyFromCents(v.CompareAtCents, v.Currency)
	return &m
}

type Image struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	ProductID  string    `gorm:"type:char(36);not null;index"`
	StorageKey string    `gorm:"type:varchar(512);not null"`
	URL        string    `gorm:"type:varchar(512);not null"`
	Alt        string    `gorm:"type:varchar(255)"`
	Position   int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"precision:3;not null"`
}

func (Image) TableName() string { return "product_images" }

// Models lists every table of the package, in creation order.
func Models() []any {
	return []any{&Product{}, &Option{}, &OptionValue{}, &Variant{}, &Image{}}
}
