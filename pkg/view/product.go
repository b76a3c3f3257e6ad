package view

type ProductCard struct {
	ID        string
	Handle    string
	Title     string
	ImageURL  string
	Price     Money
	SoldOut   bool
	VariantID string // first sellable variant, for quick add
}

type ProductsPage struct {
	Title    string
	Products []ProductCard
	Page     int
	HasNext  bool
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantView is the variant the current selection resolves to. Virtual is
// set when no real variant backs the combination.
type VariantView struct {
	ID                string           `json:"id,omitempty"`
	SKU               string           `json:"sku,omitempty"`
	Title             string           `json:"title"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable int              `json:"quantityAvailable"`
	Virtual           bool             `json:"virtual"`
	Price             Money            `json:"price"`
	CompareAtPrice    *Money           `json:"compareAtPrice,omitempty"`
	ImageURL          string           `json:"imageUrl,omitempty"`
	StatusLabel       string           `json:"statusLabel,omitempty"`
}

type Swatch struct {
	Color    string `json:"color,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// OptionValueView is one rendered value. Kind is "link" when choosing the
// value navigates to another product, "button" when it re-selects in place;
// Href carries the destination either way.
type OptionValueView struct {
	Kind      string  `json:"kind"`
	Value     string  `json:"value"`
	Href      string  `json:"href"`
	Selected  bool    `json:"selected"`
	Available bool    `json:"available"`
	Swatch    *Swatch `json:"swatch,omitempty"`
}

type OptionView struct {
	Name   string            `json:"name"`
	Values []OptionValueView `json:"values"`
}

type ImageView struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type ProductPage struct {
	ID          string        `json:"id"`
	Handle      string        `json:"handle"`
	Title       string        `json:"title"`
	Vendor      string        `json:"vendor,omitempty"`
	Description string        `json:"description"`
	Images      []ImageView   `json:"images"`
	Options     []OptionView  `json:"options"`
	Variant     VariantView   `json:"selectedVariant"`
	Reviews     *ReviewsBlock `json:"reviews,omitempty"`

	// Variant id groups that share an identical option tuple. Only the first
	// of each group is ever matched.
	DuplicateVariants [][]string `json:"duplicateVariants,omitempty"`

	CSRFToken string `json:"-"`
}
