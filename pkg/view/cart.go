package view

// CartLineView is a cart line with any pending client mutation applied.
// Hidden lines are still rendered (with display:none) so in-flight forms tied
// to them are not torn down.
type CartLineView struct {
	ID               string           `json:"id"`
	VariantID        string           `json:"merchandiseId"`
	ProductHandle    string           `json:"productHandle"`
	ProductTitle     string           `json:"productTitle"`
	VariantTitle     string           `json:"variantTitle"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	Quantity         int              `json:"quantity"`
	UnitPrice        Money            `json:"unitPrice"`
	LineTotal        Money            `json:"lineTotal"`
	Hidden           bool             `json:"hidden"`
	Pending          bool             `json:"pending"`
	AvailableForSale bool             `json:"availableForSale"`
}

type CartPage struct {
	ID            string         `json:"id"`
	Lines         []CartLineView `json:"lines"`
	TotalQuantity int            `json:"totalQuantity"`
	Subtotal      Money          `json:"subtotal"`
	Note          string         `json:"note,omitempty"`
	DiscountCodes []string       `json:"discountCodes,omitempty"`
	Errors        []string       `json:"errors,omitempty"`

	CSRFToken string `json:"-"`
}

func (p CartPage) IsEmpty() bool {
	for _, l := range p.Lines {
		if !l.Hidden {
			return false
		}
	}
	return true
}
