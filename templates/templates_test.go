package templates

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumenstore.com/app/internal/config"
	"lumenstore.com/app/pkg/view"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	tmpl, err := Parse(config.DefaultTheme())
	require.NoError(t, err)
	var buf bytes.Buffer
	page := view.Page{
		Layout: view.Layout{
			Title:     "T",
			CartCount: 2,
			CSRFToken: "tok",
			Flash:     &view.Flash{Kind: view.FlashSuccess, Message: "Saved."},
			User:      &view.UserView{Email: "ada@lumen.test", IsAdmin: true},
		},
		Data: data,
	}
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, page))
	return buf.String()
}

func TestPagesRender(t *testing.T) {
	usd := view.MoneyFromCents(2500, "USD")
	pages := map[string]any{
		"products": view.ProductsPage{Title: "Products", Page: 2, HasNext: true, Products: []view.ProductCard{{Handle: "tee", Title: "Tee", Price: usd}}},
		"product": view.ProductPage{
			ID: "p1", Handle: "tee", Title: "Tee",
			Options: []view.OptionView{{Name: "Color", Values: []view.OptionValueView{
				{Kind: "button", Value: "Red", Href: "/products/tee?Color=Red", Selected: true, Available: true, Swatch: &view.Swatch{Color: "#c0392b"}},
				{Kind: "link", Value: "Green", Href: "/products/tee-green?Color=Green", Available: true},
			}}},
			Variant: view.VariantView{ID: "v1", Price: usd, CompareAtPrice: &usd, AvailableForSale: true},
			Reviews: &view.ReviewsBlock{
				Summary:    view.RatingSummary{Count: 1, Average: 4},
				Reviews:    []view.ReviewView{{Rating: 4, Title: "Soft", Body: "Nice", Author: "Ada"}},
				Page:       1,
				TotalPages: 2,
				Sort:       "newest",
			},
		},
		"cart": view.CartPage{
			Lines: []view.CartLineView{
				{ID: "l1", ProductHandle: "tee", ProductTitle: "Tee", Quantity: 2, UnitPrice: usd, LineTotal: usd.Times(2)},
				{ID: "l2", ProductTitle: "Gone", Quantity: 1, Hidden: true},
			},
			Subtotal:      usd.Times(2),
			TotalQuantity: 2,
			DiscountCodes: []string{"SUMMER"},
			Errors:        []string{"Tee (M) is sold out."},
		},
		"login":         view.LoginForm{Email: "ada@lumen.test", Error: "Incorrect email or password."},
		"register":      view.RegisterForm{Fields: map[string]string{"password": "Must be at least 8."}},
		"account":       view.AccountPage{User: view.UserView{Email: "ada@lumen.test"}},
		"admin_reviews": view.AdminReviewsPage{Reviews: []view.ReviewView{{ID: "r1", Rating: 5, CreatedAt: time.Now()}}},
		"error":         view.ErrorPage{Status: 404, Message: "Page not found.", RequestID: "rid"},
	}
	for name, data := range pages {
		out := render(t, name, data)
		assert.Contains(t, out, "Cart (2)", name)
		assert.Contains(t, out, "Saved.", name)
	}

	out := render(t, "product", pages["product"])
	assert.Contains(t, out, "$25.00")
	assert.Contains(t, out, `rel="alternate"`)
	assert.Contains(t, out, "★★★★☆")

	out = render(t, "cart", pages["cart"])
	assert.Contains(t, out, `data-line-id="l2" style="display:none"`)
	assert.Contains(t, out, "$50.00")
	assert.Contains(t, out, "SUMMER")
}

func TestStars(t *testing.T) {
	assert.Equal(t, "☆☆☆☆☆", stars(0))
	assert.Equal(t, "★★★★★", stars(9))
	assert.Equal(t, "★★☆☆☆", stars(2))
}
