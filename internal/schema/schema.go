// Package schema lists every table the storefront owns, in creation order.
package schema

import (
	"lumenstore.com/app/internal/modules/accounts"
	"lumenstore.com/app/internal/modules/cart"
	"lumenstore.com/app/internal/modules/catalog"
	"lumenstore.com/app/internal/modules/reviews"
)

func Models() []any {
	var out []any
	out = append(out, catalog.Models()...)
	out = append(out, accounts.Models()...)
	out = append(out, cart.Models()...)
	out = append(out, reviews.Models()...)
	return out
}
