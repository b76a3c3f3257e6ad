package catalog

import (
	"net/url"
	"sort"
	"strings"
)

// Selection maps an option name to the chosen value. Once a product is loaded
// it holds exactly one value per axis.
type Selection map[string]string

// SelectionOf reads a variant's option tuple.
func SelectionOf(v Variant) Selection {
	s := make(Selection, len(v.SelectedOptions))
	for _, o := range v.SelectedOptions {
		s[o.Name] = o.Value
	}
	return s
}

// With returns a copy with axis set to value. Other axes are untouched and the
// receiver is not modified.
func (s Selection) With(axis, value string) Selection {
	out := make(Selection, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[axis] = value
	return out
}

// Query encodes the selection as product page search params.
func (s Selection) Query() string {
	q := url.Values{}
	for k, v := range s {
		q.Set(k, v)
	}
	return q.Encode()
}

// Options lists the selection in the order of the given axes.
func (s Selection) Options(axes []Option) []SelectedOption {
	out := make([]SelectedOption, 0, len(axes))
	for _, a := range axes {
		if v, ok := s[a.Name]; ok {
			out = append(out, SelectedOption{Name: a.Name, Value: v})
		}
	}
	return out
}

// matches compares v's option tuple axis by axis, in v's own order.
func (s Selection) matches(v Variant) bool {
	if len(v.SelectedOptions) != len(s) {
		return false
	}
	for _, o := range v.SelectedOptions {
		if got, ok := s[o.Name]; !ok || got != o.Value {
			return false
		}
	}
	return true
}

// FindMatchingVariant returns the first variant, in input order, whose option
// tuple equals the selection. Duplicate tuples are not detected here; see
// DuplicateOptionTuples.
func FindMatchingVariant(sel Selection, variants []Variant) (Variant, bool) {
	for _, v := range variants {
		if sel.matches(v) {
			return v, true
		}
	}
	return Variant{}, false
}

// AvailabilityForAxis reports, for every candidate value of axis, whether
// substituting it into sel yields a variant that is available for sale.
func AvailabilityForAxis(axis string, values []string, sel Selection, variants []Variant) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, val := range values {
		v, ok := FindMatchingVariant(sel.With(axis, val), variants)
		out[val] = ok && v.AvailableForSale
	}
	return out
}

// ResolveVariant returns the matching variant, or a virtual placeholder
// carrying the selection when no variant realises it. The placeholder is
// never for sale and reports QuantityAvailable -1, which tells it apart from a
// real sold-out variant.
func ResolveVariant(sel Selection, axes []Option, variants []Variant) Variant {
	if v, ok := FindMatchingVariant(sel, variants); ok {
		return v
	}
	return Variant{
		SelectedOptions:   sel.Options(axes),
		AvailableForSale:  false,
		QuantityAvailable: -1,
		Virtual:           true,
	}
}

// SeedSelection picks the initial selection: the variant with preferredID if
// present, else the first variant, else the first value of every axis.
func SeedSelection(axes []Option, variants []Variant, preferredID string) Selection {
	if preferredID != "" {
		for _, v := range variants {
			if v.ID == preferredID {
				return SelectionOf(v)
			}
		}
	}
	if len(variants) > 0 {
		return SelectionOf(variants[0])
	}
	sel := make(Selection, len(axes))
	for _, a := range axes {
		if len(a.Values) > 0 {
			sel[a.Name] = a.Values[0].Value
		}
	}
	return sel
}

// SelectionFromQuery seeds a selection and then applies every query param that
// names a known axis and one of its values. Unknown axes and values are
// ignored so a stale URL still lands on a complete selection.
func SelectionFromQuery(axes []Option, variants []Variant, q url.Values) Selection {
	sel := SeedSelection(axes, variants, strings.TrimSpace(q.Get("variant")))
	for _, a := range axes {
		want := q.Get(a.Name)
		if want == "" {
			continue
		}
		for _, v := range a.Values {
			if v.Value == want {
				sel = sel.With(a.Name, want)
				break
			}
		}
	}
	return sel
}

// DuplicateOptionTuples groups variant ids that share an identical option
// tuple. The matcher silently prefers the first of each group, so callers
// surface these as catalog data errors rather than fixing them.
func DuplicateOptionTuples(variants []Variant) [][]string {
	index := map[string]int{}
	var groups [][]string
	for _, v := range variants {
		key := tupleKey(v)
		if i, ok := index[key]; ok {
			groups[i] = append(groups[i], v.ID)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, []string{v.ID})
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g) > 1 {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func tupleKey(v Variant) string {
	sel := SelectionOf(v)
	names := make([]string, 0, len(sel))
	for _, o := range v.SelectedOptions {
		names = append(names, o.Name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		b.WriteString(n)
		b.WriteByte('\x1f')
		b.WriteString(sel[n])
		b.WriteByte('\x1e')
	}
	return b.String()
}
