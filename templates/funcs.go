package templates

import (
	"html/template"
	"strings"

	"lumenstore.com/app/internal/config"
	"lumenstore.com/app/pkg/view"
)

func Funcs(theme config.ThemeSettings) template.FuncMap {
	return template.FuncMap{
		"storeName":         func() string { return theme.StoreName },
		"showReviewSummary": func() bool { return theme.ShowReviewSummary },
		"money":             func(m view.Money) string { return m.String() },
		"stars":             stars,
		"add":               func(a, b int) int { return a + b },
		"seq":               seq,
		"join":              strings.Join,
	}
}

// stars renders a 0-5 rating as filled and empty stars.
func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// seq is 1..n, for pagination links.
func seq(n int) []int {
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}
