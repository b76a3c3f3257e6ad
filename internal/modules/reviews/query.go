package reviews

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

type Sort string

const (
	SortNewest  Sort = "newest"
	SortOldest  Sort = "oldest"
	SortHighest Sort = "highest"
	SortLowest  Sort = "lowest"
)

const MaxPerPage = 50

func ParseSort(s string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortOldest:
		return SortOldest
	case SortHighest:
		return SortHighest
	case SortLowest:
		return SortLowest
	default:
		return SortNewest
	}
}

// Query selects one page of reviews. Page is zero-based; Rating 0 means all
// ratings.
type Query struct {
	Page    int
	PerPage int
	Sort    Sort
	Rating  int
}

// ParseQuery reads page (1-based), per_page, sort and rating. Anything out of
// range falls back to a default rather than failing.
func ParseQuery(v url.Values, defaultPerPage int) Query {
	q := Query{Sort: ParseSort(v.Get("sort")), PerPage: defaultPerPage}
	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 1 {
		q.Page = n - 1
	}
	if n, err := strconv.Atoi(v.Get("per_page")); err == nil && n > 0 {
		q.PerPage = n
	}
	if n, err := strconv.Atoi(v.Get("rating")); err == nil && n >= 1 && n <= 5 {
		q.Rating = n
	}
	return q.normalized()
}

func (q Query) normalized() Query {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PerPage <= 0 {
		q.PerPage = 5
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if q.Rating < 0 || q.Rating > 5 {
		q.Rating = 0
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	return q
}

// Values encodes q back into URL parameters using a 1-based page.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page+1))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	v.Set("sort", string(q.Sort))
	if q.Rating > 0 {
		v.Set("rating", strconv.Itoa(q.Rating))
	}
	return v
}

// Page is one slice of a filtered, sorted review list.
type Page struct {
	Reviews    []Review
	Total      int
	Query      Query
	TotalPages int
}

// Apply filters by exact rating, sorts, then slices
// [page*perPage, (page+1)*perPage). The input is not modified. A page past
// the end is empty.
func Apply(all []Review, q Query) Page {
	q = q.normalized()

	filtered := make([]Review, 0, len(all))
	for _, r := range all {
		if q.Rating == 0 || r.Rating == q.Rating {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, less(filtered, q.Sort))

	total := len(filtered)
	// compare by division: Page*PerPage overflows for absurd page numbers
	start, end := total, total
	if q.Page <= total/q.PerPage {
		start = q.Page * q.PerPage
		end = min(start+q.PerPage, total)
	}
	return Page{
		Reviews:    filtered[start:end],
		Total:      total,
		Query:      q,
		TotalPages: (total + q.PerPage - 1) / q.PerPage,
	}
}

// less orders by the sort key, then newest first, then id, so equal keys
// still give a stable page boundary.
func less(rs []Review, s Sort) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := rs[i], rs[j]
		switch s {
		case SortHighest:
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
		case SortLowest:
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
		case SortOldest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	}
}
