package reviews

import (
	"math"

	"lumenstore.com/app/pkg/view"
)

// Summarize counts ratings per star and averages them to one decimal.
func Summarize(rs []Review) view.RatingSummary {
	var s view.RatingSummary
	sum := 0
	for _, r := range rs {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		s.Distribution[r.Rating-1]++
		s.Count++
		sum += r.Rating
	}
	if s.Count > 0 {
		s.Average = math.Round(float64(sum)/float64(s.Count)*10) / 10
	}
	return s
}
