package view

import "time"

type ReviewView struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

type RatingSummary struct {
	Count        int     `json:"count"`
	Average      float64 `json:"average"`
	Distribution [5]int  `json:"distribution"` // index 0 = one star
}

type ReviewsBlock struct {
	Summary    RatingSummary `json:"summary"`
	Reviews    []ReviewView  `json:"reviews"`
	Total      int           `json:"total"`
	Page       int           `json:"page"` // 1-based
	PerPage    int           `json:"perPage"`
	TotalPages int           `json:"totalPages"`
	Sort       string        `json:"sort"`
	Rating     int           `json:"rating,omitempty"`
}
