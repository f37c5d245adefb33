package pagination

import "math"

// Metadata is the navigation block derived from page, limit and total count.
type Metadata struct {
	CurrentPage int   `json:"current_page" yaml:"current_page"`
	Limit       int   `json:"limit" yaml:"limit"`
	TotalItems  int64 `json:"total_items" yaml:"total_items"`
	TotalPages  int   `json:"total_pages" yaml:"total_pages"`
	HasNext     bool  `json:"has_next" yaml:"has_next"`
	HasPrev     bool  `json:"has_prev" yaml:"has_prev"`
	NextPage    *int  `json:"next_page" yaml:"next_page"`
	PrevPage    *int  `json:"prev_page" yaml:"prev_page"`
	ShowingFrom int64 `json:"showing_from" yaml:"showing_from"`
	ShowingTo   int64 `json:"showing_to" yaml:"showing_to"`
}

// CalculateSkip returns how many documents precede the given 1-based page. The result
// saturates at math.MaxInt64 instead of wrapping.
func CalculateSkip(page, limit int) int64 {
	if page < 1 || limit < 1 {
		return 0
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return math.MaxInt64
	}
	return int64(page-1) * int64(limit)
}

// CalculateTotalPages is ceil(total / limit); an empty result has zero pages.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// BuildMetadata computes navigation metadata. It does no I/O and expects page and
// limit to be already clamped.
//
// ShowingFrom/ShowingTo describe the 1-based range of items on the page; both are 0
// when the page lies past the end of the result.
func BuildMetadata(page, limit int, totalItems int64) Metadata {
	totalPages := CalculateTotalPages(totalItems, limit)
	md := Metadata{
		CurrentPage: page,
		Limit:       limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
	if md.HasNext {
		next := page + 1
		md.NextPage = &next
	}
	if md.HasPrev {
		prev := page - 1
		md.PrevPage = &prev
	}

	skip := CalculateSkip(page, limit)
	if skip < totalItems {
		md.ShowingFrom = skip + 1
		md.ShowingTo = min(skip+int64(limit), totalItems)
	}
	return md
}
