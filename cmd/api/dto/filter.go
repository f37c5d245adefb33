package dto

// FilterItem represents a single filter option with its count
type FilterItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CityFilterDTO represents the response for city filters
type CityFilterDTO struct {
	Items []FilterItem `json:"items"`
}
